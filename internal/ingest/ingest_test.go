package ingest

import (
	"strings"
	"testing"
)

const s1Doc = `<?xml version="1.0"?>
<LandXML version="1.2">
  <Surface name="ExistingGround">
    <Definition surfType="TIN">
      <Pnts>
        <P id="1">0 0 100</P>
        <P id="2">100 0 101</P>
        <P id="3">0 100 102</P>
        <P id="4">100 100 103</P>
      </Pnts>
      <Faces>
        <F>1 2 3</F>
        <F>2 4 3</F>
      </Faces>
    </Definition>
  </Surface>
</LandXML>`

func TestIngestMinimal(t *testing.T) {
	doc, err := Ingest(strings.NewReader(s1Doc))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if doc.Version != "1.2" {
		t.Errorf("version = %q, want 1.2", doc.Version)
	}
	if len(doc.Surfaces) != 1 {
		t.Fatalf("got %d surfaces, want 1", len(doc.Surfaces))
	}
	s := doc.Surfaces[0]
	if s.Name != "ExistingGround" {
		t.Errorf("name = %q", s.Name)
	}
	if s.Type != SurfaceTypeExistingGround {
		t.Errorf("type = %v, want ExistingGround", s.Type)
	}
	if len(s.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(s.Points))
	}
	if len(s.Faces) != 2 {
		t.Fatalf("got %d faces, want 2", len(s.Faces))
	}
	if s.Points[0].X != 0 || s.Points[0].Y != 0 || s.Points[0].Z != 100 {
		t.Errorf("point 0 = %+v", s.Points[0])
	}
	// Face "1 2 3" resolves via id->index: id 1->idx 0, id 2->idx 1, id 3->idx 2.
	if s.Faces[0] != (Face{P1: 0, P2: 1, P3: 2}) {
		t.Errorf("face 0 = %+v", s.Faces[0])
	}
}

const s2Doc = `<?xml version="1.0"?>
<LandXML version="1.2">
  <CoordinateSystem name="test" horizontalCoordinateSystemName=" 9 ( X , Y ) " verticalDatum="O.P">
    <Feature>
      <Property label="differTP" value="-1.3000"/>
    </Feature>
  </CoordinateSystem>
</LandXML>`

func TestIngestZoneAndDatum(t *testing.T) {
	doc, err := Ingest(strings.NewReader(s2Doc))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	cs := doc.CoordinateSystem
	if cs == nil {
		t.Fatal("CoordinateSystem is nil")
	}
	if cs.PlaneZone != 9 {
		t.Errorf("PlaneZone = %d, want 9", cs.PlaneZone)
	}
	if cs.EPSGCode != 6677 {
		t.Errorf("EPSGCode = %d, want 6677", cs.EPSGCode)
	}
	if !cs.HasDifferTP || cs.DifferTP != -1.3 {
		t.Errorf("DifferTP = %v (has=%v), want -1.3", cs.DifferTP, cs.HasDifferTP)
	}
}

const opNoDifferTPDoc = `<?xml version="1.0"?>
<LandXML version="1.2">
  <CoordinateSystem name="test" verticalDatum="OP">
  </CoordinateSystem>
</LandXML>`

func TestIngestDerivesDifferTPFromVerticalDatum(t *testing.T) {
	doc, err := Ingest(strings.NewReader(opNoDifferTPDoc))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	cs := doc.CoordinateSystem
	if cs == nil {
		t.Fatal("CoordinateSystem is nil")
	}
	if !cs.HasDifferTP || cs.DifferTP != -1.3 {
		t.Errorf("DifferTP = %v (has=%v), want the OP datum's fixed -1.3 offset", cs.DifferTP, cs.HasDifferTP)
	}
	found := false
	for _, w := range doc.Warnings {
		if w.Kind == "crs-vertical-datum" {
			found = true
		}
	}
	if !found {
		t.Error("expected a crs-vertical-datum warning noting the derived offset")
	}
}

const s5Doc = `<?xml version="1.0"?>
<LandXML version="1.2">
  <Surface name="bad">
    <Definition surfType="TIN">
      <Pnts>
        <P id="1">0 0 1</P>
        <P id="2">1 0 2</P>
        <P id="3">0 1 3</P>
      </Pnts>
      <Faces>
        <F>1 2 99</F>
      </Faces>
    </Definition>
  </Surface>
  <Surface name="good">
    <Definition surfType="TIN">
      <Pnts>
        <P id="1">0 0 5</P>
        <P id="2">1 0 6</P>
        <P id="3">0 1 7</P>
      </Pnts>
      <Faces>
        <F>1 2 3</F>
      </Faces>
    </Definition>
  </Surface>
</LandXML>`

func TestIngestDropsSurfaceWithMissingPointReference(t *testing.T) {
	doc, err := Ingest(strings.NewReader(s5Doc))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(doc.Surfaces) != 1 {
		t.Fatalf("got %d surfaces, want 1", len(doc.Surfaces))
	}
	if doc.Surfaces[0].Name != "good" {
		t.Errorf("surviving surface = %q, want good", doc.Surfaces[0].Name)
	}
	found := false
	for _, w := range doc.Warnings {
		if strings.Contains(w.Message, "missing point id 99") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %+v, want one mentioning missing point id 99", doc.Warnings)
	}
}

const nonTinDoc = `<?xml version="1.0"?>
<LandXML version="1.2">
  <Surface name="contours">
    <Definition surfType="GRID">
      <Pnts>
        <P id="1">0 0 1</P>
      </Pnts>
    </Definition>
  </Surface>
  <Surface name="kept">
    <Definition surfType="TIN">
      <Pnts>
        <P id="1">0 0 1</P>
        <P id="2">1 0 2</P>
        <P id="3">0 1 3</P>
      </Pnts>
      <Faces>
        <F>1 2 3</F>
      </Faces>
    </Definition>
  </Surface>
</LandXML>`

func TestIngestSkipsNonTinSurface(t *testing.T) {
	doc, err := Ingest(strings.NewReader(nonTinDoc))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(doc.Surfaces) != 1 || doc.Surfaces[0].Name != "kept" {
		t.Fatalf("surfaces = %+v, want only kept", doc.Surfaces)
	}
	found := false
	for _, w := range doc.Warnings {
		if w.Kind == "unknown-surface-type" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unknown-surface-type warning, got %+v", doc.Warnings)
	}
}

func TestIngestEmptyPointIsSurfaceLocal(t *testing.T) {
	doc := `<?xml version="1.0"?>
<LandXML version="1.2">
  <Surface name="empty">
    <Definition surfType="TIN">
      <Pnts>
        <P id="1"></P>
      </Pnts>
    </Definition>
  </Surface>
</LandXML>`
	res, err := Ingest(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(res.Surfaces) != 0 {
		t.Errorf("got %d surfaces, want 0", len(res.Surfaces))
	}
	if len(res.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(res.Warnings))
	}
}

func TestIngestMalformedXML(t *testing.T) {
	_, err := Ingest(strings.NewReader(`<LandXML version="1.2"><Surface name="x">`))
	if err == nil {
		t.Fatal("expected an error for truncated document")
	}
	if _, ok := err.(*XmlError); !ok {
		t.Errorf("err = %T, want *XmlError", err)
	}
}
