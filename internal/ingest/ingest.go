package ingest

import (
	"bufio"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Ingest streams r as a LandXML/J-LandXML document and returns the parsed
// coordinate-system descriptor and surface list. It never materializes a
// DOM: the decoder's token stream drives a small path-stack walker, and
// point/face text is only ever buffered while inside the element that owns
// it (spec §4.1).
//
// Ingest fails fatally (no partial LandXML is returned) on malformed XML.
// A surface with an unresolved point reference, an empty Pnts/P, or an
// empty Faces/F is dropped and recorded as a Warning; ingestion of the
// remaining document continues.
func Ingest(r io.Reader) (*LandXML, error) {
	dec := xml.NewDecoder(bufio.NewReader(r))

	w := &walker{dec: dec, result: &LandXML{}}
	if err := w.run(); err != nil {
		return nil, err
	}
	return w.result, nil
}

// buildingSurface accumulates one Surface between its start and end tags.
type buildingSurface struct {
	name, desc string
	points     []Point3D
	faces      []Face
	idIndex    map[int]int

	inTIN   bool // Definition/@surfType == "TIN" seen
	dropped bool // a surface-local error occurred; drop at end-tag
	dropMsg string
}

type walker struct {
	dec    *xml.Decoder
	result *LandXML

	stack []string

	// skipStartLen is nonzero while skipping a non-TIN Definition subtree;
	// it holds the stack depth the skipped element was pushed at, so the
	// matching EndElement (which brings the stack back to that depth) ends
	// the skip.
	skipStartLen int

	cs *rawCoordinateSystem // non-nil while inside CoordinateSystem
	// A Feature/Property's label and value are read from its attributes at
	// its start tag straight into cs.properties; Property is always
	// empty-element or has no meaningful text, so no CharData is kept.

	surf *buildingSurface // non-nil while inside Surface

	inPoint   bool
	pointID   int
	inFace    bool
	textBuf   strings.Builder
}

func (w *walker) run() error {
	for {
		tok, err := w.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &XmlError{Kind: classifyXmlErr(err), ByteOffset: w.dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := w.handleStart(t); err != nil {
				return err
			}
		case xml.CharData:
			w.handleText(t)
		case xml.EndElement:
			if err := w.handleEnd(t); err != nil {
				return err
			}
		}
	}
}

func classifyXmlErr(err error) XmlKind {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unexpected EOF"):
		return XmlKindTruncated
	case strings.Contains(msg, "unclosed tag") || strings.Contains(msg, "unexpected end element"):
		return XmlKindUnclosedTag
	case strings.Contains(msg, "encoding") || strings.Contains(msg, "charset"):
		return XmlKindBadEncoding
	default:
		return XmlKindUnexpected
	}
}

func (w *walker) parent() string {
	if len(w.stack) < 2 {
		return ""
	}
	return w.stack[len(w.stack)-2]
}

func (w *walker) grandparent() string {
	if len(w.stack) < 3 {
		return ""
	}
	return w.stack[len(w.stack)-3]
}

func attr(t xml.StartElement, name string) (string, bool) {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (w *walker) handleStart(t xml.StartElement) error {
	name := t.Name.Local
	w.stack = append(w.stack, name)

	if w.skipStartLen != 0 {
		return nil // still inside a skipped subtree; only track depth
	}

	switch {
	case name == "LandXML" && w.parent() == "":
		if v, ok := attr(t, "version"); ok {
			w.result.Version = v
		}

	case name == "CoordinateSystem" && w.parent() == "LandXML":
		w.cs = newRawCoordinateSystem()
		for _, a := range t.Attr {
			w.cs.attrs[a.Name.Local] = a.Value
		}

	case name == "Property" && w.parent() == "Feature" && w.grandparent() == "CoordinateSystem":
		if w.cs != nil {
			label, hasLabel := attr(t, "label")
			value, hasValue := attr(t, "value")
			if hasLabel && hasValue {
				w.cs.properties[label] = value
			}
		}

	case name == "Surface" && w.parent() == "LandXML":
		s := &buildingSurface{idIndex: make(map[int]int)}
		if v, ok := attr(t, "name"); ok {
			s.name = v
		}
		if v, ok := attr(t, "desc"); ok {
			s.desc = v
		}
		w.surf = s

	case name == "Definition" && w.parent() == "Surface":
		surfType, _ := attr(t, "surfType")
		if w.surf == nil {
			break
		}
		if surfType != "TIN" {
			w.result.Warnings = append(w.result.Warnings, Warning{
				Kind:    "unknown-surface-type",
				Message: (&UnknownSurfaceTypeError{Surface: w.surf.name, Type: surfType}).Error(),
			})
			w.surf = nil // nothing more to build for this Surface
			w.skipStartLen = len(w.stack)
			break
		}
		w.surf.inTIN = true

	case name == "P" && w.parent() == "Pnts" && w.grandparent() == "Definition":
		if w.surf == nil || !w.surf.inTIN {
			break
		}
		w.textBuf.Reset()
		w.inPoint = true
		if v, ok := attr(t, "id"); ok {
			id, err := strconv.Atoi(strings.TrimSpace(v))
			if err == nil {
				w.pointID = id
			}
		}

	case name == "F" && w.parent() == "Faces" && w.grandparent() == "Definition":
		if w.surf == nil || !w.surf.inTIN {
			break
		}
		w.textBuf.Reset()
		w.inFace = true
	}

	return nil
}

func (w *walker) handleText(t xml.CharData) {
	if w.skipStartLen != 0 {
		return
	}
	if w.inPoint || w.inFace {
		w.textBuf.Write(t)
	}
}

func (w *walker) handleEnd(t xml.EndElement) error {
	name := t.Name.Local
	depth := len(w.stack)

	if w.skipStartLen != 0 {
		w.stack = w.stack[:depth-1]
		if depth == w.skipStartLen {
			w.skipStartLen = 0
		}
		return nil
	}

	switch {
	case name == "CoordinateSystem" && w.cs != nil:
		cs, warnings := resolveCoordinateSystem(w.cs)
		w.result.CoordinateSystem = cs
		w.result.Warnings = append(w.result.Warnings, warnings...)
		w.cs = nil

	case name == "P" && w.inPoint:
		w.inPoint = false
		if w.surf != nil && !w.surf.dropped {
			text := strings.TrimSpace(w.textBuf.String())
			if text == "" {
				w.surf.dropped = true
				w.surf.dropMsg = (&SemanticError{Path: "Surface/Definition/Pnts/P", Message: "empty point text"}).Error()
				break
			}
			x, y, z, err := parseXYZ(text)
			if err != nil {
				w.surf.dropped = true
				w.surf.dropMsg = (&SemanticError{Path: "Surface/Definition/Pnts/P", Message: "unparseable point text: " + text}).Error()
				break
			}
			idx := len(w.surf.points)
			w.surf.points = append(w.surf.points, Point3D{ID: w.pointID, X: x, Y: y, Z: z})
			w.surf.idIndex[w.pointID] = idx
		}

	case name == "F" && w.inFace:
		w.inFace = false
		if w.surf != nil && !w.surf.dropped {
			text := strings.TrimSpace(w.textBuf.String())
			if text == "" {
				w.surf.dropped = true
				w.surf.dropMsg = (&SemanticError{Path: "Surface/Definition/Faces/F", Message: "empty face text"}).Error()
				break
			}
			i, j, k, err := parseIJK(text)
			if err != nil {
				w.surf.dropped = true
				w.surf.dropMsg = (&SemanticError{Path: "Surface/Definition/Faces/F", Message: "unparseable face text: " + text}).Error()
				break
			}
			p1, ok1 := w.surf.idIndex[i]
			p2, ok2 := w.surf.idIndex[j]
			p3, ok3 := w.surf.idIndex[k]
			missing, ok := firstMissing(i, ok1, j, ok2, k, ok3)
			if !ok {
				w.surf.faces = append(w.surf.faces, Face{P1: p1, P2: p2, P3: p3})
			} else {
				w.surf.dropped = true
				w.surf.dropMsg = (&MissingPointReferenceError{Surface: w.surf.name, PointID: missing}).Error()
			}
		}

	case name == "Surface" && w.surf != nil:
		s := w.surf
		w.surf = nil
		if s.dropped {
			w.result.Warnings = append(w.result.Warnings, Warning{Kind: "surface-dropped", Message: s.dropMsg})
			break
		}
		w.result.Surfaces = append(w.result.Surfaces, Surface{
			Name:   s.name,
			Desc:   s.desc,
			Type:   classifySurfaceType(s.name, s.desc),
			Points: s.points,
			Faces:  s.faces,
		})
	}

	w.stack = w.stack[:depth-1]
	return nil
}

func firstMissing(i int, ok1 bool, j int, ok2 bool, k int, ok3 bool) (int, bool) {
	if !ok1 {
		return i, true
	}
	if !ok2 {
		return j, true
	}
	if !ok3 {
		return k, true
	}
	return 0, false
}

func parseXYZ(s string) (x, y, z float64, err error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return 0, 0, 0, &strconvError{s}
	}
	x, err = strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	y, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	z, err = strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}

func parseIJK(s string) (i, j, k int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return 0, 0, 0, &strconvError{s}
	}
	i, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, err
	}
	j, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, err
	}
	k, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, 0, err
	}
	return i, j, k, nil
}

type strconvError struct{ text string }

func (e *strconvError) Error() string { return "malformed numeric field list: " + e.text }
