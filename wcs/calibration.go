package wcs

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
)

// XML namespaces used by the ColorDeviceModel document.
const (
	nsColorDeviceModel = "http://schemas.microsoft.com/windows/2005/02/color/ColorDeviceModel"
	nsCalibration      = "http://schemas.microsoft.com/windows/2007/11/color/Calibration"
	nsCommonTypes      = "http://schemas.microsoft.com/windows/2005/02/color/WcsCommonProfileTypes"
)

// Attributes a per-channel curve element may carry.
var curveAttributes = map[string]bool{
	"Gamma":   true,
	"Offset1": true,
	"Gain":    true,
}

// ParseCalibration decodes the ColorDeviceModel payload and extracts the
// per-channel parameterized curves from
// Calibration/AdapterGammaConfiguration/ParameterizedCurves. A channel with
// no element gets the identity curve; a present element may only carry the
// Gamma, Offset1 and Gain attributes, with defaults 1, 0 and 1.
func ParseCalibration(cdm []byte) (*Calibration, error) {
	text, err := decodeUTF16(cdm)
	if err != nil {
		return nil, &StructureError{Reason: fmt.Sprintf("decode ColorDeviceModel text: %v", err)}
	}
	root, err := parseDocument(text)
	if err != nil {
		return nil, &StructureError{Reason: fmt.Sprintf("parse ColorDeviceModel document: %v", err)}
	}
	curves := root.
		child(nsColorDeviceModel, "Calibration").
		child(nsCalibration, "AdapterGammaConfiguration").
		child(nsCalibration, "ParameterizedCurves")
	if curves == nil {
		return nil, &StructureError{Reason: "no ParameterizedCurves calibration element"}
	}

	var cal Calibration
	for _, ch := range []struct {
		local string
		dst   *Curve
	}{
		{"RedTRC", &cal.Red},
		{"GreenTRC", &cal.Green},
		{"BlueTRC", &cal.Blue},
	} {
		curve, err := parseCurve(curves.child(nsCommonTypes, ch.local), ch.local)
		if err != nil {
			return nil, err
		}
		*ch.dst = curve
	}
	return &cal, nil
}

func parseCurve(el *element, name string) (Curve, error) {
	if el == nil {
		return identity, nil
	}
	for _, a := range el.attrs {
		if a.Name.Local == "xmlns" || a.Name.Space == "xmlns" {
			continue
		}
		if a.Name.Space != "" || !curveAttributes[a.Name.Local] {
			return Curve{}, &StructureError{Reason: fmt.Sprintf("unexpected attribute %q on %s", a.Name.Local, name)}
		}
	}
	var (
		curve Curve
		err   error
	)
	if curve.Gamma, err = el.attrFloat("Gamma", 1); err != nil {
		return Curve{}, &StructureError{Reason: fmt.Sprintf("%s: %v", name, err)}
	}
	if curve.Offset, err = el.attrFloat("Offset1", 0); err != nil {
		return Curve{}, &StructureError{Reason: fmt.Sprintf("%s: %v", name, err)}
	}
	if curve.Gain, err = el.attrFloat("Gain", 1); err != nil {
		return Curve{}, &StructureError{Reason: fmt.Sprintf("%s: %v", name, err)}
	}
	return curve, nil
}

// decodeUTF16 converts the UTF-16 payload to UTF-8. Windows writes the
// document little-endian; a BOM overrides the default order.
func decodeUTF16(data []byte) ([]byte, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	return dec.Bytes(data)
}

// element is a minimal read-only XML document node: namespace-qualified name,
// attributes and child elements. Character data is not retained; the
// calibration format keeps everything of interest in attributes.
type element struct {
	name     xml.Name
	attrs    []xml.Attr
	children []*element
}

// parseDocument builds the element tree from UTF-8 XML text. The payload's
// declaration still says UTF-16, so the charset reader passes the already
// converted input through as-is.
func parseDocument(text []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(text))
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var (
		root  *element
		stack []*element
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name, attrs: t.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

// child returns the first child with the given namespace and local name, or
// nil. Calling child on a nil element is allowed and returns nil, so lookups
// chain like a path expression.
func (e *element) child(space, local string) *element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name.Space == space && c.name.Local == local {
			return c
		}
	}
	return nil
}

// attrFloat reads an unprefixed attribute as a float, with a default when the
// attribute is absent.
func (e *element) attrFloat(name string, def float64) (float64, error) {
	for _, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			v, err := strconv.ParseFloat(a.Value, 64)
			if err != nil {
				return 0, fmt.Errorf("attribute %s: %w", name, err)
			}
			return v, nil
		}
	}
	return def, nil
}
