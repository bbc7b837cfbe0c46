// Package wcs extracts display calibration data from the Windows Color System
// tag of an ICC profile. The tag body is a small binary directory pointing at
// three embedded model payloads; the calibration curve lives in the
// ColorDeviceModel payload as UTF-16 XML.
package wcs

// TagSignature is the ICC tag signature of the WCS container tag.
const TagSignature = "MS00"

// StructureError reports WCS data that is not in the expected shape. It is a
// contract violation distinct from the reportable conditions (bad header,
// missing tag): the profile claims to carry WCS data but the data cannot be
// interpreted, so the conversion aborts without producing output.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return "malformed WCS data: " + e.Reason
}

// Curve is a parameterized per-channel gamma curve.
type Curve struct {
	Gamma  float64
	Offset float64
	Gain   float64
}

// identity is the curve used when a channel has no calibration element.
var identity = Curve{Gamma: 1, Offset: 0, Gain: 1}

// Calibration holds the decoded per-channel curves in R, G, B order.
type Calibration struct {
	Red   Curve
	Green Curve
	Blue  Curve
}
