// Package vcgt encodes display calibration curves as the formula form of the
// Video Card Gamma Table ICC tag.
package vcgt

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/itmo153277/icc-wcs-vcgt/wcs"
)

// Signature is the ICC tag signature of the Video Card Gamma Table.
const Signature = "vcgt"

// formatFormula selects the parameterized (gamma/offset/gain) tag layout, as
// opposed to the sampled-table form.
const formatFormula = 1

const scale = 65535

// Encode produces the vcgt tag bytes: the 12-byte prefix (signature, reserved
// word, format) followed by the gamma, offset and gain of each channel in R,
// G, B order, each scaled by 65535 and truncated to a big-endian uint32.
//
// Values whose scaled form does not fit an unsigned 32-bit integer are
// rejected rather than wrapped; a curve like that means the calibration data
// is broken.
func Encode(cal *wcs.Calibration) ([]byte, error) {
	buf := make([]byte, 0, 12+9*4)
	buf = append(buf, Signature...)
	buf = binary.BigEndian.AppendUint32(buf, 0)
	buf = binary.BigEndian.AppendUint32(buf, formatFormula)
	for _, ch := range []struct {
		name  string
		curve wcs.Curve
	}{
		{"red", cal.Red},
		{"green", cal.Green},
		{"blue", cal.Blue},
	} {
		for _, v := range []float64{ch.curve.Gamma, ch.curve.Offset, ch.curve.Gain} {
			scaled := v * scale
			if math.IsNaN(scaled) || scaled < 0 || scaled >= 1<<32 {
				return nil, &wcs.StructureError{
					Reason: fmt.Sprintf("%s channel value %g out of range for vcgt encoding", ch.name, v),
				}
			}
			buf = binary.BigEndian.AppendUint32(buf, uint32(scaled))
		}
	}
	return buf, nil
}
