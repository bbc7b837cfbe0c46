package wcs_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"github.com/itmo153277/icc-wcs-vcgt/wcs"
)

const (
	xmlProlog = `<?xml version="1.0" encoding="UTF-16"?>`
	cdmOpen   = `<cdm:ColorDeviceModel` +
		` xmlns:cdm="http://schemas.microsoft.com/windows/2005/02/color/ColorDeviceModel"` +
		` xmlns:cal="http://schemas.microsoft.com/windows/2007/11/color/Calibration"` +
		` xmlns:wcs="http://schemas.microsoft.com/windows/2005/02/color/WcsCommonProfileTypes">`
	cdmClose = `</cdm:ColorDeviceModel>`
)

// calibrationXML wraps per-channel curve elements in the full document shape.
func calibrationXML(curves string) string {
	return xmlProlog + cdmOpen +
		`<cdm:Calibration><cal:AdapterGammaConfiguration><cal:ParameterizedCurves>` +
		curves +
		`</cal:ParameterizedCurves></cal:AdapterGammaConfiguration></cdm:Calibration>` +
		cdmClose
}

func encodeUTF16LE(t *testing.T, s string) []byte {
	t.Helper()
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode UTF-16: %v", err)
	}
	return b
}

func encodeUTF16BE(t *testing.T, s string) []byte {
	t.Helper()
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode UTF-16: %v", err)
	}
	return b
}

// buildTagBlock assembles a WCS tag body holding the given payloads.
func buildTagBlock(cdm, cam, gmm []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("MS10")
	buf.Write(make([]byte, 4)) // reserved
	offset := uint32(32)
	for _, payload := range [][]byte{cdm, cam, gmm} {
		binary.Write(&buf, binary.BigEndian, offset)
		binary.Write(&buf, binary.BigEndian, uint32(len(payload)))
		offset += uint32(len(payload))
	}
	buf.Write(cdm)
	buf.Write(cam)
	buf.Write(gmm)
	return buf.Bytes()
}

func TestParseTagBlock(t *testing.T) {
	block, err := wcs.ParseTagBlock(buildTagBlock(
		[]byte("color device model"),
		[]byte("camera model"),
		[]byte("gamut map model"),
	))
	if err != nil {
		t.Fatalf("ParseTagBlock failed: %v", err)
	}
	if !bytes.Equal(block.ColorDeviceModel, []byte("color device model")) {
		t.Errorf("ColorDeviceModel = %q", block.ColorDeviceModel)
	}
	if !bytes.Equal(block.CameraModel, []byte("camera model")) {
		t.Errorf("CameraModel = %q", block.CameraModel)
	}
	if !bytes.Equal(block.GamutMapModel, []byte("gamut map model")) {
		t.Errorf("GamutMapModel = %q", block.GamutMapModel)
	}
}

func TestParseTagBlockBadSignature(t *testing.T) {
	data := buildTagBlock([]byte("x"), nil, nil)
	copy(data[0:4], "MS20")
	_, err := wcs.ParseTagBlock(data)
	var serr *wcs.StructureError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestParseTagBlockTruncated(t *testing.T) {
	var serr *wcs.StructureError
	if _, err := wcs.ParseTagBlock([]byte("MS10")); !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestParseTagBlockPayloadOutOfBounds(t *testing.T) {
	data := buildTagBlock([]byte("x"), nil, nil)
	binary.BigEndian.PutUint32(data[12:16], 1<<16) // ColorDeviceModel size
	var serr *wcs.StructureError
	if _, err := wcs.ParseTagBlock(data); !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestParseCalibration(t *testing.T) {
	doc := calibrationXML(
		`<wcs:RedTRC Gamma="2.2" Offset1="0.0" Gain="1.0"/>` +
			`<wcs:GreenTRC Gamma="2.4" Offset1="0.05" Gain="0.95"/>` +
			`<wcs:BlueTRC Gamma="1.8"/>`,
	)
	cal, err := wcs.ParseCalibration(encodeUTF16LE(t, doc))
	if err != nil {
		t.Fatalf("ParseCalibration failed: %v", err)
	}
	if cal.Red != (wcs.Curve{Gamma: 2.2, Offset: 0, Gain: 1}) {
		t.Errorf("Red = %+v", cal.Red)
	}
	if cal.Green != (wcs.Curve{Gamma: 2.4, Offset: 0.05, Gain: 0.95}) {
		t.Errorf("Green = %+v", cal.Green)
	}
	// Missing attributes get their defaults.
	if cal.Blue != (wcs.Curve{Gamma: 1.8, Offset: 0, Gain: 1}) {
		t.Errorf("Blue = %+v", cal.Blue)
	}
}

func TestParseCalibrationMissingChannelsAreIdentity(t *testing.T) {
	cal, err := wcs.ParseCalibration(encodeUTF16LE(t, calibrationXML(``)))
	if err != nil {
		t.Fatalf("ParseCalibration failed: %v", err)
	}
	identity := wcs.Curve{Gamma: 1, Offset: 0, Gain: 1}
	if cal.Red != identity || cal.Green != identity || cal.Blue != identity {
		t.Errorf("expected identity curves, got %+v", cal)
	}
}

func TestParseCalibrationBigEndianBOM(t *testing.T) {
	doc := calibrationXML(`<wcs:RedTRC Gamma="2.2"/>`)
	cal, err := wcs.ParseCalibration(encodeUTF16BE(t, doc))
	if err != nil {
		t.Fatalf("ParseCalibration failed: %v", err)
	}
	if cal.Red.Gamma != 2.2 {
		t.Errorf("Red.Gamma = %g, want 2.2", cal.Red.Gamma)
	}
}

func TestParseCalibrationUnexpectedAttribute(t *testing.T) {
	doc := calibrationXML(`<wcs:RedTRC Gamma="2.2" Slope="1.0"/>`)
	var serr *wcs.StructureError
	if _, err := wcs.ParseCalibration(encodeUTF16LE(t, doc)); !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestParseCalibrationBadFloat(t *testing.T) {
	doc := calibrationXML(`<wcs:RedTRC Gamma="fast"/>`)
	var serr *wcs.StructureError
	if _, err := wcs.ParseCalibration(encodeUTF16LE(t, doc)); !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestParseCalibrationMissingElement(t *testing.T) {
	doc := xmlProlog + cdmOpen + `<cdm:Calibration/>` + cdmClose
	var serr *wcs.StructureError
	if _, err := wcs.ParseCalibration(encodeUTF16LE(t, doc)); !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestParseCalibrationNotXML(t *testing.T) {
	var serr *wcs.StructureError
	if _, err := wcs.ParseCalibration(encodeUTF16LE(t, "not a document")); !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}
