// Package convert orchestrates the profile transformation: decode and
// validate the container, extract the WCS calibration curves, encode them as
// a vcgt tag and rebuild the profile with the tag appended.
package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/itmo153277/icc-wcs-vcgt/icc"
	"github.com/itmo153277/icc-wcs-vcgt/observability"
	"github.com/itmo153277/icc-wcs-vcgt/vcgt"
	"github.com/itmo153277/icc-wcs-vcgt/wcs"
)

// Reportable conditions. Everything else that can go wrong mid-conversion is
// a *wcs.StructureError: the profile passed the header checks and carries a
// WCS tag, but the tag contents are not in the expected shape.
var (
	// ErrInvalidProfile means the input is not a WCS-authored monitor RGB
	// profile.
	ErrInvalidProfile = errors.New("invalid ICC profile")
	// ErrVCGTPresent means the input already carries a vcgt tag.
	ErrVCGTPresent = errors.New("profile already has VCGT")
	// ErrNoWCSTag means the input carries no WCS calibration tag.
	ErrNoWCSTag = errors.New("WCS tag is not present")
)

// Converter performs the whole-file transform. The zero value is not usable;
// construct with New.
type Converter struct {
	logger observability.Logger
	tracer observability.Tracer
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger wires a logger into the converter.
func WithLogger(l observability.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithTracer wires a tracer into the converter.
func WithTracer(t observability.Tracer) Option {
	return func(c *Converter) { c.tracer = t }
}

// New constructs a Converter. Logging and tracing default to no-ops.
func New(opts ...Option) *Converter {
	c := &Converter{
		logger: observability.NopLogger{},
		tracer: observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms profile bytes carrying WCS calibration into profile
// bytes carrying an equivalent vcgt tag. The input is not modified; on any
// error no output is produced.
func (c *Converter) Convert(ctx context.Context, data []byte) ([]byte, error) {
	ctx, span := c.tracer.StartSpan(ctx, "icc.convert")
	defer span.Finish()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prof, err := icc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := prof.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	c.logger.Info("profile decoded",
		observability.String("description", prof.Description()),
		observability.String("version", prof.VersionString()),
		observability.Int("tags", prof.Tags.Len()),
	)
	if icc.VerifyProfileID(data) == icc.ChecksumMismatch {
		// Informational field; authoring tools routinely leave it stale.
		c.logger.Warn("profile ID checksum does not match profile contents")
	}

	if prof.Tags.Has(vcgt.Signature) {
		return nil, ErrVCGTPresent
	}
	wcsData, ok := prof.Tags.Get(wcs.TagSignature)
	if !ok {
		return nil, ErrNoWCSTag
	}

	block, err := wcs.ParseTagBlock(wcsData)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	cal, err := wcs.ParseCalibration(block.ColorDeviceModel)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	c.logCurve("red", cal.Red)
	c.logCurve("green", cal.Green)
	c.logCurve("blue", cal.Blue)

	tag, err := vcgt.Encode(cal)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	prof.Tags.Set(vcgt.Signature, tag)

	out := icc.Build(prof.RawHeader, prof.Tags)
	span.SetTag(observability.MetricTagCount, prof.Tags.Len())
	span.SetTag(observability.MetricVCGTBytes, len(tag))
	span.SetTag(observability.MetricProfileBytes, len(out))
	c.logger.Info("profile rebuilt",
		observability.Int("tags", prof.Tags.Len()),
		observability.Int("bytes", len(out)),
	)
	return out, nil
}

func (c *Converter) logCurve(channel string, curve wcs.Curve) {
	c.logger.Debug("calibration curve",
		observability.String("channel", channel),
		observability.Float64("gamma", curve.Gamma),
		observability.Float64("offset", curve.Offset),
		observability.Float64("gain", curve.Gain),
	)
}
