package icc

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate checks that the profile is a WCS-authored monitor RGB profile.
// Every failed check is reported; a non-nil result rejects the profile as a
// whole.
func (p *Profile) Validate() error {
	var errs *multierror.Error
	if int64(p.Header.Size) != int64(p.fileSize) {
		errs = multierror.Append(errs, fmt.Errorf("declared size %d does not match file size %d", p.Header.Size, p.fileSize))
	}
	if p.Header.Size%4 != 0 {
		errs = multierror.Append(errs, fmt.Errorf("size %d is not a multiple of 4", p.Header.Size))
	}
	if p.Header.Magic != ProfileMagic {
		errs = multierror.Append(errs, fmt.Errorf("file signature %q is not %q", p.Header.Magic, ProfileMagic))
	}
	if p.Header.Version > MaxVersion {
		errs = multierror.Append(errs, fmt.Errorf("unsupported profile version %s", p.VersionString()))
	}
	if p.Header.Class != ClassDisplay {
		errs = multierror.Append(errs, fmt.Errorf("device class %q is not %q", p.Header.Class, ClassDisplay))
	}
	if p.Header.ColorSpace != SpaceRGB {
		errs = multierror.Append(errs, fmt.Errorf("color space %q is not %q", p.Header.ColorSpace, SpaceRGB))
	}
	if p.Header.Platform != PlatformMicrosoft {
		errs = multierror.Append(errs, fmt.Errorf("platform %q is not %q", p.Header.Platform, PlatformMicrosoft))
	}
	if p.Header.Creator != PlatformMicrosoft {
		errs = multierror.Append(errs, fmt.Errorf("creator %q is not %q", p.Header.Creator, PlatformMicrosoft))
	}
	return errs.ErrorOrNil()
}
