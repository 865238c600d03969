// Package notice holds the maintenance record built from a vendor notice,
// the per-capture field handlers that fill it, and its canonical document form
package notice

import (
	"time"

	perr "maintnotice/internal/platform/errors"
)

// Units is the normalized impact unit
type Units string

const (
	// Minutes scales the impact product by 60
	Minutes Units = "minutes"
	// Hours scales the impact product by 3600
	Hours Units = "hours"
)

// Scale returns seconds per unit and whether the unit is known
func (u Units) Scale() (int64, bool) {
	switch u {
	case Minutes:
		return 60, true
	case Hours:
		return 3600, true
	default:
		return 0, false
	}
}

// Record is one maintenance window extracted from a notice.
// Nil pointers mean the field was never captured
type Record struct {
	BeginWindow     *time.Time
	EndWindow       *time.Time
	VendorCircuitID *string

	ImpactMultiplicand *int
	ImpactMultiplier   *int
	ImpactUnits        *Units

	// ImpactSeconds is derived by Finalize
	ImpactSeconds *int64
}

// New returns an empty record
func New() *Record { return &Record{} }

// IsComplete reports whether begin, end and circuit id are all present
func (r *Record) IsComplete() bool {
	if r == nil {
		return false
	}
	return r.BeginWindow != nil && r.EndWindow != nil && r.VendorCircuitID != nil
}

// HasImpact reports whether any impact field was captured
func (r *Record) HasImpact() bool {
	return r.ImpactMultiplicand != nil || r.ImpactMultiplier != nil || r.ImpactUnits != nil
}

// Finalize derives ImpactSeconds from the three impact fields.
// No impact fields is a no-op; a partial set is an inconsistent-impact error
func (r *Record) Finalize() error {
	if !r.HasImpact() {
		return nil
	}

	var missing []string
	if r.ImpactMultiplicand == nil {
		missing = append(missing, CaptureImpactMultiplicand)
	}
	if r.ImpactMultiplier == nil {
		missing = append(missing, CaptureImpactMultiplier)
	}
	if r.ImpactUnits == nil {
		missing = append(missing, CaptureImpactUnits)
	}
	if len(missing) > 0 {
		return perr.WithOp(perr.InconsistentImpactf("impact data incomplete: missing %v", missing), "notice.Finalize")
	}

	scale, ok := r.ImpactUnits.Scale()
	if !ok {
		err := perr.UnrecognizedUnitf("impact units %q are not minutes or hours", string(*r.ImpactUnits))
		return perr.WithOp(perr.WithField(err, CaptureImpactUnits), "notice.Finalize")
	}

	secs := int64(*r.ImpactMultiplicand) * int64(*r.ImpactMultiplier) * scale
	r.ImpactSeconds = &secs
	return nil
}
