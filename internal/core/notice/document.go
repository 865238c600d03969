package notice

import (
	"encoding/json"
	"time"

	perr "maintnotice/internal/platform/errors"
)

// ObjectType tags every serialized record
const ObjectType = "maintForecastEvent"

// Document is the canonical wire form of a Record. Fields are declared in
// key order so encoding/json emits sorted keys
type Document struct {
	BeginWindow     string  `json:"beginWindow"`
	EndWindow       string  `json:"endWindow"`
	ImpactSeconds   int64   `json:"impactSeconds"`
	ObjectType      string  `json:"objectType"`
	VendorCircuitID *string `json:"parsedVendorCircuitId,omitempty"`
}

// Document builds the wire form without re-validating.
// Without derived impact seconds the whole window counts as impact
func (r *Record) Document() Document {
	d := Document{
		BeginWindow:     timestamp(r.BeginWindow),
		EndWindow:       timestamp(r.EndWindow),
		ObjectType:      ObjectType,
		VendorCircuitID: r.VendorCircuitID,
	}
	switch {
	case r.ImpactSeconds != nil:
		d.ImpactSeconds = *r.ImpactSeconds
	case r.BeginWindow != nil && r.EndWindow != nil:
		d.ImpactSeconds = int64(r.EndWindow.Sub(*r.BeginWindow) / time.Second)
	}
	return d
}

// Serialize renders the record as indented JSON with sorted keys.
// Both window bounds must be present
func Serialize(r *Record) ([]byte, error) {
	if r == nil || r.BeginWindow == nil || r.EndWindow == nil {
		return nil, perr.WithOp(perr.InvalidArgf("record has no maintenance window to serialize"), "notice.Serialize")
	}
	b, err := json.MarshalIndent(r.Document(), "", "    ")
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode notice")
	}
	return b, nil
}

func timestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Round(0).String()
}
