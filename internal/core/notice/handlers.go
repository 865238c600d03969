package notice

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	perr "maintnotice/internal/platform/errors"
	ptime "maintnotice/internal/platform/time"
)

// Capture names understood by the handler set
const (
	CaptureBeginDatetime      = "beginDatetime"
	CaptureEndDatetime        = "endDatetime"
	CaptureVendorCircuitID    = "parsedVendorCircuitId"
	CaptureImpactMultiplicand = "impactMultiplicand"
	CaptureImpactMultiplier   = "impactMultiplier"
	CaptureImpactUnits        = "impactUnits"
)

// Handler converts one captured value and stores it on the record
type Handler func(r *Record, value string) error

var handlers = map[string]Handler{
	CaptureBeginDatetime:      handleBegin,
	CaptureEndDatetime:        handleEnd,
	CaptureVendorCircuitID:    handleCircuitID,
	CaptureImpactMultiplicand: handleMultiplicand,
	CaptureImpactMultiplier:   handleMultiplier,
	CaptureImpactUnits:        handleUnits,
}

// Handlers returns the capture name -> handler table. Callers must not mutate it
func Handlers() map[string]Handler { return handlers }

// noticeLayouts are tried before free-form parsing; "YYYY-Mon-DD HH:MM UTC"
// in abbreviated and full month form
var noticeLayouts = []string{
	"2006-Jan-02 15:04 MST",
	"2006-January-02 15:04 MST",
}

// ParseTimestamp parses a notice date/time. Fixed layouts first, then a
// general human-readable parse in UTC
func ParseTimestamp(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, perr.Formatf("empty date/time")
	}
	up := strings.ToUpper(s)
	for _, layout := range noticeLayouts {
		if t, err := time.Parse(layout, up); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, perr.Wrapf(err, perr.ErrorCodeFormat, "unparsable date/time %q", s)
	}
	return t, nil
}

func handleBegin(r *Record, v string) error {
	t, err := ParseTimestamp(v)
	if err != nil {
		return perr.WithField(err, CaptureBeginDatetime)
	}
	r.BeginWindow = ptime.Ptr(t)
	return nil
}

func handleEnd(r *Record, v string) error {
	t, err := ParseTimestamp(v)
	if err != nil {
		return perr.WithField(err, CaptureEndDatetime)
	}
	r.EndWindow = ptime.Ptr(t)
	return nil
}

func handleCircuitID(r *Record, v string) error {
	r.VendorCircuitID = &v
	return nil
}

func parseCount(field, v string) (*int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeFormat, "%s is not an integer: %q", field, v), field)
	}
	return &n, nil
}

func handleMultiplicand(r *Record, v string) error {
	n, err := parseCount(CaptureImpactMultiplicand, v)
	if err != nil {
		return err
	}
	r.ImpactMultiplicand = n
	return nil
}

func handleMultiplier(r *Record, v string) error {
	n, err := parseCount(CaptureImpactMultiplier, v)
	if err != nil {
		return err
	}
	r.ImpactMultiplier = n
	return nil
}

// ParseUnits maps minute(s) and hour(s), case-insensitively
func ParseUnits(v string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "minute", "minutes":
		return Minutes, nil
	case "hour", "hours":
		return Hours, nil
	}
	return "", perr.WithField(perr.UnrecognizedUnitf("impact units should be minute(s) or hour(s), got %q", v), CaptureImpactUnits)
}

func handleUnits(r *Record, v string) error {
	u, err := ParseUnits(v)
	if err != nil {
		return err
	}
	r.ImpactUnits = &u
	return nil
}
