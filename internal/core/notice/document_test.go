package notice

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	perr "maintnotice/internal/platform/errors"
	kit "maintnotice/internal/platform/testkit"
)

func window(begin, end time.Time) *Record {
	return &Record{BeginWindow: &begin, EndWindow: &end}
}

func TestSerialize_DerivedImpact(t *testing.T) {
	r := window(
		time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
	)
	id := "ABC-123"
	r.VendorCircuitID = &id
	r.ImpactMultiplier, r.ImpactMultiplicand, r.ImpactUnits = intp(2), intp(30), unitp(Minutes)
	if err := r.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	b, err := Serialize(r)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	want := `{
    "beginWindow": "2024-01-05 10:00:00 +0000 UTC",
    "endWindow": "2024-01-05 12:00:00 +0000 UTC",
    "impactSeconds": 3600,
    "objectType": "maintForecastEvent",
    "parsedVendorCircuitId": "ABC-123"
}`
	if string(b) != want {
		t.Fatalf("Serialize =\n%s\nwant\n%s", b, want)
	}
}

func TestSerialize_FallbackIsFullWindow(t *testing.T) {
	r := window(
		time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 7, 12, 30, 0, 0, time.UTC),
	)
	d := r.Document()
	if want := int64(2*86400 + 2*3600 + 30*60); d.ImpactSeconds != want {
		t.Fatalf("ImpactSeconds = %d, want %d", d.ImpactSeconds, want)
	}

	b, err := Serialize(r)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if strings.Contains(string(b), "parsedVendorCircuitId") {
		t.Fatalf("unset circuit id must be omitted: %s", b)
	}
	kit.MustContain(t, string(b), `"impactSeconds": 181800`)
}

func TestSerialize_KeysSorted(t *testing.T) {
	r := window(time.Unix(0, 0).UTC(), time.Unix(60, 0).UTC())
	id := "X"
	r.VendorCircuitID = &id
	b, err := Serialize(r)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	keys := []string{"beginWindow", "endWindow", "impactSeconds", "objectType", "parsedVendorCircuitId"}
	last := -1
	for _, k := range keys {
		i := strings.Index(string(b), `"`+k+`"`)
		if i < 0 || i < last {
			t.Fatalf("key %q missing or out of order in %s", k, b)
		}
		last = i
	}
}

func TestSerialize_NeedsWindow(t *testing.T) {
	if _, err := Serialize(nil); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("nil record: got %v", err)
	}
	if _, err := Serialize(New()); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("empty record: got %v", err)
	}
}
