package extract

import (
	"context"
	"testing"
	"time"

	"maintnotice/internal/core/notice"
	"maintnotice/internal/core/profile"
	perr "maintnotice/internal/platform/errors"
	kit "maintnotice/internal/platform/testkit"
)

const roundTrip = `Hello,

Start: 2024-Jan-05 10:00 UTC
End: 2024-Jan-05 12:00 UTC
Service ID: ABC-123
Impact: 2 x 30 minutes interruption
`

func newExtractor(t *testing.T, opts Options) *Extractor {
	t.Helper()
	reg, err := profile.Load()
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	return New(reg, opts)
}

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestParse_RoundTrip(t *testing.T) {
	kit.Swap(t, &newParseID, func() string { return "pid-1" })
	e := newExtractor(t, Options{})

	res, err := e.Parse(context.Background(), roundTrip, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Complete {
		t.Fatalf("expected complete result")
	}
	if res.ParseID != "pid-1" || res.Profile != "start_end_service_id_impact_n_x_n_units" {
		t.Fatalf("id/profile = %q/%q", res.ParseID, res.Profile)
	}
	if res.LastToken != notice.CaptureImpactUnits {
		t.Fatalf("LastToken = %q", res.LastToken)
	}
	r := res.Record
	if !r.BeginWindow.Equal(utc(2024, time.January, 5, 10, 0)) || !r.EndWindow.Equal(utc(2024, time.January, 5, 12, 0)) {
		t.Fatalf("window = %v .. %v", r.BeginWindow, r.EndWindow)
	}
	if *r.VendorCircuitID != "ABC-123" {
		t.Fatalf("circuit = %q", *r.VendorCircuitID)
	}
	if r.ImpactSeconds == nil || *r.ImpactSeconds != 3600 {
		t.Fatalf("ImpactSeconds = %v, want 3600", r.ImpactSeconds)
	}
	if _, err := notice.Serialize(r); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
}

func TestParse_ImpactArithmetic(t *testing.T) {
	e := newExtractor(t, Options{})
	cases := []struct {
		impact string
		want   int64
	}{
		{"Impact: 1 x 4 hours interruption", 4 * 3600},
		{"Impact: 3 x 2 hours interruption", 3 * 2 * 3600},
		{"Impact: 3 x 15 minutes interruption", 3 * 15 * 60},
		{"Impact: 6 x 1 minute interruption", 6 * 60},
	}
	for _, c := range cases {
		body := "Begin 2024-Mar-01 01:00 UTC\nEnd 2024-Mar-01 09:00 UTC\nService ID: Z-1\n" + c.impact
		res, err := e.Parse(context.Background(), body, "ops@fiberprovider.com")
		if err != nil {
			t.Fatalf("%s: %v", c.impact, err)
		}
		if got := res.Record.ImpactSeconds; got == nil || *got != c.want {
			t.Fatalf("%s: ImpactSeconds = %v, want %d", c.impact, got, c.want)
		}
	}
}

func TestParse_MissingRequiredIsIncomplete(t *testing.T) {
	e := newExtractor(t, Options{})
	bodies := map[string]string{
		"empty":      "",
		"no match":   "Nothing to see here.",
		"no circuit": "Start: 2024-Jan-05 10:00 UTC\nEnd: 2024-Jan-05 12:00 UTC\n",
	}
	for name, body := range bodies {
		res, err := e.Parse(context.Background(), body, "")
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if res.Complete {
			t.Fatalf("%s: should be incomplete", name)
		}
	}

	res, err := e.Parse(context.Background(), "Circuit ID: Q-9\nEnd: 2024-Jan-05 12:00 UTC", "noc@noc.metrocarrier.net")
	if err != nil {
		t.Fatalf("labeled: %v", err)
	}
	if res.Complete || res.Record.VendorCircuitID == nil || res.Record.BeginWindow != nil {
		t.Fatalf("labeled partial record: %+v", res.Record)
	}
}

func TestParse_LastMatchWins(t *testing.T) {
	e := newExtractor(t, Options{})
	body := `Start: 2024-Jan-05 10:00 UTC
Start: 2024-Jan-06 22:15 UTC
End: 2024-Jan-07 02:00 UTC
Circuit ID: OLD-1
Circuit ID: NEW-2
`
	res, err := e.Parse(context.Background(), body, "NOC <noc@noc.metrocarrier.net>")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Profile != "labeled_fields" {
		t.Fatalf("profile = %q", res.Profile)
	}
	if want := utc(2024, time.January, 6, 22, 15); !res.Record.BeginWindow.Equal(want) {
		t.Fatalf("BeginWindow = %v, want %v", res.Record.BeginWindow, want)
	}
	if *res.Record.VendorCircuitID != "NEW-2" {
		t.Fatalf("circuit = %q", *res.Record.VendorCircuitID)
	}
	if res.LastToken != notice.CaptureVendorCircuitID {
		t.Fatalf("LastToken = %q", res.LastToken)
	}

	// no impact data: serializer falls back to the full window
	doc := res.Record.Document()
	if want := int64(3*3600 + 45*60); doc.ImpactSeconds != want {
		t.Fatalf("fallback ImpactSeconds = %d, want %d", doc.ImpactSeconds, want)
	}
}

func TestParse_UnrecognizedUnit(t *testing.T) {
	e := newExtractor(t, Options{})
	_, err := e.Parse(context.Background(), "Impact: 1 x 2 fortnights", "noc@noc.metrocarrier.net")
	if !perr.IsCode(err, perr.ErrorCodeUnrecognizedUnit) {
		t.Fatalf("want unrecognized unit, got %v", err)
	}
}

func TestParse_PartialImpactFails(t *testing.T) {
	reg := profile.MustLoad()
	p := profile.MustCompile("units_only", `
		start:\ (?P<beginDatetime>\S+\ \S+\ UTC)
		| end:\ (?P<endDatetime>\S+\ \S+\ UTC)
		| id:\ (?P<parsedVendorCircuitId>\S+)
		| for\ (?P<impactUnits>hours|minutes)
	`)
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}
	e := New(reg, Options{})

	body := "start: 2024-Jan-05 10:00 UTC\nend: 2024-Jan-05 12:00 UTC\nid: X\ndown for hours"
	_, err := e.ParseWith(context.Background(), body, "units_only")
	if !perr.IsCode(err, perr.ErrorCodeInconsistentImpact) {
		t.Fatalf("want inconsistent impact, got %v", err)
	}
}

func TestParse_SenderResolution(t *testing.T) {
	e := newExtractor(t, Options{})

	res, err := e.Parse(context.Background(), roundTrip, "ops@fiberprovider.com")
	if err != nil || res.Profile != "start_end_service_id_impact_n_x_n_units" {
		t.Fatalf("fiberprovider: %+v %v", res, err)
	}

	res, err = e.Parse(context.Background(), roundTrip, "ops@unknown-vendor.example")
	if !perr.IsCode(err, perr.ErrorCodeConfiguration) {
		t.Fatalf("unknown vendor: want configuration error, got %v", err)
	}
	if res.Record != nil || res.Complete {
		t.Fatalf("configuration error must not yield a record")
	}

	if _, err := e.Parse(context.Background(), roundTrip, "garbage"); !perr.IsCode(err, perr.ErrorCodeFormat) {
		t.Fatalf("garbage sender: got %v", err)
	}
}

func TestParseWith(t *testing.T) {
	e := newExtractor(t, Options{})
	res, err := e.ParseWith(context.Background(), roundTrip, "default")
	if err != nil || !res.Complete {
		t.Fatalf("ParseWith(default): %+v %v", res, err)
	}
	if _, err := e.ParseWith(context.Background(), roundTrip, "missing"); !perr.IsCode(err, perr.ErrorCodeConfiguration) {
		t.Fatalf("ParseWith(missing): %v", err)
	}
}

func TestParse_Normalize(t *testing.T) {
	body := "Start: ２０２４-Jan-05 10:00 UTC\r\nEnd: ２０２４-Jan-05 12:00 UTC\r\nService ID: ABC-123\r\nImpact: 2 x 30 minutes interruption"

	raw := newExtractor(t, Options{})
	res, err := raw.Parse(context.Background(), body, "")
	if err != nil || res.Complete {
		t.Fatalf("without normalize should be incomplete: %+v %v", res, err)
	}

	norm := newExtractor(t, Options{Normalize: true})
	res, err = norm.Parse(context.Background(), body, "")
	if err != nil || !res.Complete {
		t.Fatalf("with normalize should be complete: %+v %v", res, err)
	}
}

func TestParse_Canceled(t *testing.T) {
	e := newExtractor(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Parse(ctx, roundTrip, ""); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestDispatch_SkipsUnhandledAndStopsOnError(t *testing.T) {
	p := profile.MustCompile("d", `(?P<noise>n)|(?P<impactMultiplier>[0-9a-z]+)`)
	rec := notice.New()

	last, err := Dispatch("n 5", p, rec, notice.Handlers())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if last != notice.CaptureImpactMultiplier || *rec.ImpactMultiplier != 5 {
		t.Fatalf("last=%q mult=%v", last, rec.ImpactMultiplier)
	}

	last, err = Dispatch("7 bad 9", p, notice.New(), notice.Handlers())
	if !perr.IsCode(err, perr.ErrorCodeFormat) || last != notice.CaptureImpactMultiplier {
		t.Fatalf("want format error at impactMultiplier, got %q %v", last, err)
	}
	if e, _ := perr.As(err); e.Op() != "extract.Dispatch" {
		t.Fatalf("op = %q", e.Op())
	}

	last, err = Dispatch("", p, notice.New(), notice.Handlers())
	if err != nil || last != "" {
		t.Fatalf("empty text: %q %v", last, err)
	}
}
