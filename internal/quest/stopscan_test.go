package quest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/yourusername/questify/internal/api"
)

// fakeRoutes serves a fixed route or an error.
type fakeRoutes struct {
	route *api.Route
	err   error
}

func (f *fakeRoutes) RouteDetail(ctx context.Context, museumID, routeID int64) (*api.Route, error) {
	return f.route, f.err
}

type fakePaintings struct {
	details map[int64]*api.PaintingDetail
	err     error
	calls   int
}

func (f *fakePaintings) Details(ctx context.Context, paintingID int64) (*api.PaintingDetail, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[paintingID]; ok {
		return d, nil
	}
	return nil, errors.New("unknown painting")
}

type fakeProgress struct {
	progress *api.RouteProgress
	err      error
	started  int
}

func (f *fakeProgress) StartOrResume(ctx context.Context, routeID int64) (*api.RouteProgress, error) {
	f.started++
	return f.progress, f.err
}

func (f *fakeProgress) ForRoute(ctx context.Context, routeID int64) (*api.RouteProgress, error) {
	return f.progress, f.err
}

type fakeVerifier struct {
	result *api.VerificationResult
	err    error
	calls  int
}

func (f *fakeVerifier) VerifyPainting(ctx context.Context, routeID, paintingID int64, filename string, photo io.Reader) (*api.VerificationResult, error) {
	f.calls++
	return f.result, f.err
}

func nightWatchRoute() *api.Route {
	return &api.Route{
		RouteID:    10,
		MuseumID:   1,
		Name:       "Gouden Eeuw",
		TotalStops: 2,
		Stops: []api.RouteStop{
			{RouteStopID: 100, PaintingID: 7, SequenceNumber: 1},
			{RouteStopID: 101, PaintingID: 8, SequenceNumber: 2},
		},
	}
}

func hintedPainting(hints ...string) *api.PaintingDetail {
	detail := &api.PaintingDetail{PaintingID: 7, Title: "De Nachtwacht", Artist: "Rembrandt"}
	for i, text := range hints {
		detail.StandardHints = append(detail.StandardHints, api.Hint{HintID: int64(i + 1), Text: text, DisplayOrder: i + 1})
	}
	return detail
}

func loadTestScan(t *testing.T, hints ...string) (*StopScan, *fakeProgress) {
	t.Helper()
	routes := &fakeRoutes{route: nightWatchRoute()}
	paintings := &fakePaintings{details: map[int64]*api.PaintingDetail{7: hintedPainting(hints...)}}
	progress := &fakeProgress{}
	s := LoadStopScan(context.Background(), routes, paintings, progress, 1, 10, 1)
	return s, progress
}

func TestLoadStopScanReady(t *testing.T) {
	s, progress := loadTestScan(t, "Kijk naar de schutters.")
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want PhaseReady", s.Phase())
	}
	if progress.started != 1 {
		t.Fatalf("StartOrResume called %d times, want 1", progress.started)
	}
	if s.Stop() == nil || s.Stop().SequenceNumber != 1 {
		t.Fatalf("stop = %+v, want sequence 1", s.Stop())
	}
	if s.TotalStops() != 2 {
		t.Fatalf("TotalStops() = %d, want 2", s.TotalStops())
	}
}

func TestLoadStopScanStopNotFound(t *testing.T) {
	routes := &fakeRoutes{route: nightWatchRoute()}
	s := LoadStopScan(context.Background(), routes, &fakePaintings{}, &fakeProgress{}, 1, 10, 99)
	if s.Phase() != PhaseStopNotFound {
		t.Fatalf("phase = %v, want PhaseStopNotFound", s.Phase())
	}
	if s.ErrorMessage() != MsgStopNotFound {
		t.Fatalf("error message = %q", s.ErrorMessage())
	}
}

func TestLoadStopScanRouteFetchFails(t *testing.T) {
	routes := &fakeRoutes{err: errors.New("boom")}
	s := LoadStopScan(context.Background(), routes, &fakePaintings{}, &fakeProgress{}, 1, 10, 1)
	if s.Phase() != PhaseLoadFailed {
		t.Fatalf("phase = %v, want PhaseLoadFailed", s.Phase())
	}
}

func TestLoadStopScanProgressFailureIsNotBlocking(t *testing.T) {
	routes := &fakeRoutes{route: nightWatchRoute()}
	progress := &fakeProgress{err: errors.New("progress down")}
	s := LoadStopScan(context.Background(), routes, &fakePaintings{}, progress, 1, 10, 1)
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want PhaseReady despite progress failure", s.Phase())
	}
}

func TestLoadStopScanPaintingFailureFallsBack(t *testing.T) {
	routes := &fakeRoutes{route: nightWatchRoute()}
	paintings := &fakePaintings{err: errors.New("paintings down")}
	s := LoadStopScan(context.Background(), routes, paintings, &fakeProgress{}, 1, 10, 1)
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want PhaseReady", s.Phase())
	}
	if s.Painting() != nil {
		t.Fatal("painting should be absent after failed lookup")
	}
	if len(s.VisibleHints()) != 0 {
		t.Fatalf("visible hints = %v, want none", s.VisibleHints())
	}
}

func TestHintDisclosure(t *testing.T) {
	s, _ := loadTestScan(t, "eerste", "tweede", "derde")
	if got := s.VisibleHints(); len(got) != 1 || got[0] != "eerste" {
		t.Fatalf("initial hints = %v, want [eerste]", got)
	}
	if !s.HasMoreHints() {
		t.Fatal("HasMoreHints() = false with hints remaining")
	}
	s.RevealHint()
	s.RevealHint()
	s.RevealHint() // clamped, only three exist
	if got := s.VisibleHints(); len(got) != 3 {
		t.Fatalf("hints after reveals = %v, want all three", got)
	}
	if s.HasMoreHints() {
		t.Fatal("HasMoreHints() = true after all revealed")
	}
}

func TestHintDisclosureFiltersEmptyText(t *testing.T) {
	detail := hintedPainting("bruikbaar", "   ", "")
	detail.ExtraHints = []api.Hint{{HintID: 9, Text: "extra"}}
	routes := &fakeRoutes{route: nightWatchRoute()}
	paintings := &fakePaintings{details: map[int64]*api.PaintingDetail{7: detail}}
	s := LoadStopScan(context.Background(), routes, paintings, &fakeProgress{}, 1, 10, 1)
	s.RevealHint()
	s.RevealHint()
	got := s.VisibleHints()
	if len(got) != 2 || got[0] != "bruikbaar" || got[1] != "extra" {
		t.Fatalf("hints = %v, want [bruikbaar extra]", got)
	}
}

func TestBeginSubmitWithoutPhoto(t *testing.T) {
	s, _ := loadTestScan(t)
	if s.BeginSubmit("  ") {
		t.Fatal("BeginSubmit accepted an empty filename")
	}
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want PhaseReady", s.Phase())
	}
	if s.ResultMessage() != MsgNoPhoto {
		t.Fatalf("result message = %q, want the no-photo prompt", s.ResultMessage())
	}
}

func TestSubmitMatchAndAdvance(t *testing.T) {
	s, _ := loadTestScan(t)
	verifier := &fakeVerifier{result: &api.VerificationResult{
		IsMatch:         true,
		PaintingDetails: hintedPainting(),
	}}
	if !s.BeginSubmit("foto.jpg") {
		t.Fatal("BeginSubmit rejected a valid filename")
	}
	s.Submit(context.Background(), verifier, "foto.jpg", strings.NewReader("jpeg"))
	if verifier.calls != 1 {
		t.Fatalf("verifier calls = %d, want 1", verifier.calls)
	}
	if s.Phase() != PhaseMatched {
		t.Fatalf("phase = %v, want PhaseMatched", s.Phase())
	}
	if s.ResultMessage() != MsgMatchDefault {
		t.Fatalf("result message = %q, want the default match message", s.ResultMessage())
	}
	if s.VerifiedPainting() == nil {
		t.Fatal("verified painting missing after match")
	}
	next, ok := s.NextStop()
	if !ok || next != 2 {
		t.Fatalf("NextStop() = (%d, %v), want (2, true)", next, ok)
	}
}

func TestSubmitNoMatchKeepsRetrying(t *testing.T) {
	s, _ := loadTestScan(t)
	verifier := &fakeVerifier{result: &api.VerificationResult{IsMatch: false, Message: "Dat is hem niet."}}
	s.BeginSubmit("foto.jpg")
	s.Submit(context.Background(), verifier, "foto.jpg", strings.NewReader("jpeg"))
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want PhaseReady for retry", s.Phase())
	}
	if s.ResultMessage() != "Dat is hem niet." {
		t.Fatalf("result message = %q", s.ResultMessage())
	}
	if _, ok := s.NextStop(); ok {
		t.Fatal("NextStop() allowed without a match")
	}
}

func TestSubmitErrorIsRetryable(t *testing.T) {
	s, _ := loadTestScan(t)
	verifier := &fakeVerifier{err: errors.New("timeout")}
	s.BeginSubmit("foto.jpg")
	s.Submit(context.Background(), verifier, "foto.jpg", strings.NewReader("jpeg"))
	if s.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want PhaseReady after transport failure", s.Phase())
	}
	if s.ResultMessage() != MsgScanError {
		t.Fatalf("result message = %q, want the generic scan error", s.ResultMessage())
	}
}

func TestLastStopDoesNotAdvance(t *testing.T) {
	routes := &fakeRoutes{route: nightWatchRoute()}
	paintings := &fakePaintings{details: map[int64]*api.PaintingDetail{8: {PaintingID: 8}}}
	s := LoadStopScan(context.Background(), routes, paintings, &fakeProgress{}, 1, 10, 2)
	if !s.IsLastStop() {
		t.Fatal("IsLastStop() = false on the final stop")
	}
	s.BeginSubmit("foto.jpg")
	s.ApplyVerification(&api.VerificationResult{IsMatch: true}, nil)
	if s.Phase() != PhaseMatched {
		t.Fatalf("phase = %v, want PhaseMatched", s.Phase())
	}
	if _, ok := s.NextStop(); ok {
		t.Fatal("NextStop() advanced past the last stop")
	}
}

func TestFreshMachinePerStopResetsHints(t *testing.T) {
	routes := &fakeRoutes{route: nightWatchRoute()}
	paintings := &fakePaintings{details: map[int64]*api.PaintingDetail{
		7: hintedPainting("a", "b", "c"),
		8: {PaintingID: 8, StandardHints: []api.Hint{{HintID: 1, Text: "x"}, {HintID: 2, Text: "y"}}},
	}}
	first := LoadStopScan(context.Background(), routes, paintings, &fakeProgress{}, 1, 10, 1)
	first.RevealHint()
	first.RevealHint()

	second := LoadStopScan(context.Background(), routes, paintings, &fakeProgress{}, 1, 10, 2)
	if got := second.VisibleHints(); len(got) != 1 {
		t.Fatalf("second stop starts with %d hints, want 1", len(got))
	}
}
