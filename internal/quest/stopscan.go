// Package quest holds the client-side state machines of the quest-taking
// flow: the per-stop scan machine and the route progress view. They are
// kept free of terminal concerns so the transitions are testable on their
// own; the TUI drives them and renders their state.
package quest

import (
	"context"
	"io"
	"strings"

	"github.com/yourusername/questify/internal/api"
)

// User-facing copy. The product ships Dutch-localized.
const (
	MsgStopNotFound   = "Deze stop kon niet worden gevonden in deze route."
	MsgLoadFailed     = "Kon deze stop niet laden."
	MsgNoPhoto        = "Kies eerst een foto om te scannen."
	MsgMatchDefault   = "Scan geslaagd! Goed gedaan."
	MsgNoMatchDefault = "Scan mislukt. Probeer het nog eens."
	MsgScanError      = "Er ging iets mis bij het scannen. Probeer het later opnieuw."
	MsgHintFallback   = "De hint voor deze stop is nog niet beschikbaar. Kijk goed rond in de zaal!"
)

// Phase is the state of one stop visit.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady          // awaiting a scan
	PhaseSubmitting     // photo uploaded, waiting for the verdict
	PhaseMatched
	PhaseStopNotFound // terminal: requested sequence number absent
	PhaseLoadFailed   // terminal: route detail could not be fetched
)

// RouteFetcher and friends are the slices of the API surface the quest flow
// needs; *api.MuseumService etc. satisfy them, and tests substitute fakes.
type RouteFetcher interface {
	RouteDetail(ctx context.Context, museumID, routeID int64) (*api.Route, error)
}

type PaintingFetcher interface {
	Details(ctx context.Context, paintingID int64) (*api.PaintingDetail, error)
}

type ProgressStarter interface {
	StartOrResume(ctx context.Context, routeID int64) (*api.RouteProgress, error)
}

type Verifier interface {
	VerifyPainting(ctx context.Context, routeID, paintingID int64, filename string, photo io.Reader) (*api.VerificationResult, error)
}

// StopScan is the state machine for one visited stop, keyed by
// (museumID, routeID, stopNumber). Revisiting the same stop always builds a
// fresh machine; match state never carries over between stop numbers.
type StopScan struct {
	MuseumID   int64
	RouteID    int64
	StopNumber int

	phase    Phase
	route    *api.Route
	stop     *api.RouteStop
	painting *api.PaintingDetail

	hints        []string
	visibleHints int

	errMsg    string
	resultMsg string
	verified  *api.PaintingDetail
}

// LoadStopScan runs the mount sequence of the stop screen: best-effort
// progress start, route detail fetch, stop lookup, optional painting fetch.
func LoadStopScan(ctx context.Context, routes RouteFetcher, paintings PaintingFetcher, progress ProgressStarter, museumID, routeID int64, stopNumber int) *StopScan {
	s := &StopScan{
		MuseumID:   museumID,
		RouteID:    routeID,
		StopNumber: stopNumber,
		phase:      PhaseLoading,
	}

	// Progress is advisory, not blocking.
	if progress != nil {
		_, _ = progress.StartOrResume(ctx, routeID)
	}

	route, err := routes.RouteDetail(ctx, museumID, routeID)
	if err != nil {
		s.phase = PhaseLoadFailed
		s.errMsg = MsgLoadFailed
		return s
	}
	s.route = route

	for i := range route.Stops {
		if route.Stops[i].SequenceNumber == stopNumber {
			s.stop = &route.Stops[i]
			break
		}
	}
	if s.stop == nil {
		s.phase = PhaseStopNotFound
		s.errMsg = MsgStopNotFound
		return s
	}

	if s.stop.PaintingID != 0 {
		// Hints and extra info are optional; a failed lookup falls back to
		// the placeholder hint.
		if detail, err := paintings.Details(ctx, s.stop.PaintingID); err == nil {
			s.setPainting(detail)
		}
	}

	s.phase = PhaseReady
	return s
}

// setPainting installs the painting detail and resets hint disclosure for
// the new hint list.
func (s *StopScan) setPainting(detail *api.PaintingDetail) {
	s.painting = detail
	s.hints = collectHints(detail)
	if len(s.hints) == 0 {
		s.visibleHints = 0
	} else {
		s.visibleHints = 1
	}
}

// collectHints concatenates standard then extra hints, dropping empty text.
func collectHints(detail *api.PaintingDetail) []string {
	if detail == nil {
		return nil
	}
	var hints []string
	for _, h := range detail.StandardHints {
		if strings.TrimSpace(h.Text) != "" {
			hints = append(hints, h.Text)
		}
	}
	for _, h := range detail.ExtraHints {
		if strings.TrimSpace(h.Text) != "" {
			hints = append(hints, h.Text)
		}
	}
	return hints
}

func (s *StopScan) Phase() Phase                 { return s.phase }
func (s *StopScan) Route() *api.Route            { return s.route }
func (s *StopScan) Stop() *api.RouteStop         { return s.stop }
func (s *StopScan) Painting() *api.PaintingDetail { return s.painting }
func (s *StopScan) ErrorMessage() string         { return s.errMsg }
func (s *StopScan) ResultMessage() string        { return s.resultMsg }

// VerifiedPainting is the full detail returned by a successful match, used
// for the "found" panel.
func (s *StopScan) VerifiedPainting() *api.PaintingDetail { return s.verified }

// VisibleHints returns the currently disclosed hints, oldest first.
func (s *StopScan) VisibleHints() []string {
	if s.visibleHints > len(s.hints) {
		return s.hints
	}
	return s.hints[:s.visibleHints]
}

// HasMoreHints reports whether another hint can still be revealed.
func (s *StopScan) HasMoreHints() bool {
	return s.visibleHints < len(s.hints)
}

// RevealHint discloses exactly one more hint, clamped to the total count.
func (s *StopScan) RevealHint() {
	if s.visibleHints < len(s.hints) {
		s.visibleHints++
	}
}

// TotalStops prefers the route's declared count and falls back to the stop
// list length.
func (s *StopScan) TotalStops() int {
	if s.route == nil {
		return 0
	}
	if s.route.TotalStops > 0 {
		return s.route.TotalStops
	}
	return len(s.route.Stops)
}

// BeginSubmit validates locally and moves to the submitting phase. An empty
// filename never reaches the network; it surfaces as a non-match message
// and the phase stays put.
func (s *StopScan) BeginSubmit(filename string) bool {
	if s.phase != PhaseReady {
		return false
	}
	if strings.TrimSpace(filename) == "" {
		s.resultMsg = MsgNoPhoto
		return false
	}
	s.resultMsg = ""
	s.phase = PhaseSubmitting
	return true
}

// Submit runs the verification call after BeginSubmit allowed it.
func (s *StopScan) Submit(ctx context.Context, verifier Verifier, filename string, photo io.Reader) {
	if s.phase != PhaseSubmitting || s.stop == nil {
		return
	}
	result, err := verifier.VerifyPainting(ctx, s.RouteID, s.stop.PaintingID, filename, photo)
	s.ApplyVerification(result, err)
}

// ApplyVerification settles the submitting phase. Any transport or server
// failure is treated as a non-match with a generic message; the flow never
// dead-ends and the user may retry.
func (s *StopScan) ApplyVerification(result *api.VerificationResult, err error) {
	if s.phase != PhaseSubmitting {
		return
	}
	if err != nil || result == nil {
		s.phase = PhaseReady
		s.resultMsg = MsgScanError
		return
	}
	if result.IsMatch {
		s.phase = PhaseMatched
		s.resultMsg = result.Message
		if s.resultMsg == "" {
			s.resultMsg = MsgMatchDefault
		}
		if result.PaintingDetails != nil {
			s.verified = result.PaintingDetails
		}
		return
	}
	s.phase = PhaseReady
	s.resultMsg = result.Message
	if s.resultMsg == "" {
		s.resultMsg = MsgNoMatchDefault
	}
}

// IsLastStop reports whether this stop closes the route.
func (s *StopScan) IsLastStop() bool {
	total := s.TotalStops()
	return s.stop != nil && total > 0 && s.stop.SequenceNumber >= total
}

// NextStop returns the stop number to advance to. Advancing is only allowed
// from the matched phase; on the last stop ok is false and the primary
// action routes back to the route overview instead.
func (s *StopScan) NextStop() (int, bool) {
	if s.phase != PhaseMatched || s.stop == nil {
		return 0, false
	}
	if s.IsLastStop() {
		return 0, false
	}
	return s.stop.SequenceNumber + 1, true
}
