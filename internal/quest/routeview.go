package quest

import (
	"context"
	"sort"
	"sync"

	"github.com/yourusername/questify/internal/api"
)

// ProgressFetcher reads the user's progress on a route.
type ProgressFetcher interface {
	ForRoute(ctx context.Context, routeID int64) (*api.RouteProgress, error)
}

// RouteView is the read-only aggregation behind the route overview screen:
// route structure, per-painting metadata, and progress. Each piece loads
// independently; one failing fetch never blanks the others.
type RouteView struct {
	MuseumID int64
	RouteID  int64

	Route    *api.Route
	Progress *api.RouteProgress
	Details  map[int64]*api.PaintingDetail

	RouteErr    error
	ProgressErr error
}

// LoadRouteView fans out the route and progress fetches, waits for both,
// then resolves painting detail for every unique painting id concurrently.
// Individual painting lookups may fail without affecting their siblings.
func LoadRouteView(ctx context.Context, routes RouteFetcher, progress ProgressFetcher, paintings PaintingFetcher, museumID, routeID int64) *RouteView {
	view := &RouteView{
		MuseumID: museumID,
		RouteID:  routeID,
		Details:  map[int64]*api.PaintingDetail{},
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		view.Route, view.RouteErr = routes.RouteDetail(ctx, museumID, routeID)
	}()
	go func() {
		defer wg.Done()
		view.Progress, view.ProgressErr = progress.ForRoute(ctx, routeID)
	}()
	wg.Wait()

	if view.Route == nil {
		return view
	}

	ids := uniquePaintingIDs(view.Route.Stops)
	if len(ids) == 0 {
		return view
	}

	var mu sync.Mutex
	var dwg sync.WaitGroup
	for _, id := range ids {
		dwg.Add(1)
		go func(paintingID int64) {
			defer dwg.Done()
			detail, err := paintings.Details(ctx, paintingID)
			if err != nil {
				return // detail enrichment is optional
			}
			mu.Lock()
			view.Details[paintingID] = detail
			mu.Unlock()
		}(id)
	}
	dwg.Wait()

	return view
}

func uniquePaintingIDs(stops []api.RouteStop) []int64 {
	seen := map[int64]struct{}{}
	var ids []int64
	for _, stop := range stops {
		if stop.PaintingID == 0 {
			continue
		}
		if _, ok := seen[stop.PaintingID]; ok {
			continue
		}
		seen[stop.PaintingID] = struct{}{}
		ids = append(ids, stop.PaintingID)
	}
	return ids
}

// SortedStops returns the route's stops ordered by sequence number
// ascending. A missing sequence number sorts as 0.
func (v *RouteView) SortedStops() []api.RouteStop {
	if v.Route == nil {
		return nil
	}
	stops := make([]api.RouteStop, len(v.Route.Stops))
	copy(stops, v.Route.Stops)
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].SequenceNumber < stops[j].SequenceNumber
	})
	return stops
}

// Detail returns the resolved painting metadata for a stop, or nil when the
// lookup failed or never resolved.
func (v *RouteView) Detail(paintingID int64) *api.PaintingDetail {
	return v.Details[paintingID]
}

// Completed reports whether the stop's painting has been found.
func (v *RouteView) Completed(paintingID int64) bool {
	return v.Progress.Completed(paintingID)
}

// IsCompleted reports whether the whole route is done; the congratulations
// banner shows only then.
func (v *RouteView) IsCompleted() bool {
	return v.Progress != nil && v.Progress.IsCompleted
}
