package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RouteStopAdminService manages the ordered stops of a route. Sequence
// numbers are a dense 1-based ordering per route; the backend resolves any
// sibling collisions a sequence change causes.
type RouteStopAdminService struct {
	client *Client
}

func NewRouteStopAdminService(client *Client) *RouteStopAdminService {
	return &RouteStopAdminService{client: client}
}

// RouteStopInput is the payload for adding a stop to a route.
type RouteStopInput struct {
	PaintingID     int64 `json:"paintingId"`
	SequenceNumber int   `json:"sequenceNumber"`
}

func (s *RouteStopAdminService) ByRoute(ctx context.Context, routeID int64) ([]RouteStop, error) {
	var stops []RouteStop
	if err := s.client.get(ctx, fmt.Sprintf("/admin/route-stops/route/%d", routeID), nil, &stops); err != nil {
		return nil, err
	}
	return stops, nil
}

func (s *RouteStopAdminService) Add(ctx context.Context, routeID int64, in RouteStopInput) (*RouteStop, error) {
	var stop RouteStop
	if err := s.client.postJSON(ctx, fmt.Sprintf("/admin/route-stops/route/%d", routeID), in, &stop); err != nil {
		return nil, err
	}
	return &stop, nil
}

func (s *RouteStopAdminService) Remove(ctx context.Context, routeStopID int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/admin/route-stops/%d", routeStopID))
}

// UpdateSequence sends the new absolute sequence number as a query
// parameter, matching the backend's PATCH contract.
func (s *RouteStopAdminService) UpdateSequence(ctx context.Context, routeStopID int64, sequenceNumber int) error {
	query := url.Values{"sequenceNumber": {strconv.Itoa(sequenceNumber)}}
	return s.client.patch(ctx, fmt.Sprintf("/admin/route-stops/%d/sequence", routeStopID), query, nil)
}

// Reorder replaces the route's stop order with the given route-stop ids.
func (s *RouteStopAdminService) Reorder(ctx context.Context, routeID int64, orderedIDs []int64) error {
	return s.client.putJSON(ctx, fmt.Sprintf("/admin/route-stops/route/%d/reorder", routeID), orderedIDs, nil)
}
