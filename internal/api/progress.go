package api

import (
	"context"
	"fmt"
)

// ProgressService reads and starts backend-tracked route progress.
type ProgressService struct {
	client *Client
}

func NewProgressService(client *Client) *ProgressService {
	return &ProgressService{client: client}
}

func (s *ProgressService) All(ctx context.Context) ([]RouteProgress, error) {
	var all []RouteProgress
	if err := s.client.get(ctx, "/progress", nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (s *ProgressService) ForRoute(ctx context.Context, routeID int64) (*RouteProgress, error) {
	var progress RouteProgress
	path := fmt.Sprintf("/progress/routes/%d", routeID)
	if err := s.client.get(ctx, path, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// StartOrResume creates progress for the route if the user has none yet and
// returns the current state either way.
func (s *ProgressService) StartOrResume(ctx context.Context, routeID int64) (*RouteProgress, error) {
	var progress RouteProgress
	path := fmt.Sprintf("/progress/routes/%d", routeID)
	if err := s.client.postJSON(ctx, path, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}
