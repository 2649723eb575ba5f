package api

import (
	"context"
	"fmt"
)

// RouteAdminService manages routes through the admin endpoints.
type RouteAdminService struct {
	client *Client
}

func NewRouteAdminService(client *Client) *RouteAdminService {
	return &RouteAdminService{client: client}
}

// RouteInput is the create/update payload for a route.
type RouteInput struct {
	MuseumID    int64  `json:"museumId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

func (s *RouteAdminService) List(ctx context.Context) ([]Route, error) {
	var routes []Route
	if err := s.client.get(ctx, "/admin/routes", nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (s *RouteAdminService) Get(ctx context.Context, id int64) (*Route, error) {
	var route Route
	if err := s.client.get(ctx, fmt.Sprintf("/admin/routes/%d", id), nil, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *RouteAdminService) ByMuseum(ctx context.Context, museumID int64) ([]Route, error) {
	var routes []Route
	if err := s.client.get(ctx, fmt.Sprintf("/admin/routes/museum/%d", museumID), nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (s *RouteAdminService) Create(ctx context.Context, in RouteInput) (*Route, error) {
	var route Route
	if err := s.client.postJSON(ctx, "/admin/routes", in, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *RouteAdminService) Update(ctx context.Context, id int64, in RouteInput) (*Route, error) {
	var route Route
	if err := s.client.putJSON(ctx, fmt.Sprintf("/admin/routes/%d", id), in, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *RouteAdminService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/admin/routes/%d", id))
}

func (s *RouteAdminService) Activate(ctx context.Context, id int64) error {
	return s.client.postJSON(ctx, fmt.Sprintf("/admin/routes/%d/activate", id), nil, nil)
}

func (s *RouteAdminService) Deactivate(ctx context.Context, id int64) error {
	return s.client.postJSON(ctx, fmt.Sprintf("/admin/routes/%d/deactivate", id), nil, nil)
}
