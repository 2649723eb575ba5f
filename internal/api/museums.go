package api

import (
	"context"
	"fmt"
)

// MuseumService reads the public museum and route catalog.
type MuseumService struct {
	client *Client
}

func NewMuseumService(client *Client) *MuseumService {
	return &MuseumService{client: client}
}

func (s *MuseumService) List(ctx context.Context) ([]Museum, error) {
	var museums []Museum
	if err := s.client.get(ctx, "/museums", nil, &museums); err != nil {
		return nil, err
	}
	return museums, nil
}

func (s *MuseumService) Get(ctx context.Context, museumID int64) (*Museum, error) {
	var museum Museum
	if err := s.client.get(ctx, fmt.Sprintf("/museums/%d", museumID), nil, &museum); err != nil {
		return nil, err
	}
	return &museum, nil
}

func (s *MuseumService) RouteDetail(ctx context.Context, museumID, routeID int64) (*Route, error) {
	var route Route
	path := fmt.Sprintf("/museums/%d/routes/%d", museumID, routeID)
	if err := s.client.get(ctx, path, nil, &route); err != nil {
		return nil, err
	}
	return &route, nil
}
