package api

import (
	"context"
	"fmt"
)

// MuseumAdminService manages museums through the admin endpoints.
type MuseumAdminService struct {
	client *Client
}

func NewMuseumAdminService(client *Client) *MuseumAdminService {
	return &MuseumAdminService{client: client}
}

// MuseumInput is the create/update payload for a museum.
type MuseumInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

func (s *MuseumAdminService) List(ctx context.Context) ([]Museum, error) {
	var museums []Museum
	if err := s.client.get(ctx, "/admin/museums", nil, &museums); err != nil {
		return nil, err
	}
	return museums, nil
}

func (s *MuseumAdminService) Get(ctx context.Context, id int64) (*Museum, error) {
	var museum Museum
	if err := s.client.get(ctx, fmt.Sprintf("/admin/museums/%d", id), nil, &museum); err != nil {
		return nil, err
	}
	return &museum, nil
}

func (s *MuseumAdminService) Create(ctx context.Context, in MuseumInput) (*Museum, error) {
	var museum Museum
	if err := s.client.postJSON(ctx, "/admin/museums", in, &museum); err != nil {
		return nil, err
	}
	return &museum, nil
}

func (s *MuseumAdminService) Update(ctx context.Context, id int64, in MuseumInput) (*Museum, error) {
	var museum Museum
	if err := s.client.putJSON(ctx, fmt.Sprintf("/admin/museums/%d", id), in, &museum); err != nil {
		return nil, err
	}
	return &museum, nil
}

func (s *MuseumAdminService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/admin/museums/%d", id))
}

func (s *MuseumAdminService) Activate(ctx context.Context, id int64) error {
	return s.client.postJSON(ctx, fmt.Sprintf("/admin/museums/%d/activate", id), nil, nil)
}

func (s *MuseumAdminService) Deactivate(ctx context.Context, id int64) error {
	return s.client.postJSON(ctx, fmt.Sprintf("/admin/museums/%d/deactivate", id), nil, nil)
}
