package api

import (
	"context"
	"fmt"
)

// PaintingAdminService manages paintings and their hints.
type PaintingAdminService struct {
	client *Client
}

func NewPaintingAdminService(client *Client) *PaintingAdminService {
	return &PaintingAdminService{client: client}
}

// PaintingInput is the create/update payload for a painting. Optional
// numerics are pointers so an empty form field is submitted as absent
// rather than zero.
type PaintingInput struct {
	MuseumID            int64  `json:"museumId"`
	Title               string `json:"title"`
	Artist              string `json:"artist"`
	Year                *int   `json:"year,omitempty"`
	MuseumLabel         string `json:"museumLabel,omitempty"`
	ImageRecognitionKey string `json:"imageRecognitionKey,omitempty"`
	InfoTitle           string `json:"infoTitle,omitempty"`
	InfoText            string `json:"infoText,omitempty"`
	ExternalLink        string `json:"externalLink,omitempty"`
}

// HintInput is the payload for adding a hint to a painting.
type HintInput struct {
	HintType     string `json:"hintType"`
	Text         string `json:"text"`
	DisplayOrder *int   `json:"displayOrder,omitempty"`
}

func (s *PaintingAdminService) List(ctx context.Context) ([]PaintingDetail, error) {
	var paintings []PaintingDetail
	if err := s.client.get(ctx, "/admin/paintings", nil, &paintings); err != nil {
		return nil, err
	}
	return paintings, nil
}

func (s *PaintingAdminService) Get(ctx context.Context, id int64) (*PaintingDetail, error) {
	var painting PaintingDetail
	if err := s.client.get(ctx, fmt.Sprintf("/admin/paintings/%d", id), nil, &painting); err != nil {
		return nil, err
	}
	return &painting, nil
}

func (s *PaintingAdminService) ByMuseum(ctx context.Context, museumID int64) ([]PaintingDetail, error) {
	var paintings []PaintingDetail
	if err := s.client.get(ctx, fmt.Sprintf("/admin/paintings/museum/%d", museumID), nil, &paintings); err != nil {
		return nil, err
	}
	return paintings, nil
}

func (s *PaintingAdminService) Create(ctx context.Context, in PaintingInput) (*PaintingDetail, error) {
	var painting PaintingDetail
	if err := s.client.postJSON(ctx, "/admin/paintings", in, &painting); err != nil {
		return nil, err
	}
	return &painting, nil
}

func (s *PaintingAdminService) Update(ctx context.Context, id int64, in PaintingInput) (*PaintingDetail, error) {
	var painting PaintingDetail
	if err := s.client.putJSON(ctx, fmt.Sprintf("/admin/paintings/%d", id), in, &painting); err != nil {
		return nil, err
	}
	return &painting, nil
}

func (s *PaintingAdminService) Delete(ctx context.Context, id int64) error {
	return s.client.delete(ctx, fmt.Sprintf("/admin/paintings/%d", id))
}

func (s *PaintingAdminService) AddHint(ctx context.Context, paintingID int64, in HintInput) (*Hint, error) {
	var hint Hint
	if err := s.client.postJSON(ctx, fmt.Sprintf("/admin/paintings/%d/hints", paintingID), in, &hint); err != nil {
		return nil, err
	}
	return &hint, nil
}
