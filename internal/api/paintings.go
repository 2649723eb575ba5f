package api

import (
	"context"
	"fmt"
)

// PaintingService reads public painting detail, including hints.
type PaintingService struct {
	client *Client
}

func NewPaintingService(client *Client) *PaintingService {
	return &PaintingService{client: client}
}

func (s *PaintingService) Details(ctx context.Context, paintingID int64) (*PaintingDetail, error) {
	var detail PaintingDetail
	path := fmt.Sprintf("/museums/paintings/%d", paintingID)
	if err := s.client.get(ctx, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
