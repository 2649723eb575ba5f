package api

import (
	"context"
	"fmt"
	"io"
)

// VerificationService submits a photo for image-recognition verification
// against the expected painting of a stop.
type VerificationService struct {
	client *Client
}

func NewVerificationService(client *Client) *VerificationService {
	return &VerificationService{client: client}
}

// VerifyPainting uploads the photo as multipart field "image".
func (s *VerificationService) VerifyPainting(ctx context.Context, routeID, paintingID int64, filename string, photo io.Reader) (*VerificationResult, error) {
	var result VerificationResult
	path := fmt.Sprintf("/verify/routes/%d/paintings/%d", routeID, paintingID)
	if err := s.client.postMultipart(ctx, path, "image", filename, photo, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
