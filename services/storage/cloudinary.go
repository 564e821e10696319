package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStorageService builds the service from a cloudinary:// URL.
func NewCloudinaryStorageService(cloudinaryURL string) (*CloudinaryStorageService, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL not configured")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorageService{client: cld}, nil
}

func (s *CloudinaryStorageService) UploadPhoto(ctx context.Context, file io.Reader, destFolder string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return resp.SecureURL, nil
}
