package storage

import (
	"context"
	"io"
)

// StorageService stores request photos and returns their public URLs.
type StorageService interface {
	UploadPhoto(ctx context.Context, file io.Reader, destFolder string) (string, error)
}
