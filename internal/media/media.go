// Package media stores product images in external object storage.
package media

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// File is an image received with a product write.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Uploader stores a file and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

// DefaultMaxImageBytes caps accepted images at 5 MB.
const DefaultMaxImageBytes = 5 << 20

// ValidateImage accepts only non-empty image payloads up to maxBytes. The
// declared content type and the sniffed one must both be images.
func ValidateImage(file File, maxBytes int64) error {
	if len(file.Data) == 0 {
		return fmt.Errorf("image is empty")
	}
	if int64(len(file.Data)) > maxBytes {
		return fmt.Errorf("image exceeds %d bytes", maxBytes)
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return fmt.Errorf("only image files are allowed")
	}
	if sniffed := http.DetectContentType(file.Data); !strings.HasPrefix(sniffed, "image/") {
		return fmt.Errorf("only image files are allowed")
	}
	return nil
}
