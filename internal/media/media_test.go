package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateImage(t *testing.T) {
	ok := File{Filename: "ring.png", ContentType: "image/png", Data: pngHeader}
	require.NoError(t, ValidateImage(ok, DefaultMaxImageBytes))

	tests := []struct {
		name string
		file File
		max  int64
	}{
		{"empty", File{ContentType: "image/png"}, DefaultMaxImageBytes},
		{"too large", ok, 4},
		{"declared text", File{ContentType: "text/plain", Data: pngHeader}, DefaultMaxImageBytes},
		{"sniffed text", File{ContentType: "image/png", Data: []byte("hello world")}, DefaultMaxImageBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateImage(tt.file, tt.max))
		})
	}
}

func TestObjectName(t *testing.T) {
	name := objectName(File{Filename: "Ring.JPG", ContentType: "image/jpeg"})
	assert.Regexp(t, `^[0-9a-f-]{36}\.jpg$`, name)

	name = objectName(File{ContentType: "image/webp"})
	assert.Regexp(t, `\.webp$`, name)
}

type stubUploader struct {
	calls int
	err   error
}

func (s *stubUploader) Upload(ctx context.Context, file File) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "https://img.example/" + file.Filename, nil
}

func TestThrottledUploaderPassesThrough(t *testing.T) {
	stub := &stubUploader{}
	u := NewThrottledUploader(stub, "stub", 100, 1, logger.NewNop())

	url, err := u.Upload(context.Background(), File{Filename: "a.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/a.png", url)

	stub.err = errors.New("remote down")
	_, err = u.Upload(context.Background(), File{Filename: "b.png"})
	assert.Error(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestThrottledUploaderHonoursContext(t *testing.T) {
	stub := &stubUploader{}
	u := NewThrottledUploader(stub, "stub", 0.001, 1, logger.NewNop())

	_, err := u.Upload(context.Background(), File{Filename: "first.png"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = u.Upload(ctx, File{Filename: "second.png"})
	assert.Error(t, err)
	assert.Equal(t, 1, stub.calls)
}
