package media

import (
	"context"

	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/fekuna/goldsmith-catalog-service/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// throttledUploader keeps the service within the storage provider's request
// quota and records every attempt.
type throttledUploader struct {
	next    Uploader
	backend string
	limiter *rate.Limiter
	logger  logger.ZapLogger
}

func NewThrottledUploader(next Uploader, backend string, perSecond float64, burst int, log logger.ZapLogger) Uploader {
	return &throttledUploader{
		next:    next,
		backend: backend,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  log,
	}
}

func (u *throttledUploader) Upload(ctx context.Context, file File) (string, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		metrics.RecordUpload(u.backend, err)
		return "", err
	}

	url, err := u.next.Upload(ctx, file)
	metrics.RecordUpload(u.backend, err)
	if err != nil {
		u.logger.Error("image upload failed",
			zap.String("backend", u.backend),
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		return "", err
	}

	u.logger.Debug("image uploaded", zap.String("backend", u.backend), zap.String("url", url))
	return url, nil
}
