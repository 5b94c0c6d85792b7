package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate"
	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate/dto"
	"github.com/fekuna/goldsmith-catalog-service/pkg/broker"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventRateQuoted = "GoldRateQuoted"

type Consumer interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// RateFeedListener applies gold rate quotes published by an upstream feed.
type RateFeedListener struct {
	consumer Consumer
	uc       goldrate.UseCase
	logger   logger.ZapLogger
}

func NewRateFeedListener(consumer Consumer, uc goldrate.UseCase, logger logger.ZapLogger) *RateFeedListener {
	return &RateFeedListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *RateFeedListener) Start(ctx context.Context) {
	l.logger.Info("Starting gold rate feed listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping gold rate feed listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *RateFeedListener) processMessage(ctx context.Context, value []byte) {
	var event broker.Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventRateQuoted {
		return
	}

	var quote dto.RateEvent
	if err := json.Unmarshal(event.Payload, &quote); err != nil {
		l.logger.Error("Failed to unmarshal rate quote", zap.String("event_id", event.EventID), zap.Error(err))
		return
	}

	_, err := l.uc.SetRate(ctx, &dto.SetRateInput{
		Karat:       quote.Karat,
		RatePerGram: quote.RatePerGram,
	})
	if err != nil {
		l.logger.Error("Failed to apply rate quote",
			zap.String("event_id", event.EventID),
			zap.String("karat", quote.Karat),
			zap.Error(err),
		)
	}
}
