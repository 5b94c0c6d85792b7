package listener

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate/dto"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/pkg/broker"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUseCase struct {
	inputs []dto.SetRateInput
}

func (r *recordingUseCase) ListRates(ctx context.Context) ([]model.GoldRate, error) { return nil, nil }
func (r *recordingUseCase) GetRate(ctx context.Context, karat model.Karat) (*model.GoldRate, error) {
	return nil, nil
}
func (r *recordingUseCase) DeleteRate(ctx context.Context, karat model.Karat) error { return nil }
func (r *recordingUseCase) SetRate(ctx context.Context, input *dto.SetRateInput) (*model.GoldRate, error) {
	r.inputs = append(r.inputs, *input)
	return &model.GoldRate{Karat: model.Karat(input.Karat), RatePerGram: input.RatePerGram}, nil
}

// sliceConsumer replays messages then blocks until the context ends.
type sliceConsumer struct {
	msgs []kafka.Message
}

func (c *sliceConsumer) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(c.msgs) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := c.msgs[0]
	c.msgs = c.msgs[1:]
	return m, nil
}

func encode(t *testing.T, eventType string, payload interface{}) kafka.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	data, err := json.Marshal(broker.Event{EventID: "evt", EventType: eventType, Payload: raw, Timestamp: time.Now()})
	require.NoError(t, err)
	return kafka.Message{Value: data}
}

func TestListenerAppliesQuotesAndSkipsNoise(t *testing.T) {
	uc := &recordingUseCase{}
	consumer := &sliceConsumer{msgs: []kafka.Message{
		encode(t, EventRateQuoted, dto.RateEvent{Karat: "24k", RatePerGram: 7100}),
		{Value: []byte("not json")},
		encode(t, "SomethingElse", dto.RateEvent{Karat: "22k", RatePerGram: 1}),
		encode(t, EventRateQuoted, dto.RateEvent{Karat: "18k", RatePerGram: 5200}),
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	NewRateFeedListener(consumer, uc, logger.NewNop()).Start(ctx)

	require.Len(t, uc.inputs, 2)
	assert.Equal(t, "24k", uc.inputs[0].Karat)
	assert.Equal(t, 5200.0, uc.inputs[1].RatePerGram)
	assert.True(t, errors.Is(ctx.Err(), context.DeadlineExceeded))
}
