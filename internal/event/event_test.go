package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	messages [][]byte
	full     bool
}

func (h *fakeHub) Send(msg []byte) bool {
	if h.full {
		return false
	}
	h.messages = append(h.messages, msg)
	return true
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestWSPublisherEncodesEvent(t *testing.T) {
	hub := &fakeHub{}
	p := NewWSPublisher(hub)

	err := p.Publish(context.Background(), Event{Type: TypeStockUpdate, Action: "transfer_completed", Message: "moved"})
	require.NoError(t, err)
	require.Len(t, hub.messages, 1)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(hub.messages[0], &decoded))
	assert.Equal(t, "stock_update", decoded["type"])
	assert.Equal(t, "transfer_completed", decoded["action"])
	assert.NotEmpty(t, decoded["timestamp"])
}

func TestWSPublisherQueueFull(t *testing.T) {
	p := NewWSPublisher(&fakeHub{full: true})
	assert.ErrorIs(t, p.Publish(context.Background(), Event{Type: TypeOrder}), ErrQueueFull)
}

func TestKafkaPublisherKeysByType(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w)

	require.NoError(t, p.Publish(context.Background(), Event{Type: TypeNotification, Action: "created"}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "notification", string(w.msgs[0].Key))
}

func TestFanoutJoinsErrors(t *testing.T) {
	boom := errors.New("broker down")
	hub := &fakeHub{}
	f := Fanout{NewWSPublisher(hub), NewKafkaPublisher(&fakeWriter{err: boom}), Nop{}}

	err := f.Publish(context.Background(), Event{Type: TypeOrder})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, hub.messages, 1, "a failing publisher does not stop the others")
}
