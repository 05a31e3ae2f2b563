package event

import (
	"context"
	"errors"
	"fmt"
)

var ErrQueueFull = errors.New("broadcast queue full")

// Broadcaster is satisfied by *ws.Hub.
type Broadcaster interface {
	Send(message []byte) bool
}

type WSPublisher struct {
	hub Broadcaster
}

func NewWSPublisher(hub Broadcaster) *WSPublisher {
	return &WSPublisher{hub: hub}
}

func (p *WSPublisher) Publish(_ context.Context, e Event) error {
	msg, err := e.Encode()
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if !p.hub.Send(msg) {
		return ErrQueueFull
	}
	return nil
}
