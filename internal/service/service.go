// Package service holds the business rules of the dashboard. Handlers call
// services; services own every multi-entity invariant.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-pos-inventory/internal/event"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/validator"
)

// ErrValidation wraps every struct validation failure so handlers can map it
// to a 400.
var ErrValidation = validator.ErrValidation

var now = time.Now

func validate(v interface{}) error {
	return validator.Validate(v)
}

// notFound maps a repository miss onto the service's own sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// publishTimeout bounds how long a write waits on its event sinks.
var publishTimeout = 5 * time.Second

// broadcaster publishes events inline with the write that caused them and only
// logs failures. A missing websocket client or broker never fails the write.
type broadcaster struct {
	pub event.Publisher
	log *zap.Logger
}

func newBroadcaster(pub event.Publisher, log *zap.Logger) broadcaster {
	if pub == nil {
		pub = event.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return broadcaster{pub: pub, log: log}
}

func (b broadcaster) emit(e event.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := b.pub.Publish(ctx, e); err != nil {
		b.log.Warn("publish event", zap.String("type", e.Type), zap.String("action", e.Action), zap.Error(err))
	}
}
