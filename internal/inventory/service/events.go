package service

import (
	"context"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
)

// EventPublisher is told about inventory changes after they commit.
// Implementations must not block for long; failures are only logged.
type EventPublisher interface {
	DeviceRegistered(ctx context.Context, d domain.Device) error
	NoteAppended(ctx context.Context, fullID string, n domain.Note) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) DeviceRegistered(context.Context, domain.Device) error     { return nil }
func (NopPublisher) NoteAppended(context.Context, string, domain.Note) error { return nil }
