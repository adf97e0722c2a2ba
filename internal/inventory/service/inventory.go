package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store"
	"github.com/aussiebroadwan/stocktake/pkg/idx"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
	"github.com/aussiebroadwan/stocktake/pkg/slogx"
)

type InventoryService struct {
	Store     store.Store
	Allocator *DeviceIDAllocator
	Events    EventPublisher
	Now       func() time.Time
}

func (s *InventoryService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InventoryService) events() EventPublisher {
	if s.Events == nil {
		return NopPublisher{}
	}
	return s.Events
}

// RegisterDevice validates req, allocates the next id for this week and
// stores the device. Allocation and insert share a transaction, so a
// failed insert leaves no gap in the week's sequence.
func (s *InventoryService) RegisterDevice(
	ctx context.Context,
	userID string,
	req inventorysdk.RegisterDeviceRequest,
) (domain.Device, error) {
	l := slogx.FromContext(ctx)

	reg, verrs := ValidateRegistration(req)
	if verrs != nil {
		return domain.Device{}, verrs
	}

	var device domain.Device
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := s.Allocator.Allocate(ctx, tx.DeviceCounters())
		if err != nil {
			return err
		}

		now := s.now()
		device = domain.Device{
			ID:          idx.New().String(),
			WeekYr:      id.WeekYr,
			WeekDevice:  id.WeekDevice,
			UniqueID:    id.UniqueID,
			FullID:      id.FullID(reg.Type, reg.Subtype),
			Type:        reg.Type,
			Subtype:     reg.Subtype,
			Code:        reg.Code,
			Description: reg.Description,
			EstValue:    reg.EstValue,
			Notes:       []domain.Note{},
			CreatedBy:   userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if reg.Note != "" {
			device.Notes = append(device.Notes, domain.Note{Note: reg.Note, Code: reg.Code, CreatedAt: now})
		}

		if err := tx.Devices().CreateDevice(ctx, device); err != nil {
			return fmt.Errorf("create device: %w", err)
		}
		return nil
	})
	if err != nil {
		l.Error("failed to register device", slog.Any("error", err))
		return domain.Device{}, err
	}

	l.Info("device registered", slog.String("full_id", device.FullID))

	if err := s.events().DeviceRegistered(ctx, device); err != nil {
		l.Warn("failed to publish device event", slog.String("full_id", device.FullID), slog.Any("error", err))
	}
	return device, nil
}

// ListDevices validates req and runs the filtered listing.
func (s *InventoryService) ListDevices(ctx context.Context, req inventorysdk.ListDevicesRequest) ([]domain.Device, error) {
	q, verrs := ValidateListQuery(req)
	if verrs != nil {
		return nil, verrs
	}

	devices, err := s.Store.Devices().ListDevices(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return devices, nil
}

// GetDevice looks a device up by its full id.
func (s *InventoryService) GetDevice(ctx context.Context, fullID string) (domain.Device, error) {
	d, err := s.Store.Devices().GetDeviceByFullID(ctx, fullID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		return domain.Device{}, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}

// AppendNote records a note against a device and moves it to the note's
// status code. It returns the updated device.
func (s *InventoryService) AppendNote(
	ctx context.Context,
	fullID string,
	req inventorysdk.AddNoteRequest,
) (domain.Device, error) {
	l := slogx.FromContext(ctx)

	note, verrs := ValidateNote(req)
	if verrs != nil {
		return domain.Device{}, verrs
	}
	note.CreatedAt = s.now()

	var device domain.Device
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Devices().AppendNote(ctx, fullID, note); err != nil {
			return err
		}
		d, err := tx.Devices().GetDeviceByFullID(ctx, fullID)
		if err != nil {
			return err
		}
		device = d
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Device{}, ErrDeviceNotFound
	}
	if err != nil {
		return domain.Device{}, fmt.Errorf("append note: %w", err)
	}

	l.Info("note appended", slog.String("full_id", fullID), slog.Int("code", note.Code))

	if err := s.events().NoteAppended(ctx, fullID, note); err != nil {
		l.Warn("failed to publish note event", slog.String("full_id", fullID), slog.Any("error", err))
	}
	return device, nil
}
