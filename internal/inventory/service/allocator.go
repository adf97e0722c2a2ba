package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store"
)

// DefaultSequenceWidth is how many digits the week sequence is padded to.
const DefaultSequenceWidth = 3

// DeviceIDAllocator hands out (weekYr, weekDevice) pairs from the per-week
// counter. It is the only code that touches DeviceCounters.
type DeviceIDAllocator struct {
	Store store.Store

	// Width pads the sequence part of the unique id. Sequences that
	// outgrow it are printed in full.
	Width int

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewDeviceIDAllocator returns an allocator with the default width and
// the wall clock.
func NewDeviceIDAllocator(s store.Store, width int) *DeviceIDAllocator {
	if width <= 0 {
		width = DefaultSequenceWidth
	}
	return &DeviceIDAllocator{Store: s, Width: width, Now: time.Now}
}

// WeekYr formats the ISO year and week of t (in UTC) as YYWW.
func WeekYr(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%02d%02d", year%100, week)
}

// Next allocates an id outside of any caller transaction.
func (a *DeviceIDAllocator) Next(ctx context.Context) (domain.DeviceID, error) {
	return a.Allocate(ctx, a.Store.DeviceCounters())
}

// Allocate increments the counter for the current week through counters,
// which may be bound to a transaction so the allocation rolls back with it.
func (a *DeviceIDAllocator) Allocate(ctx context.Context, counters store.DeviceCounters) (domain.DeviceID, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	width := a.Width
	if width <= 0 {
		width = DefaultSequenceWidth
	}

	weekYr := WeekYr(now())

	seq, err := counters.NextSequence(ctx, weekYr)
	if err != nil {
		return domain.DeviceID{}, fmt.Errorf("allocate device id for %s: %w", weekYr, err)
	}

	return domain.DeviceID{
		WeekYr:     weekYr,
		WeekDevice: seq,
		UniqueID:   fmt.Sprintf("%s%0*d", weekYr, width, seq),
	}, nil
}
