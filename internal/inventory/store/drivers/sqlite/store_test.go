package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store/drivers/sqlite"
	"github.com/aussiebroadwan/stocktake/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func newDevice(owner string, weekYr string, seq int, typ domain.DeviceType, sub domain.DeviceSubtype) domain.Device {
	now := time.Now().UTC()
	unique := weekYr + []string{"000", "001", "002", "003", "004", "005", "006"}[seq%7]
	return domain.Device{
		ID:          idx.New().String(),
		WeekYr:      weekYr,
		WeekDevice:  seq,
		UniqueID:    unique,
		FullID:      unique + string(typ) + string(sub),
		Type:        typ,
		Subtype:     sub,
		Code:        1,
		Description: "laptop",
		EstValue:    100,
		CreatedBy:   owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	u := createUser(t, s, "Ada@Example.com")

	got, err := s.Users().GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "Ada@Example.com", got.Email)
	require.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Microsecond)

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", got.FirstName)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := u
	dup.ID = idx.New().String()
	dup.Email = "ADA@example.com"
	err = s.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := createUser(t, s, "a@b.co")

	now := time.Now().UTC()
	live := domain.Session{ID: idx.New().String(), UserID: u.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	expired := domain.Session{ID: idx.New().String(), UserID: u.ID, ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour)}
	require.NoError(t, s.Sessions().CreateSession(ctx, live))
	require.NoError(t, s.Sessions().CreateSession(ctx, expired))

	got, err := s.Sessions().GetSession(ctx, live.ID)
	require.NoError(t, err)
	require.True(t, got.Active(now))

	require.NoError(t, s.Sessions().RevokeSession(ctx, live.ID))
	got, err = s.Sessions().GetSession(ctx, live.ID)
	require.NoError(t, err)
	require.True(t, got.Revoked)
	require.False(t, got.Active(now))

	require.ErrorIs(t, s.Sessions().RevokeSession(ctx, "missing"), store.ErrNotFound)

	n, err := s.Sessions().DeleteStaleSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Sessions().GetSession(ctx, expired.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeviceCounters(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for want := 1; want <= 3; want++ {
		got, err := s.DeviceCounters().NextSequence(ctx, "2610")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	got, err := s.DeviceCounters().NextSequence(ctx, "2611")
	require.NoError(t, err)
	require.Equal(t, 1, got, "buckets are independent")
}

func TestDeviceCounterRollsBackWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		seq, err := tx.DeviceCounters().NextSequence(ctx, "2610")
		require.NoError(t, err)
		require.Equal(t, 1, seq)
		return boom
	})
	require.ErrorIs(t, err, boom)

	seq, err := s.DeviceCounters().NextSequence(ctx, "2610")
	require.NoError(t, err)
	require.Equal(t, 1, seq)
}

func TestDevicesCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := createUser(t, s, "a@b.co")

	d := newDevice(u.ID, "2610", 1, domain.DeviceTypeA, domain.DeviceSubtypeL)
	d.Notes = []domain.Note{{Note: "arrived", Code: 1, CreatedAt: d.CreatedAt}}
	require.NoError(t, s.Devices().CreateDevice(ctx, d))

	got, err := s.Devices().GetDeviceByFullID(ctx, "2610001AL")
	require.NoError(t, err)
	require.Equal(t, d.ID, got.ID)
	require.Equal(t, domain.DeviceTypeA, got.Type)
	require.Equal(t, domain.DeviceSubtypeL, got.Subtype)
	require.Len(t, got.Notes, 1)
	require.Equal(t, "arrived", got.Notes[0].Note)

	_, err = s.Devices().GetDeviceByFullID(ctx, "nope")
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("duplicate full id", func(t *testing.T) {
		dup := newDevice(u.ID, "2610", 2, domain.DeviceTypeA, domain.DeviceSubtypeL)
		dup.FullID = d.FullID
		require.ErrorIs(t, s.Devices().CreateDevice(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("duplicate bucket sequence", func(t *testing.T) {
		dup := newDevice(u.ID, "2610", 1, domain.DeviceTypeC, domain.DeviceSubtypeNone)
		dup.UniqueID = "other"
		dup.FullID = "otherC"
		require.ErrorIs(t, s.Devices().CreateDevice(ctx, dup), store.ErrAlreadyExists)
	})
}

func TestDevicesAppendNote(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := createUser(t, s, "a@b.co")

	d := newDevice(u.ID, "2610", 1, domain.DeviceTypeC, domain.DeviceSubtypeNone)
	require.NoError(t, s.Devices().CreateDevice(ctx, d))

	note := domain.Note{Note: "screen cracked", Code: -2, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Devices().AppendNote(ctx, d.FullID, note))

	got, err := s.Devices().GetDeviceByFullID(ctx, d.FullID)
	require.NoError(t, err)
	require.Equal(t, -2, got.Code)
	require.Len(t, got.Notes, 1)
	require.Equal(t, "screen cracked", got.Notes[0].Note)

	require.ErrorIs(t, s.Devices().AppendNote(ctx, "missing", note), store.ErrNotFound)
}

func TestDevicesList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := createUser(t, s, "a@b.co")

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	fixtures := []struct {
		typ   domain.DeviceType
		sub   domain.DeviceSubtype
		code  int
		value float64
		desc  string
	}{
		{domain.DeviceTypeA, domain.DeviceSubtypeL, 1, 50, "Dell laptop"},
		{domain.DeviceTypeA, domain.DeviceSubtypeD, 2, 150, "HP desktop"},
		{domain.DeviceTypeC, domain.DeviceSubtypeNone, -1, 20, "USB-C cable 100%"},
		{domain.DeviceTypeW, domain.DeviceSubtypeL, 5, 900, "Lenovo laptop"},
		{domain.DeviceTypeI, domain.DeviceSubtypeNone, 0, 5, "ipad_stand"},
	}
	for i, f := range fixtures {
		d := newDevice(u.ID, "2610", i+1, f.typ, f.sub)
		d.Code = f.code
		d.EstValue = f.value
		d.Description = f.desc
		d.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		d.UpdatedAt = d.CreatedAt
		require.NoError(t, s.Devices().CreateDevice(ctx, d))
	}

	list := func(t *testing.T, q domain.DeviceQuery) []string {
		t.Helper()
		if q.Items == 0 {
			q.Items = 10
		}
		if q.Page == 0 {
			q.Page = 1
		}
		devices, err := s.Devices().ListDevices(ctx, q)
		require.NoError(t, err)
		out := make([]string, 0, len(devices))
		for _, d := range devices {
			out = append(out, d.Description)
		}
		return out
	}

	t.Run("no filters date ascending", func(t *testing.T) {
		got := list(t, domain.DeviceQuery{Order: domain.OrderAsc, Sort: domain.SortByDate})
		require.Equal(t, []string{"Dell laptop", "HP desktop", "USB-C cable 100%", "Lenovo laptop", "ipad_stand"}, got)
	})

	t.Run("type filter", func(t *testing.T) {
		got := list(t, domain.DeviceQuery{Order: domain.OrderAsc, Types: []domain.DeviceType{domain.DeviceTypeA}})
		require.Equal(t, []string{"Dell laptop", "HP desktop"}, got)
	})

	t.Run("subtype and code filters", func(t *testing.T) {
		got := list(t, domain.DeviceQuery{
			Order:    domain.OrderAsc,
			Subtypes: []domain.DeviceSubtype{domain.DeviceSubtypeL},
			Codes:    []int{5},
		})
		require.Equal(t, []string{"Lenovo laptop"}, got)
	})

	t.Run("value range and value sort", func(t *testing.T) {
		got := list(t, domain.DeviceQuery{
			Order: domain.OrderDsc,
			Sort:  domain.SortByValue,
			Value: &domain.ValueRange{Min: 10, Max: 200},
		})
		require.Equal(t, []string{"HP desktop", "Dell laptop", "USB-C cable 100%"}, got)
	})

	t.Run("date range", func(t *testing.T) {
		got := list(t, domain.DeviceQuery{
			Order: domain.OrderAsc,
			Date:  &domain.TimeRange{Min: base.Add(time.Hour), Max: base.Add(2 * time.Hour)},
		})
		require.Equal(t, []string{"HP desktop", "USB-C cable 100%"}, got)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		got := list(t, domain.DeviceQuery{Order: domain.OrderAsc, Search: "LAPTOP"})
		require.Equal(t, []string{"Dell laptop", "Lenovo laptop"}, got)
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		require.Equal(t, []string{"USB-C cable 100%"}, list(t, domain.DeviceQuery{Order: domain.OrderAsc, Search: "%"}))
		require.Equal(t, []string{"ipad_stand"}, list(t, domain.DeviceQuery{Order: domain.OrderAsc, Search: "_"}))
	})

	t.Run("pagination", func(t *testing.T) {
		q := domain.DeviceQuery{Order: domain.OrderAsc, Sort: domain.SortByDate, Items: 2, Page: 2}
		devices, err := s.Devices().ListDevices(ctx, q)
		require.NoError(t, err)
		require.Len(t, devices, 2)
		require.Equal(t, "USB-C cable 100%", devices[0].Description)
	})
}

func TestClosedStoreIsUnavailable(t *testing.T) {
	s, err := sqlite.NewStore(sqlite.MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.DeviceCounters().NextSequence(context.Background(), "2610")
	require.ErrorIs(t, err, store.ErrUnavailable)
}
