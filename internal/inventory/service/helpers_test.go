package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/service"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store/drivers/sqlite"
	"github.com/aussiebroadwan/stocktake/pkg/cryptox"
	"github.com/aussiebroadwan/stocktake/pkg/inventorysdk"
	"github.com/aussiebroadwan/stocktake/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "stocktake-test"

func newTestStore(t *testing.T, dsn string) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type services struct {
	Users     *service.UserService
	Sessions  *service.SessionService
	Inventory *service.InventoryService
	Events    *recordingPublisher
}

func newServices(t *testing.T, s *sqlite.Store, now func() time.Time) services {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keys, testIssuer, nil)

	users := &service.UserService{Store: s, Hasher: cryptox.NewPasswordHasher("pepper"), Now: now}
	events := &recordingPublisher{}

	alloc := service.NewDeviceIDAllocator(s, 3)
	alloc.Now = now

	return services{
		Users: users,
		Sessions: &service.SessionService{
			Store:    s,
			Users:    users,
			Signer:   signer,
			Verifier: verifier,
			Issuer:   testIssuer,
			TTL:      time.Hour,
			Now:      now,
		},
		Inventory: &service.InventoryService{Store: s, Allocator: alloc, Events: events, Now: now},
		Events:    events,
	}
}

func registerUser(t *testing.T, svc services, email string) domain.User {
	t.Helper()

	u, err := svc.Users.Register(context.Background(), inventorysdk.RegisterUserRequest{
		Email:     email,
		Password:  "correct horse battery",
		FirstName: "Grace",
		LastName:  "Hopper",
	})
	require.NoError(t, err)
	return u
}

type recordingPublisher struct {
	mu         sync.Mutex
	registered []string
	notes      []string
}

func (p *recordingPublisher) DeviceRegistered(_ context.Context, d domain.Device) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = append(p.registered, d.FullID)
	return nil
}

func (p *recordingPublisher) NoteAppended(_ context.Context, fullID string, n domain.Note) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, fullID+":"+n.Note)
	return nil
}

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
