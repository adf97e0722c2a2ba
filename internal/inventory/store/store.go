package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrUnavailable   = errors.New("store: unavailable")
)

// Store is the root data access interface. Sub-repositories are methods so
// that code running inside WithTx only ever sees the tx-scoped repos.
type Store interface {
	Users() Users
	Sessions() Sessions
	DeviceCounters() DeviceCounters
	Devices() Devices

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// RevokeSession is idempotent. Unknown ids return ErrNotFound.
	RevokeSession(ctx context.Context, id string) error

	// DeleteStaleSessions removes sessions that expired or were revoked
	// before the cutoff and returns how many went.
	DeleteStaleSessions(ctx context.Context, cutoff time.Time) (int64, error)
}

// DeviceCounters is only used by the device id allocator.
type DeviceCounters interface {
	// NextSequence atomically increments the counter for weekYr, creating
	// it at 1 when absent, and returns the new value.
	NextSequence(ctx context.Context, weekYr string) (int, error)
}

type Devices interface {
	// CreateDevice inserts the device and any notes it carries. Duplicate
	// full ids or (weekYr, weekDevice) pairs return ErrAlreadyExists.
	CreateDevice(ctx context.Context, d domain.Device) error

	GetDeviceByFullID(ctx context.Context, fullID string) (domain.Device, error)

	ListDevices(ctx context.Context, q domain.DeviceQuery) ([]domain.Device, error)

	// AppendNote adds a note and sets the device's current code to the
	// note's code.
	AppendNote(ctx context.Context, fullID string, n domain.Note) error
}
