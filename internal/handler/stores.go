package handler

import (
	"context"
	"io"
	"time"

	"github.com/rapsplay/console-rental/internal/booking"
	"github.com/rapsplay/console-rental/internal/model"
)

// Handlers depend on these narrow interfaces rather than the concrete
// repositories so tests can run against in-memory fakes.

// UserStore is the account persistence surface used by auth handlers.
type UserStore interface {
	Create(ctx context.Context, name, email, phone, password, avatar string, cost int) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByEmailWithSecrets(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uint64, name, email, phone, address string) error
	UpdateAvatar(ctx context.Context, id uint64, avatar string) error
	SetResetOTP(ctx context.Context, id uint64, otp string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, id uint64, password string, cost int) error
}

// TokenStore persists refresh token hashes.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// BookingStore is the booking persistence surface.
type BookingStore interface {
	Create(ctx context.Context, draft *booking.Draft, ownerID *uint64) (model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	GetAll(ctx context.Context) ([]model.Booking, error)
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	GetByOwner(ctx context.Context, ownerID uint64) (model.Booking, error)
}

// FileStore saves uploaded images and resolves their public URLs.
type FileStore interface {
	Save(dir, field, originalName string, r io.Reader) (string, error)
	URL(name string) string
	Remove(name string) error
}
