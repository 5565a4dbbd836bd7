package handler

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rapsplay/console-rental/internal/booking"
	"github.com/rapsplay/console-rental/internal/model"
	"github.com/rapsplay/console-rental/internal/queue"
	"github.com/rapsplay/console-rental/internal/repository"
	"github.com/rapsplay/console-rental/internal/utils"
)

// In-memory fakes for the store interfaces used across handler tests.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}}
}

func (s *fakeUserStore) add(u model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		s.nextID++
		u.ID = s.nextID
	} else if u.ID > s.nextID {
		s.nextID = u.ID
	}
	u.Email = strings.ToLower(u.Email)
	s.users[u.ID] = u
	return u
}

func (s *fakeUserStore) Create(_ context.Context, name, email, phone, password, avatar string, cost int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	now := time.Now().UTC()
	s.users[s.nextID] = model.User{
		ID: s.nextID, Name: name, Email: email, Phone: phone,
		PasswordHash: hash, Avatar: avatar, CreatedAt: now, UpdatedAt: now,
	}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	u.PasswordHash, u.ResetOTP, u.ResetOTPExpires = "", "", nil
	return u, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := s.GetByEmailWithSecrets(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	u.PasswordHash, u.ResetOTP, u.ResetOTPExpires = "", "", nil
	return u, nil
}

func (s *fakeUserStore) GetByEmailWithSecrets(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmailWithSecrets(ctx, email)
	if err == repository.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.User{}
	for _, u := range s.users {
		u.PasswordHash, u.ResetOTP, u.ResetOTPExpires = "", "", nil
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id uint64, name, email, phone, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, other := range s.users {
		if other.ID != id && other.Email == email {
			return repository.ErrEmailExists
		}
	}
	u.Name, u.Email, u.Phone, u.Address = name, email, phone, address
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) UpdateAvatar(_ context.Context, id uint64, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Avatar = avatar
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) SetResetOTP(_ context.Context, id uint64, otp string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetOTP = otp
	exp := expiresAt
	u.ResetOTPExpires = &exp
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id uint64, password string, cost int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.ResetOTP = ""
	u.ResetOTPExpires = nil
	s.users[id] = u
	return nil
}

type storedToken struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (s *fakeTokenStore) StoreRefresh(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenHash] = &storedToken{userID: userID, exp: exp}
	return nil
}

func (s *fakeTokenStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenHash]
	if !ok || t.revoked || time.Now().UTC().After(t.exp) {
		return 0, repository.ErrNotFound
	}
	return t.userID, nil
}

func (s *fakeTokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[tokenHash]; ok {
		t.revoked = true
	}
	return nil
}

func (s *fakeTokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (s *fakeTokenStore) active(userID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tokens {
		if t.userID == userID && !t.revoked {
			n++
		}
	}
	return n
}

type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   uint64
	bookings map[uint64]model.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[uint64]model.Booking{}}
}

func (s *fakeBookingStore) Create(_ context.Context, draft *booking.Draft, ownerID *uint64) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, err := utils.NewBookingCode()
	if err != nil {
		return model.Booking{}, err
	}
	s.nextID++
	now := time.Now().UTC()
	b := model.Booking{
		ID: s.nextID, Code: code, OwnerID: ownerID,
		Console: draft.Console, Games: draft.Games, Period: draft.Period,
		Controllers: draft.Controllers, Duration: draft.Duration,
		IsMember: draft.IsMember, StartAt: draft.StartAt, EndAt: draft.EndAt,
		StartLabel: draft.StartLabel, EndLabel: draft.EndLabel, TZ: draft.TZ,
		Contact: draft.Contact, IDImage: draft.IDImage, HolderImage: draft.HolderImage,
		Total: draft.Total, Status: model.StatusPending,
		CreatedAt: now, UpdatedAt: now,
	}
	s.bookings[b.ID] = b
	return b, nil
}

func (s *fakeBookingStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	s.bookings[id] = b
	return nil
}

func (s *fakeBookingStore) GetAll(_ context.Context) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Booking{}
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id uint64) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrNotFound
	}
	return b, nil
}

func (s *fakeBookingStore) GetByOwner(_ context.Context, ownerID uint64) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.OwnerID != nil && *b.OwnerID == ownerID {
			return b, nil
		}
	}
	return model.Booking{}, repository.ErrNotFound
}

type fakeFiles struct {
	mu      sync.Mutex
	saved   []string
	removed []string
}

func (f *fakeFiles) Save(dir, field, originalName string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	f.mu.Lock()
	defer f.mu.Unlock()
	name := dir + "/" + field + "-test.jpg"
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeFiles) URL(name string) string { return "/images/" + name }

func (f *fakeFiles) Remove(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, name)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type fakePublisher struct {
	mu      sync.Mutex
	created []queue.BookingCreatedEvent
	status  []queue.BookingStatusEvent
}

func (p *fakePublisher) PublishBookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, ev)
	return nil
}

func (p *fakePublisher) PublishBookingStatus(_ context.Context, ev queue.BookingStatusEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = append(p.status, ev)
	return nil
}
