package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/treadmart/tire-shop-backend/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// storageKey is the persisted-storage slot holding the current user record.
const storageKey = "user"

var (
	ErrNoSession = errors.New("no active session")
)

// Service owns the single application session: anonymous until a login or
// register succeeds, then the fabricated user until logout. The session is
// mirrored to the persisted store so it survives restarts; a corrupt stored
// value reads as logged-out.
type Service struct {
	mu        sync.Mutex
	store     *storage.Store
	directory Directory
	current   *User

	// simulateLatency stands in for the network round trip of a real
	// credential service. Tests replace it with a no-op.
	simulateLatency func()
	now             func() time.Time
	newID           func() string
}

func NewService(store *storage.Store, directory Directory) *Service {
	s := &Service{
		store:           store,
		directory:       directory,
		simulateLatency: func() { time.Sleep(time.Second) },
		now:             time.Now,
		newID:           uuid.NewString,
	}
	var u User
	if store.Get(storageKey, &u) && u.Email != "" {
		s.current = &u
	}
	return s
}

// SetLatency replaces the simulated network delay (no-op hook for tests).
func (s *Service) SetLatency(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	s.simulateLatency = fn
}

// Login is a placeholder for real credential verification: it always
// succeeds, fabricating a user from the email. Accounts whose email contains
// "admin" get the administrator role. Replace the body with a call to the
// real auth backend when one exists.
func (s *Service) Login(email, password string) (User, error) {
	s.simulateLatency()

	u := User{
		ID:        s.newID(),
		Email:     email,
		Name:      nameFromEmail(email),
		Role:      RoleUser,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if strings.Contains(email, "admin") {
		u.Role = RoleAdmin
	}

	// returning users keep their directory identity
	if acc, ok := s.directory.Find(email); ok {
		u = acc.User
	} else {
		s.directory.Save(Account{User: u})
	}

	s.setCurrent(u)
	return u, nil
}

// Register is the same kind of placeholder as Login: it always succeeds and
// assigns the standard role. The password is hashed into the directory so the
// record is ready for a real credential backend.
func (s *Service) Register(data Registration) (User, error) {
	s.simulateLatency()

	u := User{
		ID:        s.newID(),
		Email:     data.Email,
		Name:      data.Name,
		Phone:     data.Phone,
		Role:      RoleUser,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	s.directory.Save(Account{User: u, PasswordHash: string(hash)})

	s.setCurrent(u)
	return u, nil
}

// Logout clears the session synchronously.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	_ = s.store.Delete(storageKey)
}

// UpdateProfile merges the provided fields into the current user. Without a
// session it returns ErrNoSession.
func (s *Service) UpdateProfile(p ProfileUpdate) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return User{}, ErrNoSession
	}

	u := *s.current
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}

	s.current = &u
	_ = s.store.Put(storageKey, u)
	if acc, ok := s.directory.Find(u.Email); ok {
		acc.User = u
		s.directory.Save(acc)
	} else {
		s.directory.Save(Account{User: u})
	}
	return u, nil
}

// Current returns the session user, if any.
func (s *Service) Current() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

// Users lists every known user for the admin back office.
func (s *Service) Users() []User {
	return s.directory.List()
}

func (s *Service) setCurrent(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &u
	_ = s.store.Put(storageKey, u)
}

func nameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
