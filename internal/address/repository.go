package address

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("address not found")
)

type Repository interface {
	ListByUser(userID string) []Address
	Add(a Address) Address
	Update(userID, id string, a Address) (Address, error)
	Delete(userID, id string) error
	SetDefault(userID, id string) (Address, error)
}

type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]Address // keyed by userID
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: map[string][]Address{}}
}

func (r *InMemoryRepository) ListByUser(userID string) []Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Address, len(r.data[userID]))
	copy(out, r.data[userID])
	return out
}

func (r *InMemoryRepository) Add(a Address) Address {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	// the first saved address becomes the default
	if len(r.data[a.UserID]) == 0 {
		a.IsDefault = true
	}
	if a.IsDefault {
		r.clearDefaultLocked(a.UserID)
	}
	r.data[a.UserID] = append(r.data[a.UserID], a)
	return a
}

func (r *InMemoryRepository) Update(userID, id string, a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.data[userID]
	for i := range addrs {
		if addrs[i].ID == id {
			a.ID = id
			a.UserID = userID
			a.IsDefault = addrs[i].IsDefault
			addrs[i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.data[userID]
	for i := range addrs {
		if addrs[i].ID == id {
			r.data[userID] = append(addrs[:i], addrs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) SetDefault(userID, id string) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.data[userID]
	for i := range addrs {
		if addrs[i].ID == id {
			r.clearDefaultLocked(userID)
			addrs[i].IsDefault = true
			return addrs[i], nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) clearDefaultLocked(userID string) {
	addrs := r.data[userID]
	for i := range addrs {
		addrs[i].IsDefault = false
	}
}
