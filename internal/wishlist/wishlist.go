package wishlist

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyListed = errors.New("product already in wishlist")
	ErrNotListed     = errors.New("product not in wishlist")
)

// Entry is one saved product reference. Product details are resolved at read
// time so the wishlist always reflects current catalog data.
type Entry struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	CreatedAt string `json:"createdAt"`
}

// Repository keeps per-user wishlists in memory; the wishlist is not part of
// the persisted store.
type Repository struct {
	mu   sync.RWMutex
	data map[string][]Entry // keyed by userID
}

func NewRepository() *Repository {
	return &Repository{data: map[string][]Entry{}}
}

func (r *Repository) List(userID string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.data[userID]))
	copy(out, r.data[userID])
	return out
}

func (r *Repository) Add(userID, productID string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.data[userID] {
		if e.ProductID == productID {
			return Entry{}, ErrAlreadyListed
		}
	}
	entry := Entry{
		ID:        uuid.NewString(),
		ProductID: productID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	r.data[userID] = append(r.data[userID], entry)
	return entry, nil
}

func (r *Repository) Remove(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.data[userID]
	for i, e := range entries {
		if e.ProductID == productID {
			r.data[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return ErrNotListed
}
