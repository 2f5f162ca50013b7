package order

import (
	"errors"
	"sync"

	"github.com/treadmart/tire-shop-backend/internal/address"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	List() []Order
	ListByUser(userID string) []Order
	GetByID(id string) (Order, error)
	Create(o Order) Order
	Save(o Order) (Order, error)
}

// InMemoryRepository holds the mock order book. Orders placed through
// checkout are appended in memory only; nothing here outlives the process,
// matching the simulated backend.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Order, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List() []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, len(r.storage))
	copy(out, r.storage)
	return out
}

func (r *InMemoryRepository) ListByUser(userID string) []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Order
	for _, o := range r.storage {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.storage {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Create(o Order) Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = append(r.storage, o)
	return o
}

func (r *InMemoryRepository) Save(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == o.ID {
			r.storage[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// SampleOrders seeds the admin order book with the storefront's mock data.
func SampleOrders() []Order {
	addr := address.Address{
		ID: "a-1", UserID: "u-1001", Label: "Home",
		Street: "88 Cedar Ave", City: "Austin", State: "TX", PostalCode: "78701", Country: "USA",
		IsDefault: true,
	}
	return []Order{
		{
			ID:     "ord-1001",
			UserID: "u-1001",
			Items: []Item{
				{ID: "oi-1", ProductID: "1", Name: "Michelin Pilot Sport 4", Quantity: 2, UnitPrice: 189.99},
			},
			TotalAmount:     410.38,
			Status:          StatusDelivered,
			ShippingAddress: addr,
			PaymentMethod:   PaymentCard,
			PaymentStatus:   PaymentPaid,
			CreatedAt:       "2024-06-02T11:20:00Z",
			UpdatedAt:       "2024-06-09T16:05:00Z",
			TrackingNumber:  "TRK-123456789",
		},
		{
			ID:     "ord-1002",
			UserID: "u-1001",
			Items: []Item{
				{ID: "oi-2", ProductID: "2", Name: "Bridgestone Turanza T005", Quantity: 4, UnitPrice: 142.50},
			},
			TotalAmount:     615.60,
			Status:          StatusShipped,
			ShippingAddress: addr,
			PaymentMethod:   PaymentCOD,
			PaymentStatus:   PaymentPending,
			CreatedAt:       "2024-07-15T09:45:00Z",
			UpdatedAt:       "2024-07-18T13:30:00Z",
			TrackingNumber:  "TRK-987654321",
		},
		{
			ID:     "ord-1003",
			UserID: "u-1002",
			Items: []Item{
				{ID: "oi-3", ProductID: "5", Name: "Pirelli Cinturato P7", Quantity: 1, UnitPrice: 151.75},
			},
			TotalAmount:     163.89,
			Status:          StatusPending,
			ShippingAddress: address.Address{ID: "a-2", UserID: "u-1002", Label: "Work", Street: "400 Pine St", City: "Denver", State: "CO", PostalCode: "80202", Country: "USA"},
			PaymentMethod:   PaymentWallet,
			PaymentStatus:   PaymentPaid,
			CreatedAt:       "2024-08-01T17:10:00Z",
			UpdatedAt:       "2024-08-01T17:10:00Z",
		},
	}
}
