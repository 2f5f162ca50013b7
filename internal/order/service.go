package order

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/treadmart/tire-shop-backend/internal/address"
	"github.com/treadmart/tire-shop-backend/internal/cart"
	"github.com/treadmart/tire-shop-backend/internal/pricing"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Service struct {
	repo Repository

	// simulateProcessing stands in for the payment/backend round trip a real
	// checkout would make. Tests replace it with a no-op.
	simulateProcessing func()
	now                func() time.Time
	newID              func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:               repo,
		simulateProcessing: func() { time.Sleep(time.Second) },
		now:                time.Now,
		newID:              uuid.NewString,
	}
}

// SetProcessingDelay replaces the simulated checkout delay (no-op for tests).
func (s *Service) SetProcessingDelay(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	s.simulateProcessing = fn
}

// Place turns the cart lines into a pending order. Totals are recomputed here
// from the line snapshots; client-supplied totals are never trusted. Card and
// wallet payments are marked paid immediately because the payment leg is
// simulated.
func (s *Service) Place(userID string, lines []cart.Line, shipTo address.Address, method PaymentMethod) (Order, error) {
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	s.simulateProcessing()

	var subtotal float64
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		subtotal += l.Product.Price * float64(l.Quantity)
		items = append(items, Item{
			ID:        s.newID(),
			ProductID: l.ProductID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
			Size:      l.Size,
			Color:     l.Color,
		})
	}

	paymentStatus := PaymentPending
	if method == PaymentCard || method == PaymentWallet {
		paymentStatus = PaymentPaid
	}

	now := s.now().UTC().Format(time.RFC3339)
	o := Order{
		ID:              "ord-" + s.newID(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     pricing.QuoteFor(subtotal).Total,
		Status:          StatusPending,
		ShippingAddress: shipTo,
		PaymentMethod:   method,
		PaymentStatus:   paymentStatus,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.repo.Create(o), nil
}

// ListByUser returns the caller's orders newest first.
func (s *Service) ListByUser(userID string) []Order {
	orders := s.repo.ListByUser(userID)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt > orders[j].CreatedAt })
	return orders
}

// AdminFilter narrows the back-office order listing.
type AdminFilter struct {
	Status Status
	Query  string
}

// ListAll returns every order, optionally narrowed by status and a text
// match over order ID and item names.
func (s *Service) ListAll(f AdminFilter) []Order {
	var out []Order
	for _, o := range s.repo.List() {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Query != "" && !matchesOrder(o, f.Query) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

// CountsByStatus powers the back-office summary row.
func (s *Service) CountsByStatus() map[Status]int {
	counts := map[Status]int{}
	for _, o := range s.repo.List() {
		counts[o.Status]++
	}
	return counts
}

// Revenue sums the totals of all non-cancelled orders.
func (s *Service) Revenue() float64 {
	var sum float64
	for _, o := range s.repo.List() {
		if o.Status != StatusCancelled {
			sum += o.TotalAmount
		}
	}
	return sum
}

// UpdateStatus applies one lifecycle transition. Illegal moves return
// ErrInvalidTransition. Shipping an order assigns a tracking number.
func (s *Service) UpdateStatus(id string, next Status) (Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !o.Status.CanTransitionTo(next) {
		return Order{}, ErrInvalidTransition
	}

	o.Status = next
	o.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if next == StatusShipped && o.TrackingNumber == "" {
		o.TrackingNumber = "TRK-" + strings.ToUpper(strings.ReplaceAll(s.newID(), "-", "")[:12])
	}
	if next == StatusDelivered && o.PaymentMethod == PaymentCOD {
		o.PaymentStatus = PaymentPaid
	}
	return s.repo.Save(o)
}

func matchesOrder(o Order, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(o.ID), q) || strings.Contains(strings.ToLower(o.UserID), q) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}
	return false
}
