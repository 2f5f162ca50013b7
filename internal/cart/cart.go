package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/treadmart/tire-shop-backend/internal/catalog"
	"github.com/treadmart/tire-shop-backend/internal/storage"
)

// storageKey is the persisted-storage slot holding the serialized line list.
const storageKey = "cart"

// Line is one cart row: a product/variant/quantity combination. Two lines
// with the same product but a different size or color stay distinct.
type Line struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// Options carries the variant selection for an add.
type Options struct {
	Size  string
	Color string
}

// Engine owns the cart line list and mirrors every mutation to the persisted
// store. Derived values are recomputed per read; the collection is small and
// mutation is synchronous, so there is nothing to cache. One engine instance
// per running application, injected where needed.
type Engine struct {
	mu    sync.Mutex
	store *storage.Store
	lines []Line
	newID func() string
}

// NewEngine restores any persisted cart from store. A corrupt persisted value
// reads as an empty cart.
func NewEngine(store *storage.Store) *Engine {
	e := &Engine{store: store, newID: uuid.NewString}
	var lines []Line
	if store.Get(storageKey, &lines) {
		e.lines = lines
	}
	return e
}

// Add merges into an existing line when (productID, size, color) matches,
// otherwise appends a new line. Quantities below one default to one. The
// engine does not bound quantity by product stock; that check belongs to the
// layer taking the request.
func (e *Engine) Add(p catalog.Product, quantity int, opts Options) Line {
	if quantity < 1 {
		quantity = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.lines {
		if e.lines[i].ProductID == p.ID && e.lines[i].Size == opts.Size && e.lines[i].Color == opts.Color {
			e.lines[i].Quantity += quantity
			e.persistLocked()
			return e.lines[i]
		}
	}

	line := Line{
		ID:        e.newID(),
		ProductID: p.ID,
		Product:   p,
		Quantity:  quantity,
		Size:      opts.Size,
		Color:     opts.Color,
	}
	e.lines = append(e.lines, line)
	e.persistLocked()
	return line
}

// Remove deletes a line. Removing an unknown line is a no-op.
func (e *Engine) Remove(lineID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.lines {
		if e.lines[i].ID == lineID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			e.persistLocked()
			return
		}
	}
}

// SetQuantity replaces a line's quantity. A quantity of zero or less removes
// the line. Unknown lines are a no-op.
func (e *Engine) SetQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		e.Remove(lineID)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.lines {
		if e.lines[i].ID == lineID {
			e.lines[i].Quantity = quantity
			e.persistLocked()
			return
		}
	}
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = nil
	e.persistLocked()
}

// Lines returns a copy of the current line list in insertion order.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Subtotal is the sum of price x quantity over all lines.
func (e *Engine) Subtotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var sum float64
	for _, l := range e.lines {
		sum += l.Product.Price * float64(l.Quantity)
	}
	return sum
}

// ItemCount is the total quantity across all lines.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	var count int
	for _, l := range e.lines {
		count += l.Quantity
	}
	return count
}

// QuantityOf reports the quantity already in the cart for a variant, used by
// the handler to bound adds against stock.
func (e *Engine) QuantityOf(productID string, opts Options) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, l := range e.lines {
		if l.ProductID == productID && l.Size == opts.Size && l.Color == opts.Color {
			return l.Quantity
		}
	}
	return 0
}

func (e *Engine) persistLocked() {
	if e.lines == nil {
		_ = e.store.Put(storageKey, []Line{})
		return
	}
	_ = e.store.Put(storageKey, e.lines)
}
