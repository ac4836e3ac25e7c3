// Package cart holds the shopper's in-progress selection: a list of
// product/quantity lines with derived totals, persisted between sessions
// through a pluggable key-value Store.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wellkart/pharmacy-api/analytics"
)

// DefaultKey is the fixed persistence key used when a manager is not bound
// to a specific shopper id.
const DefaultKey = "storefront_cart"

// ProductRef is the immutable product snapshot captured when a line is
// added. Catalog changes after that point do not affect it.
type ProductRef struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Brand    string          `json:"brand,omitempty"`
	InStock  bool            `json:"in_stock"`
}

type Line struct {
	ID       string     `json:"id"`
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// Snapshot is a derived view, recomputed on every mutation. It is never
// the source of truth itself.
type Snapshot struct {
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Emitter receives best-effort activity events. A nil emitter is allowed.
type Emitter interface {
	Emit(event analytics.Event)
}

// Manager is the single source of truth for one shopper's cart. It is not
// safe for concurrent use; each shopper session owns its own manager.
//
// The lifecycle is two-phase: NewManager constructs a detached manager,
// Start binds it to its store. Until Start is called neither the initial
// load nor persistence writes happen, so a manager can be used before the
// storage facility is reachable.
type Manager struct {
	store   Store
	key     string
	emitter Emitter

	ctx   context.Context
	lines []Line
	ready bool
	subs  []func(Snapshot)
}

func NewManager(store Store, key string, emitter Emitter) *Manager {
	if key == "" {
		key = DefaultKey
	}
	return &Manager{store: store, key: key, emitter: emitter}
}

// Start marks the manager ready and loads the persisted line list. A
// missing or unreadable stored value degrades to an empty cart; it is
// never a fatal error. If mutations happened before Start, the in-memory
// lines win and are flushed to the store instead.
func (m *Manager) Start(ctx context.Context) {
	if m.ready {
		return
	}
	m.ctx = ctx
	m.ready = true

	if len(m.lines) > 0 {
		m.persist()
		return
	}

	data, err := m.store.Load(ctx, m.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("cart: load failed, starting empty: %v", err)
		}
		return
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Printf("cart: stored value unreadable, starting empty: %v", err)
		return
	}
	m.lines = lines
}

// AddItem merges the quantity into an existing line for the same product,
// or appends a new line with a fresh id.
func (m *Manager) AddItem(product ProductRef, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	merged := false
	for i := range m.lines {
		if m.lines[i].Product.ID == product.ID {
			m.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		m.lines = append(m.lines, Line{
			ID:       uuid.NewString(),
			Product:  product,
			Quantity: quantity,
		})
	}
	m.emit("add_to_cart", map[string]any{
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price,
		"quantity":   quantity,
	})
	m.mutated()
}

// RemoveItem deletes the line for productID. Absent lines are a no-op.
func (m *Manager) RemoveItem(productID uint) {
	for i := range m.lines {
		if m.lines[i].Product.ID == productID {
			removed := m.lines[i]
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			m.emit("remove_from_cart", map[string]any{
				"product_id": removed.Product.ID,
				"name":       removed.Product.Name,
				"quantity":   removed.Quantity,
			})
			m.mutated()
			return
		}
	}
}

// UpdateQuantity replaces the line's quantity. A quantity of zero or less
// removes the line.
func (m *Manager) UpdateQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		m.RemoveItem(productID)
		return
	}
	for i := range m.lines {
		if m.lines[i].Product.ID == productID {
			m.lines[i].Quantity = quantity
			m.mutated()
			return
		}
	}
}

// Clear empties the cart.
func (m *Manager) Clear() {
	m.lines = nil
	m.mutated()
}

// TrackCheckoutInitiation emits a begin_checkout event summarizing the
// current lines. State is not mutated.
func (m *Manager) TrackCheckoutInitiation() {
	snap := m.Snapshot()
	items := make([]map[string]any, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, map[string]any{
			"product_id": line.Product.ID,
			"name":       line.Product.Name,
			"price":      line.Product.Price,
			"quantity":   line.Quantity,
		})
	}
	m.emit("begin_checkout", map[string]any{
		"items":      items,
		"total":      snap.Total,
		"item_count": snap.ItemCount,
	})
}

// Snapshot recomputes the derived totals over the current lines.
func (m *Manager) Snapshot() Snapshot {
	snap := Snapshot{Lines: make([]Line, len(m.lines)), Total: decimal.Zero}
	copy(snap.Lines, m.lines)
	for _, line := range m.lines {
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		snap.Total = snap.Total.Add(lineTotal)
		snap.ItemCount += line.Quantity
	}
	return snap
}

// Subscribe registers an observer called with a fresh snapshot after every
// mutation.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.subs = append(m.subs, fn)
}

func (m *Manager) mutated() {
	snap := m.Snapshot()
	for _, fn := range m.subs {
		fn(snap)
	}
	m.persist()
}

// persist writes the line list to the store. Failures are logged and
// swallowed; the in-memory cart stays authoritative.
func (m *Manager) persist() {
	if !m.ready {
		return
	}
	data, err := json.Marshal(m.lines)
	if err != nil {
		log.Printf("cart: marshal failed, skipping persist: %v", err)
		return
	}
	if err := m.store.Save(m.ctx, m.key, data); err != nil {
		log.Printf("cart: persist failed: %v", err)
	}
}

func (m *Manager) emit(name string, params map[string]any) {
	if m.emitter == nil {
		return
	}
	m.emitter.Emit(analytics.Event{Name: name, Params: params})
}
