// Package registry is the authoritative OrderId -> Order map. The
// ladder only ever references orders by ID; the registry is the sole
// owner of their state.
package registry

import (
	"errors"

	"github.com/kestrelmarkets/clob/internal/common"
	"github.com/kestrelmarkets/clob/internal/model"
)

// ErrAlreadyExists is returned by Insert when the order's ID is already
// present. It should not occur in practice since IDs are freshly minted
// by the matching core's IDGenerator for every new order.
var ErrAlreadyExists = errors.New("order already exists in registry")

type Registry struct {
	orders map[common.OrderId]*model.Order
}

func New() *Registry {
	return &Registry{orders: make(map[common.OrderId]*model.Order)}
}

// Insert adds a freshly constructed order. Fails if the ID collides.
func (r *Registry) Insert(o *model.Order) error {
	if _, exists := r.orders[o.ID]; exists {
		return ErrAlreadyExists
	}
	r.orders[o.ID] = o
	return nil
}

// Get returns the live order record for id, or nil if unknown. The
// returned pointer is the authoritative record — mutating through it is
// how callers get "get_mut" semantics without a separate method.
func (r *Registry) Get(id common.OrderId) (*model.Order, bool) {
	o, ok := r.orders[id]
	return o, ok
}

// Snapshot returns a value copy of the order, safe for callers to retain
// without risk of seeing later in-place mutation.
func (r *Registry) Snapshot(id common.OrderId) (model.Order, bool) {
	o, ok := r.orders[id]
	if !ok {
		return model.Order{}, false
	}
	return *o, true
}

// All returns a snapshot slice of every order currently known to the
// registry, in no particular order.
func (r *Registry) All() []model.Order {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out
}
