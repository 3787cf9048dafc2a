// Package ladder implements the per-item, per-side price ladder: a
// sorted price -> FIFO-queue-of-OrderIds map, kept in best-price-first
// traversal order per side. Each side is a tidwall/btree tree with the
// comparator direction flipped so MinMut() is always the best price
// regardless of side: descending for bids, ascending for asks.
package ladder

import (
	"github.com/tidwall/btree"

	"github.com/kestrelmarkets/clob/internal/common"
)

// priceLevel is one price's FIFO queue of resting order IDs.
type priceLevel struct {
	price  common.Price
	orders []common.OrderId
}

type priceLevels = btree.BTreeG[*priceLevel]

// book holds the two per-item trees, one per side, each with its own
// price ordering.
type book struct {
	bids *priceLevels // sorted highest price first
	asks *priceLevels // sorted lowest price first
}

func newBook() *book {
	return &book{
		bids: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price.GreaterThan(b.price)
		}),
		asks: btree.NewBTreeG(func(a, b *priceLevel) bool {
			return a.price.LessThan(b.price)
		}),
	}
}

func (b *book) tree(side common.Side) *priceLevels {
	if side == common.Buy {
		return b.bids
	}
	return b.asks
}

// Ladder is the collection of per-item books.
type Ladder struct {
	books map[common.ItemId]*book
}

func New() *Ladder {
	return &Ladder{books: make(map[common.ItemId]*book)}
}

func (l *Ladder) bookFor(item common.ItemId) *book {
	b, ok := l.books[item]
	if !ok {
		b = newBook()
		l.books[item] = b
	}
	return b
}

// Best returns the first price in traversal order for (item, side), or
// false if that side is empty.
func (l *Ladder) Best(item common.ItemId, side common.Side) (common.Price, bool) {
	b, ok := l.books[item]
	if !ok {
		return common.Zero, false
	}
	lvl, ok := b.tree(side).Min()
	if !ok {
		return common.Zero, false
	}
	return lvl.price, true
}

// Enqueue appends id to the tail of the queue at price, creating the
// level if it doesn't exist yet.
func (l *Ladder) Enqueue(item common.ItemId, side common.Side, price common.Price, id common.OrderId) {
	tree := l.bookFor(item).tree(side)
	lvl, ok := tree.GetMut(&priceLevel{price: price})
	if ok {
		lvl.orders = append(lvl.orders, id)
		return
	}
	tree.Set(&priceLevel{price: price, orders: []common.OrderId{id}})
}

// PeekHead returns the head order ID of the best-price queue for
// (item, side).
func (l *Ladder) PeekHead(item common.ItemId, side common.Side) (common.OrderId, bool) {
	b, ok := l.books[item]
	if !ok {
		return common.OrderId{}, false
	}
	lvl, ok := b.tree(side).Min()
	if !ok || len(lvl.orders) == 0 {
		return common.OrderId{}, false
	}
	return lvl.orders[0], true
}

// PopHead removes the head of the best-price queue for (item, side). If
// the queue becomes empty, the price level itself is removed.
func (l *Ladder) PopHead(item common.ItemId, side common.Side) {
	b, ok := l.books[item]
	if !ok {
		return
	}
	tree := b.tree(side)
	lvl, ok := tree.MinMut()
	if !ok || len(lvl.orders) == 0 {
		return
	}
	lvl.orders = lvl.orders[1:]
	if len(lvl.orders) == 0 {
		tree.Delete(&priceLevel{price: lvl.price})
	}
}

// Remove deletes a specific order ID from a known (item, side, price)
// level by linear scan, used by the cancel-and-replace path behind
// repricing a resting order. Returns whether the ID was found.
func (l *Ladder) Remove(item common.ItemId, side common.Side, price common.Price, id common.OrderId) bool {
	b, ok := l.books[item]
	if !ok {
		return false
	}
	tree := b.tree(side)
	lvl, ok := tree.GetMut(&priceLevel{price: price})
	if !ok {
		return false
	}
	for i, oid := range lvl.orders {
		if oid == id {
			lvl.orders = append(lvl.orders[:i], lvl.orders[i+1:]...)
			if len(lvl.orders) == 0 {
				tree.Delete(&priceLevel{price: price})
			}
			return true
		}
	}
	return false
}

// Levels returns every price level for (item, side) in best-first
// traversal order. The match loop snapshots this once per submission so
// it can walk multiple crossable levels without the ladder changing
// under it mid-sweep.
func (l *Ladder) Levels(item common.ItemId, side common.Side) []common.Price {
	b, ok := l.books[item]
	if !ok {
		return nil
	}
	items := b.tree(side).Items()
	prices := make([]common.Price, len(items))
	for i, lvl := range items {
		prices[i] = lvl.price
	}
	return prices
}

// Queue returns the FIFO order-ID queue at one exact price level,
// read-only. Callers must not mutate the returned slice.
func (l *Ladder) Queue(item common.ItemId, side common.Side, price common.Price) []common.OrderId {
	b, ok := l.books[item]
	if !ok {
		return nil
	}
	lvl, ok := b.tree(side).GetMut(&priceLevel{price: price})
	if !ok {
		return nil
	}
	return lvl.orders
}
