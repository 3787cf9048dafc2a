// Package common holds the primitives shared by every layer of the
// matching engine: opaque identifiers, the money types, the side/type/
// status enumerations, and the Clock/IDGenerator collaborators the core
// consults but never owns.
package common

import (
	"time"

	"github.com/google/uuid"
)

// OrderId, ItemId, UserId and TradeId are opaque 128-bit identifiers.
// The engine mints OrderId and TradeId through its IDGenerator; ItemId
// and UserId are supplied by callers on each request. Equality,
// zero-value checks and String are the only operations callers need.
type (
	OrderId uuid.UUID
	ItemId  uuid.UUID
	UserId  uuid.UUID
	TradeId uuid.UUID
)

func (id OrderId) String() string { return uuid.UUID(id).String() }
func (id ItemId) String() string  { return uuid.UUID(id).String() }
func (id UserId) String() string  { return uuid.UUID(id).String() }
func (id TradeId) String() string { return uuid.UUID(id).String() }

func (id OrderId) IsZero() bool { return id == OrderId{} }
func (id ItemId) IsZero() bool  { return id == ItemId{} }

// Timestamp is a UTC instant. We keep it as a thin alias over time.Time
// rather than a distinct struct so callers can still use time.Time's
// comparison and formatting methods without a wrapper dance.
type Timestamp = time.Time

// Clock is the injected timestamp provider. The engine consults it on
// every order/trade construction and never caches the result.
type Clock interface {
	Now() Timestamp
}

// IDGenerator is the injected unique-identifier source. Like Clock, the
// engine consults it fresh for every new entity.
type IDGenerator interface {
	NewOrderID() OrderId
	NewTradeID() TradeId
}

// SystemClock is the default Clock, backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() Timestamp { return time.Now().UTC() }

// UUIDGenerator is the default IDGenerator, backed by google/uuid's
// version-4 random generation.
type UUIDGenerator struct{}

func (UUIDGenerator) NewOrderID() OrderId { return OrderId(uuid.New()) }
func (UUIDGenerator) NewTradeID() TradeId { return TradeId(uuid.New()) }
