package model

import "github.com/kestrelmarkets/clob/internal/common"

// Trade is an immutable record of one fill between a buy and a sell
// order. Price is always the maker's (resting) price at match time.
type Trade struct {
	ID          common.TradeId
	BuyOrderID  common.OrderId
	SellOrderID common.OrderId
	ItemID      common.ItemId
	Quantity    common.Quantity
	Price       common.Price
	Timestamp   common.Timestamp
}
