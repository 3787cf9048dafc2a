package common_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kestrelmarkets/clob/internal/common"
)

func TestMinQuantity(t *testing.T) {
	a := decimal.RequireFromString("4")
	b := decimal.RequireFromString("9")

	assert.True(t, common.MinQuantity(a, b).Equal(a))
	assert.True(t, common.MinQuantity(b, a).Equal(a))
	assert.True(t, common.MinQuantity(a, a).Equal(a))
}
