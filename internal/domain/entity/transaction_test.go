package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineItem_Total(t *testing.T) {
	item := LineItem{Quantity: 2, Price: decimal.RequireFromString("19.99")}
	assert.True(t, item.Total().Equal(decimal.RequireFromString("39.98")), "got %s", item.Total())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleStaff))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("bodeguero"))
}
