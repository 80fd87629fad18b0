package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-manager/internal/application/analytics"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"19.99":     "19,99",
		"25000":     "25.000,00",
		"1000000.5": "1.000.000,50",
		"-1234.5":   "-1.234,50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateInventoryPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("inventory-api")
	rows := []analytics.InventoryRow{
		{Name: "Martillo", Category: "Herramientas", Quantity: 3, Price: decimal.RequireFromString("19.99"), Value: decimal.RequireFromString("59.97")},
		{Name: "Tornillo", Category: "Sin categoría", Quantity: 100, Price: decimal.RequireFromString("0.05"), Value: decimal.RequireFromString("5")},
	}
	doc, err := g.GenerateInventoryPDF(context.Background(), rows, decimal.RequireFromString("64.97"), time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "debe ser un documento PDF")
}
