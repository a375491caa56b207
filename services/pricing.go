package services

import (
	"github.com/shopspring/decimal"

	"github.com/greenbasket/produce-orders/models"
)

// Pricing is done in fixed-point arithmetic so currency never loses cents to
// floating error. Floats only appear at the model/JSON boundary, rounded to
// two decimal places.

// LineTotal computes price × quantity rounded to cents.
func LineTotal(price, quantity float64) float64 {
	total := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(quantity))
	return total.Round(2).InexactFloat64()
}

// BuildLines produces one order line per catalog item with a positive
// requested quantity, preserving catalog display order. Zero, negative and
// missing quantities are excluded.
func BuildLines(catalog []models.Item, quantities map[string]float64) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(quantities))
	for _, item := range catalog {
		qty, ok := quantities[item.ID]
		if !ok || qty <= 0 {
			continue
		}
		lines = append(lines, models.OrderLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Unit:      item.Unit,
			Price:     item.Price,
			Quantity:  qty,
			LineTotal: LineTotal(item.Price, qty),
		})
	}
	return lines
}

// ItemsTotal sums the line totals.
func ItemsTotal(lines []models.OrderLine) float64 {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(decimal.NewFromFloat(line.LineTotal))
	}
	return sum.Round(2).InexactFloat64()
}

// GrandTotal adds the delivery fee to the items total.
func GrandTotal(itemsTotal, deliveryFee float64) float64 {
	return decimal.NewFromFloat(itemsTotal).
		Add(decimal.NewFromFloat(deliveryFee)).
		Round(2).InexactFloat64()
}

// amountsDiffer reports whether two amounts diverge beyond the rounding
// tolerance of one cent.
func amountsDiffer(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.GreaterThan(decimal.NewFromFloat(0.01))
}
