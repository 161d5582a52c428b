package analytics

import (
	"strings"

	"solune-backend/models"
)

// DefaultNonDiscountable lists the service group names excluded from the
// discount base.
var DefaultNonDiscountable = []string{"nails", "threading"}

// Calculator turns raw amount and discount pairs into final amounts.
type Calculator struct {
	exemptGroups map[string]struct{}
}

// NewCalculator builds a calculator over the known service groups. Group
// names listed in exempt (or DefaultNonDiscountable when empty) never take a
// discount.
func NewCalculator(groups []models.ServiceGroup, exempt ...string) *Calculator {
	if len(exempt) == 0 {
		exempt = DefaultNonDiscountable
	}
	names := make(map[string]struct{}, len(exempt))
	for _, n := range exempt {
		names[normalizeGroupName(n)] = struct{}{}
	}

	c := &Calculator{exemptGroups: make(map[string]struct{})}
	for _, g := range groups {
		if _, ok := names[normalizeGroupName(g.Name)]; ok {
			c.exemptGroups[g.ID.String()] = struct{}{}
		}
	}
	return c
}

// Discountable reports whether a service line counts toward the discount base.
func (c *Calculator) Discountable(line models.ServiceLine) bool {
	if c == nil || line.GroupID == "" {
		return true
	}
	_, exempt := c.exemptGroups[line.GroupID]
	return !exempt
}

// DiscountableAmount is the part of the sale the discount percentage applies to.
func (c *Calculator) DiscountableAmount(a models.Appointment) float64 {
	switch sale := a.Sale().(type) {
	case models.MultiServiceSale:
		var sum float64
		for _, line := range sale.Services {
			if c.Discountable(line) {
				sum += line.Price
			}
		}
		return sum
	case models.LegacySale:
		return sale.Amount
	}
	return 0
}

func (c *Calculator) DiscountAmount(a models.Appointment) float64 {
	return c.DiscountableAmount(a) * a.Discount / 100
}

// FinalAmount is what the client actually paid.
func (c *Calculator) FinalAmount(a models.Appointment) float64 {
	return a.Amount - c.DiscountAmount(a)
}

// DiscountLocked is true when no line of the sale can be discounted, in which
// case the stored percentage has no effect.
func (c *Calculator) DiscountLocked(a models.Appointment) bool {
	sale, ok := a.Sale().(models.MultiServiceSale)
	if !ok {
		return false
	}
	for _, line := range sale.Services {
		if c.Discountable(line) {
			return false
		}
	}
	return true
}

func normalizeGroupName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
