package analytics

import (
	"sort"

	"solune-backend/models"
)

// Stock statuses.
const (
	StockOut = "out"
	StockLow = "low"
	StockOK  = "ok"
)

// DefaultLowStock is the on-hand quantity at or below which a product is low.
const DefaultLowStock = 5

type ProductStock struct {
	models.Product
	CurrentStock int    `json:"currentStock"`
	Status       string `json:"status"`
	Expired      bool   `json:"expired"`
}

type InventorySummary struct {
	Products     int `json:"products"`
	Transactions int `json:"transactions"`
	OutOfStock   int `json:"outOfStock"`
	LowStock     int `json:"lowStock"`
	Expired      int `json:"expired"`
}

type TransactionGroup struct {
	ProductID    string                    `json:"productId"`
	ProductName  string                    `json:"productName"`
	Transactions []models.StockTransaction `json:"transactions"`
	CurrentStock int                       `json:"currentStock"`
}

// CurrentStock replays a product's transaction log. The latest revaluation
// by date sets the baseline; every entry dated on or after it is replayed,
// revaluations resetting and transactions adding their signed quantity.
// Without a revaluation the deltas simply accumulate from zero. Entries
// sharing a date keep their input order.
func CurrentStock(productID string, txns []models.StockTransaction) int {
	var own []models.StockTransaction
	for _, t := range txns {
		if t.ProductID == productID {
			own = append(own, t)
		}
	}
	if len(own) == 0 {
		return 0
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].Date < own[j].Date
	})

	var last *models.StockTransaction
	for i := range own {
		if own[i].Type == models.StockTypeRevaluation {
			last = &own[i]
		}
	}

	stock := 0
	for _, t := range own {
		if last != nil && t.Date < last.Date {
			continue
		}
		switch t.Type {
		case models.StockTypeRevaluation:
			stock = t.Quantity
		case models.StockTypeTransaction:
			stock += t.Quantity
		}
	}
	return stock
}

// StockStatus classifies an on-hand quantity.
func StockStatus(stock, lowThreshold int) string {
	switch {
	case stock <= 0:
		return StockOut
	case stock <= lowThreshold:
		return StockLow
	default:
		return StockOK
	}
}

// StockLevels derives the current stock of every product. A product is
// expired when its expiry date is before today.
func StockLevels(products []models.Product, txns []models.StockTransaction, lowThreshold int, today string) []ProductStock {
	out := make([]ProductStock, 0, len(products))
	for _, p := range products {
		stock := CurrentStock(p.ID.String(), txns)
		out = append(out, ProductStock{
			Product:      p,
			CurrentStock: stock,
			Status:       StockStatus(stock, lowThreshold),
			Expired:      p.ExpiryDate != "" && p.ExpiryDate < today,
		})
	}
	return out
}

func SummarizeInventory(levels []ProductStock, transactions int) InventorySummary {
	s := InventorySummary{Products: len(levels), Transactions: transactions}
	for _, l := range levels {
		switch l.Status {
		case StockOut:
			s.OutOfStock++
		case StockLow:
			s.LowStock++
		}
		if l.Expired {
			s.Expired++
		}
	}
	return s
}

// GroupTransactions buckets the log per product in first-seen order.
func GroupTransactions(txns []models.StockTransaction) []TransactionGroup {
	var groups []TransactionGroup
	index := make(map[string]int)
	for _, t := range txns {
		i, ok := index[t.ProductID]
		if !ok {
			i = len(groups)
			index[t.ProductID] = i
			groups = append(groups, TransactionGroup{ProductID: t.ProductID, ProductName: t.ProductName})
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
	}
	for i := range groups {
		groups[i].CurrentStock = CurrentStock(groups[i].ProductID, txns)
	}
	return groups
}
