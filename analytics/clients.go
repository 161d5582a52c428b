package analytics

import (
	"sort"
	"strings"

	"solune-backend/models"
)

// Client sort orders accepted by SortClients.
const (
	SortRecent     = "all"
	SortHighVisits = "high-visits"
	SortHighSpend  = "high-spend"
)

// Client is one phone number's rolled-up history.
type Client struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Visits     int     `json:"visits"`
	TotalSpent float64 `json:"totalSpent"`
	LastVisit  string  `json:"lastVisit"`
}

// Clients folds appointments into one record per phone. The name comes from
// the first appointment seen for that phone. Output is ordered by last visit,
// most recent first; equal dates keep first-seen order.
func (e *Engine) Clients(apts []models.Appointment) []Client {
	var clients []Client
	index := make(map[string]int)
	for _, a := range apts {
		i, ok := index[a.Phone]
		if !ok {
			i = len(clients)
			index[a.Phone] = i
			clients = append(clients, Client{Name: a.Name, Phone: a.Phone, LastVisit: a.Date})
		}
		c := &clients[i]
		c.Visits++
		c.TotalSpent += e.Calc.FinalAmount(a)
		if a.Date > c.LastVisit {
			c.LastVisit = a.Date
		}
	}
	SortClients(clients, SortRecent)
	return clients
}

// SortClients re-sorts in place. Unknown orders fall back to most recent.
func SortClients(clients []Client, by string) {
	var less func(i, j int) bool
	switch by {
	case SortHighVisits, "visits":
		less = func(i, j int) bool { return clients[i].Visits > clients[j].Visits }
	case SortHighSpend, "spend":
		less = func(i, j int) bool { return clients[i].TotalSpent > clients[j].TotalSpent }
	default:
		less = func(i, j int) bool { return clients[i].LastVisit > clients[j].LastVisit }
	}
	sort.SliceStable(clients, less)
}

// SearchClients matches q against the name, case-insensitively, or the phone.
func SearchClients(clients []Client, q string) []Client {
	q = strings.TrimSpace(q)
	if q == "" {
		return clients
	}
	lower := strings.ToLower(q)
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), lower) || strings.Contains(c.Phone, q) {
			out = append(out, c)
		}
	}
	return out
}
