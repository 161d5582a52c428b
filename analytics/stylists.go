package analytics

import (
	"sort"

	"solune-backend/models"
)

// NoStylist collects services nobody was assigned to. It is computed but
// never reported.
const NoStylist = "No stylist"

type StylistStat struct {
	Name         string  `json:"name"`
	Revenue      float64 `json:"revenue"`
	Appointments int     `json:"appointments"`
	Services     int     `json:"services"`
	Share        float64 `json:"share"`
}

type stylistAcc struct {
	stat StylistStat
	seen map[string]struct{}
}

// Stylists attributes each appointment's final amount to the stylists who
// worked on it, split by the number of services each performed. The result
// is sorted by revenue, highest first.
func (e *Engine) Stylists(apts []models.Appointment) []StylistStat {
	all := e.attributeStylists(apts)

	out := make([]StylistStat, 0, len(all))
	var total float64
	for _, s := range all {
		if s.Name == NoStylist {
			continue
		}
		out = append(out, s)
		total += s.Revenue
	}
	for i := range out {
		out[i].Share = Share(out[i].Revenue, total)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

// attributeStylists returns every bucket, the sentinel included, in
// first-seen order.
func (e *Engine) attributeStylists(apts []models.Appointment) []StylistStat {
	var accs []*stylistAcc
	index := make(map[string]*stylistAcc)
	get := func(name string) *stylistAcc {
		acc, ok := index[name]
		if !ok {
			acc = &stylistAcc{stat: StylistStat{Name: name}, seen: make(map[string]struct{})}
			index[name] = acc
			accs = append(accs, acc)
		}
		return acc
	}

	for _, a := range apts {
		perStylist, order, total := servicesByStylist(a)
		if total == 0 {
			continue
		}
		final := e.Calc.FinalAmount(a)
		id := a.ID.String()
		for _, name := range order {
			n := perStylist[name]
			acc := get(name)
			acc.stat.Revenue += final * float64(n) / float64(total)
			acc.stat.Services += n
			if _, dup := acc.seen[id]; !dup {
				acc.seen[id] = struct{}{}
				acc.stat.Appointments++
			}
		}
	}

	out := make([]StylistStat, len(accs))
	for i, acc := range accs {
		out[i] = acc.stat
	}
	return out
}

// servicesByStylist counts how many services each stylist performed in one
// appointment. A legacy sale counts as a single service by the
// appointment-level stylist; a legacy sale with no stylist contributes
// nothing.
func servicesByStylist(a models.Appointment) (map[string]int, []string, int) {
	counts := make(map[string]int)
	var order []string
	add := func(name string) {
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}

	switch sale := a.Sale().(type) {
	case models.MultiServiceSale:
		for _, line := range sale.Services {
			add(resolveStylist(line.Stylist, a.Stylist))
		}
		return counts, order, len(sale.Services)
	case models.LegacySale:
		if sale.Stylist == "" {
			return nil, nil, 0
		}
		add(sale.Stylist)
		return counts, order, 1
	}
	return nil, nil, 0
}

func resolveStylist(line, appointment string) string {
	if line != "" {
		return line
	}
	if appointment != "" {
		return appointment
	}
	return NoStylist
}
