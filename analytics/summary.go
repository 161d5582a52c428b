package analytics

import (
	"strings"
	"time"

	"solune-backend/models"
)

// Summary is the full analytics view for one date selection.
type Summary struct {
	Range               Selection       `json:"range"`
	From                string          `json:"from,omitempty"`
	To                  string          `json:"to,omitempty"`
	Label               string          `json:"label"`
	Totals              Totals          `json:"totals"`
	Payments            []PaymentBucket `json:"payments"`
	PaymentDistribution []PaymentBucket `json:"paymentDistribution"`
	Services            []ServiceCount  `json:"services"`
	Stylists            []StylistStat   `json:"stylists"`
	MonthlyCollection   float64         `json:"monthlyCollection"`
	MonthlyLabel        string          `json:"monthlyLabel"`
	Expenses            ExpenseSummary  `json:"expenses"`
	Net                 float64         `json:"net"`
}

type ExpenseSummary struct {
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Dashboard is the landing page overview. It ignores any date selection.
type Dashboard struct {
	TodayAppointments int     `json:"todayAppointments"`
	TodayRevenue      float64 `json:"todayRevenue"`
	TotalClients      int     `json:"totalClients"`
	Growth            float64 `json:"growth"`
}

// Summarize filters both collections by sel and aggregates them. In custom
// range mode the monthly collection is the selection's revenue, otherwise it
// covers the current calendar month regardless of sel.
func (e *Engine) Summarize(apts []models.Appointment, expenses []models.Expense, sel Selection, now time.Time) Summary {
	filtered := FilterByDate(apts, sel, now)
	from, to, _ := sel.Bounds(now)

	s := Summary{
		Range:               sel,
		From:                from,
		To:                  to,
		Label:               sel.Label(now),
		Totals:              e.Totals(filtered),
		Payments:            e.Payments(filtered),
		PaymentDistribution: e.PaymentDistribution(filtered),
		Services:            e.ServiceDistribution(filtered),
		Stylists:            e.Stylists(filtered),
		Expenses:            SummarizeExpenses(FilterByDate(expenses, sel, now)),
	}

	if sel.Custom() {
		s.MonthlyCollection = s.Totals.Revenue
		s.MonthlyLabel = s.Label
	} else {
		month := Selection{Preset: PresetThisMonth}
		s.MonthlyCollection = e.Revenue(FilterByDate(apts, month, now))
		s.MonthlyLabel = month.Label(now)
	}
	s.Net = s.Totals.Revenue - s.Expenses.Total
	return s
}

func SummarizeExpenses(expenses []models.Expense) ExpenseSummary {
	var s ExpenseSummary
	for _, x := range expenses {
		s.Total += x.Amount
	}
	s.Count = len(expenses)
	s.Average = Ratio(s.Total, float64(s.Count))
	return s
}

// Dashboard computes today's figures over the whole history. Growth compares
// this calendar month's appointment count with last month's.
func (e *Engine) Dashboard(apts []models.Appointment, now time.Time) Dashboard {
	today := now.Format(DateLayout)
	thisMonth := now.Format("2006-01")
	first, _ := monthBounds(now)
	lastMonth := first.AddDate(0, 0, -1).Format("2006-01")

	var d Dashboard
	var current, previous int
	phones := make(map[string]struct{})
	for _, a := range apts {
		phones[a.Phone] = struct{}{}
		if a.Date == today {
			d.TodayAppointments++
			d.TodayRevenue += e.Calc.FinalAmount(a)
		}
		switch {
		case strings.HasPrefix(a.Date, thisMonth):
			current++
		case strings.HasPrefix(a.Date, lastMonth):
			previous++
		}
	}
	d.TotalClients = len(phones)
	d.Growth = Growth(float64(current), float64(previous))
	return d
}
