package analytics

import (
	"sort"

	"solune-backend/models"
)

const (
	// TopServices is how many services keep their own bucket in the distribution.
	TopServices = 10
	// OthersBucket collects the long tail of the service distribution.
	OthersBucket = "Others"
)

// Engine aggregates filtered appointments into summary statistics.
type Engine struct {
	Calc *Calculator
}

func NewEngine(calc *Calculator) *Engine {
	if calc == nil {
		calc = NewCalculator(nil)
	}
	return &Engine{Calc: calc}
}

type Totals struct {
	Appointments  int     `json:"appointments"`
	Clients       int     `json:"clients"`
	Gross         float64 `json:"gross"`
	Discount      float64 `json:"discount"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"averageTicket"`
}

type PaymentBucket struct {
	Method  string  `json:"method"`
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
	Share   float64 `json:"share"`
}

type ServiceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (e *Engine) Totals(apts []models.Appointment) Totals {
	var t Totals
	phones := make(map[string]struct{}, len(apts))
	for _, a := range apts {
		discount := e.Calc.DiscountAmount(a)
		t.Gross += a.Amount
		t.Discount += discount
		t.Revenue += a.Amount - discount
		phones[a.Phone] = struct{}{}
	}
	t.Appointments = len(apts)
	t.Clients = len(phones)
	t.AverageTicket = Ratio(t.Revenue, float64(t.Appointments))
	return t
}

// Revenue sums the final amounts of the appointments.
func (e *Engine) Revenue(apts []models.Appointment) float64 {
	var sum float64
	for _, a := range apts {
		sum += e.Calc.FinalAmount(a)
	}
	return sum
}

// PaymentBucketOf maps a stored payment method onto its reporting bucket.
func PaymentBucketOf(method string) string {
	switch method {
	case models.PaymentCash:
		return models.PaymentCash
	case models.PaymentUPI:
		return models.PaymentUPI
	case models.PaymentCard, models.PaymentCreditCard, models.PaymentDebitCard:
		return models.PaymentCard
	default:
		return models.PaymentOther
	}
}

// Payments splits revenue and counts into Cash, UPI, Card and Other, always
// in that order.
func (e *Engine) Payments(apts []models.Appointment) []PaymentBucket {
	buckets := []PaymentBucket{
		{Method: models.PaymentCash},
		{Method: models.PaymentUPI},
		{Method: models.PaymentCard},
		{Method: models.PaymentOther},
	}
	index := map[string]int{
		models.PaymentCash:  0,
		models.PaymentUPI:   1,
		models.PaymentCard:  2,
		models.PaymentOther: 3,
	}

	var total float64
	for _, a := range apts {
		b := &buckets[index[PaymentBucketOf(a.PaymentMethod)]]
		final := e.Calc.FinalAmount(a)
		b.Revenue += final
		b.Count++
		total += final
	}
	for i := range buckets {
		buckets[i].Share = Share(buckets[i].Revenue, total)
	}
	return buckets
}

// PaymentDistribution is Payments without the zero-revenue buckets.
func (e *Engine) PaymentDistribution(apts []models.Appointment) []PaymentBucket {
	all := e.Payments(apts)
	out := make([]PaymentBucket, 0, len(all))
	for _, b := range all {
		if b.Revenue > 0 {
			out = append(out, b)
		}
	}
	return out
}

// ServiceDistribution counts bookings per service name. Each service line of
// an itemised sale counts once; legacy single-service sales are not counted.
// Past TopServices names the tail collapses into OthersBucket.
func (e *Engine) ServiceDistribution(apts []models.Appointment) []ServiceCount {
	var counts []ServiceCount
	index := make(map[string]int)
	for _, a := range apts {
		sale, ok := a.Sale().(models.MultiServiceSale)
		if !ok {
			continue
		}
		for _, line := range sale.Services {
			i, seen := index[line.Name]
			if !seen {
				i = len(counts)
				index[line.Name] = i
				counts = append(counts, ServiceCount{Name: line.Name})
			}
			counts[i].Count++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) <= TopServices {
		return counts
	}

	others := ServiceCount{Name: OthersBucket}
	for _, c := range counts[TopServices:] {
		others.Count += c.Count
	}
	out := make([]ServiceCount, 0, TopServices+1)
	out = append(out, counts[:TopServices]...)
	return append(out, others)
}

// Share is part as a percentage of total; zero when total is zero.
func Share(part, total float64) float64 {
	return Ratio(part, total) * 100
}

// Ratio divides guarding against a zero denominator.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Growth is the percentage change from previous to current; zero when there
// is no previous value to compare against.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
