package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solune-backend/models"
)

func TestTotals(t *testing.T) {
	e := testEngine()
	apts := []models.Appointment{
		apt("1", "2026-03-15", 1000, 10, line("Haircut", 600, "A"), nailsLine("Manicure", 400, "B")),
		apt("1", "2026-03-14", 500, 0, line("Beard", 500, "A")),
		apt("2", "2026-03-14", 300, 0),
	}

	got := e.Totals(apts)
	assert.Equal(t, 3, got.Appointments)
	assert.Equal(t, 2, got.Clients)
	assert.InDelta(t, 1800, got.Gross, 1e-9)
	assert.InDelta(t, 60, got.Discount, 1e-9)
	assert.InDelta(t, 1740, got.Revenue, 1e-9)
	assert.InDelta(t, 580, got.AverageTicket, 1e-9)
	assert.InDelta(t, got.Revenue, e.Revenue(apts), 1e-9)
}

func TestEmptyAggregates(t *testing.T) {
	e := testEngine()

	assert.Equal(t, Totals{}, e.Totals(nil))
	assert.Empty(t, e.ServiceDistribution(nil))
	assert.Empty(t, e.Stylists(nil))
	assert.Empty(t, e.PaymentDistribution(nil))
	for _, b := range e.Payments(nil) {
		assert.Zero(t, b.Share)
		assert.Zero(t, b.Revenue)
	}
}

func TestPaymentsBucketCardFamily(t *testing.T) {
	e := testEngine()
	mk := func(method string, amount float64) models.Appointment {
		a := apt("1", "2026-03-15", amount, 0)
		a.PaymentMethod = method
		return a
	}
	apts := []models.Appointment{
		mk(models.PaymentCash, 100),
		mk(models.PaymentCard, 100),
		mk(models.PaymentCreditCard, 100),
		mk(models.PaymentDebitCard, 100),
		mk("Wallet", 0),
	}

	got := e.Payments(apts)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Cash", "UPI", "Card", "Other"},
		[]string{got[0].Method, got[1].Method, got[2].Method, got[3].Method})
	assert.Equal(t, 3, got[2].Count)
	assert.InDelta(t, 300, got[2].Revenue, 1e-9)
	assert.InDelta(t, 75, got[2].Share, 1e-9)
	assert.Equal(t, 1, got[3].Count)

	dist := e.PaymentDistribution(apts)
	require.Len(t, dist, 2)
	assert.Equal(t, models.PaymentCash, dist[0].Method)
	assert.Equal(t, models.PaymentCard, dist[1].Method)
}

func TestServiceDistributionLongTail(t *testing.T) {
	e := testEngine()
	names := serviceNames(15)
	var apts []models.Appointment
	total := 0
	counts := []int{20, 18, 16, 14, 12, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	for i, name := range names {
		count := counts[i]
		for n := 0; n < count; n++ {
			apts = append(apts, apt("1", "2026-03-15", 100, 0, line(name, 100, "A")))
		}
		total += count
	}

	got := e.ServiceDistribution(apts)
	require.Len(t, got, 11)
	assert.Equal(t, names[0], got[0].Name)
	assert.Equal(t, 20, got[0].Count)
	assert.Equal(t, OthersBucket, got[10].Name)
	assert.Equal(t, 5+4+3+2+1, got[10].Count)

	sum := 0
	for _, c := range got {
		sum += c.Count
	}
	assert.Equal(t, total, sum)
}

func TestServiceDistributionStableTies(t *testing.T) {
	e := testEngine()
	apts := []models.Appointment{
		apt("1", "2026-03-15", 300, 0, line("Wash", 100, ""), line("Cut", 100, ""), line("Dry", 100, "")),
		apt("2", "2026-03-15", 100, 0, line("Dry", 100, "")),
		apt("3", "2026-03-15", 100, 0),
	}

	got := e.ServiceDistribution(apts)
	assert.Equal(t, []ServiceCount{{"Dry", 2}, {"Wash", 1}, {"Cut", 1}}, got)
	assert.Equal(t, got, e.ServiceDistribution(apts))
}

func TestShareAndGrowthGuardZero(t *testing.T) {
	assert.Zero(t, Share(10, 0))
	assert.InDelta(t, 25, Share(1, 4), 1e-9)
	assert.Zero(t, Growth(10, 0))
	assert.InDelta(t, 50, Growth(15, 10), 1e-9)
	assert.InDelta(t, -100, Growth(0, 10), 1e-9)
}
