package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"solune-backend/models"
)

var (
	ist      = time.FixedZone("IST", 5*3600+1800)
	testNow  = time.Date(2026, time.March, 15, 12, 0, 0, 0, ist)
	nailsID  = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	hairID   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	threadID = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
)

func testGroups() []models.ServiceGroup {
	return []models.ServiceGroup{
		{Base: models.Base{ID: nailsID}, Name: " Nails "},
		{Base: models.Base{ID: hairID}, Name: "Hair"},
		{Base: models.Base{ID: threadID}, Name: "THREADING"},
	}
}

func testEngine() *Engine {
	return NewEngine(NewCalculator(testGroups()))
}

func apt(phone, date string, amount, discount float64, lines ...models.ServiceLine) models.Appointment {
	return models.Appointment{
		Base:          models.Base{ID: uuid.New()},
		Name:          "Client " + phone,
		Phone:         phone,
		Date:          date,
		Amount:        amount,
		Discount:      discount,
		PaymentMethod: models.PaymentCash,
		Services:      lines,
	}
}

func line(name string, price float64, stylist string) models.ServiceLine {
	return models.ServiceLine{Name: name, Price: price, Stylist: stylist}
}

func nailsLine(name string, price float64, stylist string) models.ServiceLine {
	l := line(name, price, stylist)
	l.GroupID = nailsID.String()
	return l
}

func serviceNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Service %02d", i+1)
	}
	return names
}
