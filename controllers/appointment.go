// controllers/appointment.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"solune-backend/analytics"
	"solune-backend/models"
	"solune-backend/utils"
)

var paymentMethods = map[string]bool{
	models.PaymentCash:       true,
	models.PaymentUPI:        true,
	models.PaymentCard:       true,
	models.PaymentCreditCard: true,
	models.PaymentDebitCard:  true,
	models.PaymentOther:      true,
}

// prepareAppointment validates a sale before it is stored. The engine never
// checks its inputs, so every bound is enforced here.
func (ctl *Controller) prepareAppointment(c *gin.Context, a, old *models.Appointment) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Phone = strings.TrimSpace(a.Phone)
	if a.Name == "" {
		return errors.New("name is required")
	}
	if !utils.ValidatePhone(a.Phone) {
		return errors.New("invalid phone number format")
	}
	if !analytics.ValidDate(a.Date) {
		return errors.New("date must be yyyy-MM-dd")
	}
	if a.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if !utils.ValidDiscount(a.Discount) {
		return errors.New("discount must be between 0 and 100")
	}
	if a.PaymentMethod == "" {
		a.PaymentMethod = models.PaymentCash
	}
	if !paymentMethods[a.PaymentMethod] {
		return fmt.Errorf("unknown payment method %q", a.PaymentMethod)
	}
	for i, line := range a.Services {
		if strings.TrimSpace(line.Name) == "" {
			return fmt.Errorf("services[%d]: name is required", i)
		}
		if line.Price < 0 {
			return fmt.Errorf("services[%d]: price must not be negative", i)
		}
		switch line.Category {
		case "", models.CategoryMen, models.CategoryWomen, models.CategoryBoth:
		default:
			return fmt.Errorf("services[%d]: unknown category %q", i, line.Category)
		}
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = ctl.now()
	}
	return nil
}

func (ctl *Controller) Appointments() *Resource[models.Appointment, *models.Appointment] {
	res := newResource[models.Appointment](ctl, "Appointment", ctl.Store.Appointments, ctl.prepareAppointment)
	res.filter = dateFiltered[models.Appointment](ctl)
	return res
}

type DiscountCheckInput struct {
	Amount   float64              `json:"amount"`
	Discount float64              `json:"discount"`
	Services []models.ServiceLine `json:"services"`
}

// DiscountCheck previews the bill for a sale being entered, telling the form
// whether the discount field should be disabled.
func (ctl *Controller) DiscountCheck(c *gin.Context) {
	var input DiscountCheckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidDiscount(input.Discount) || input.Amount < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "amount must not be negative and discount must be between 0 and 100")
		return
	}

	snap, err := ctl.snapshot(c.Request.Context())
	if err != nil {
		ctl.fail(c, err, "snapshot")
		return
	}
	calc := ctl.engine(snap).Calc
	a := models.Appointment{Amount: input.Amount, Discount: input.Discount, Services: input.Services}

	c.JSON(http.StatusOK, gin.H{
		"locked":             calc.DiscountLocked(a),
		"discountableAmount": calc.DiscountableAmount(a),
		"discountAmount":     calc.DiscountAmount(a),
		"finalAmount":        calc.FinalAmount(a),
		"finalFormatted":     utils.FormatINR(calc.FinalAmount(a)),
	})
}
