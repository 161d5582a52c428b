// controllers/service.go
package controllers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"solune-backend/models"
)

func validCategory(c string) bool {
	switch c {
	case "", models.CategoryMen, models.CategoryWomen, models.CategoryBoth:
		return true
	}
	return false
}

func (ctl *Controller) prepareService(c *gin.Context, s, old *models.Service) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Price < 0 {
		return errors.New("price must not be negative")
	}
	if !validCategory(s.Category) {
		return errors.New("category must be men, women or both")
	}
	return nil
}

func (ctl *Controller) prepareServiceGroup(c *gin.Context, g, old *models.ServiceGroup) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return errors.New("name is required")
	}
	if !validCategory(g.Category) {
		return errors.New("category must be men, women or both")
	}
	return nil
}

func (ctl *Controller) prepareStylist(c *gin.Context, s, old *models.Stylist) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func (ctl *Controller) Services() *Resource[models.Service, *models.Service] {
	return newResource[models.Service](ctl, "Service", ctl.Store.Services, ctl.prepareService)
}

func (ctl *Controller) ServiceGroups() *Resource[models.ServiceGroup, *models.ServiceGroup] {
	return newResource[models.ServiceGroup](ctl, "Service group", ctl.Store.ServiceGroups, ctl.prepareServiceGroup)
}

func (ctl *Controller) Stylists() *Resource[models.Stylist, *models.Stylist] {
	return newResource[models.Stylist](ctl, "Stylist", ctl.Store.Stylists, ctl.prepareStylist)
}
