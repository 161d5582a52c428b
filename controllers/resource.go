package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"solune-backend/analytics"
	"solune-backend/store"
	"solune-backend/utils"
)

// Resource serves plain CRUD for one collection. prepare normalises and
// validates a decoded body before it is written; old is nil on create.
// filter, when set, narrows List from the query string.
type Resource[T any, P store.Record[T]] struct {
	ctl     *Controller
	name    string
	repo    store.Repository[T]
	prepare func(c *gin.Context, v, old *T) error
	filter  func(c *gin.Context, items []T) ([]T, bool)
}

func newResource[T any, P store.Record[T]](ctl *Controller, name string, repo store.Repository[T], prepare func(c *gin.Context, v, old *T) error) *Resource[T, P] {
	return &Resource[T, P]{ctl: ctl, name: name, repo: repo, prepare: prepare}
}

func (r *Resource[T, P]) List(c *gin.Context) {
	items, err := r.repo.List(c.Request.Context())
	if err != nil {
		r.ctl.fail(c, err, r.name)
		return
	}
	if r.filter != nil {
		var ok bool
		if items, ok = r.filter(c, items); !ok {
			return
		}
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func (r *Resource[T, P]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := r.repo.Get(c.Request.Context(), id)
	if err != nil {
		r.ctl.fail(c, err, r.name)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (r *Resource[T, P]) Create(c *gin.Context) {
	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	*P(&v).Key() = uuid.Nil
	if r.prepare != nil {
		if err := r.prepare(c, &v, nil); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := r.repo.Create(c.Request.Context(), &v); err != nil {
		r.ctl.fail(c, err, r.name)
		return
	}
	r.ctl.changed(c)
	c.JSON(http.StatusCreated, v)
}

// Update replaces the whole record.
func (r *Resource[T, P]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	old, err := r.repo.Get(c.Request.Context(), id)
	if err != nil {
		r.ctl.fail(c, err, r.name)
		return
	}

	var v T
	if err := c.ShouldBindJSON(&v); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	*P(&v).Key() = id
	P(&v).Restamp(P(old).Created())
	if r.prepare != nil {
		if err := r.prepare(c, &v, old); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := r.repo.Update(c.Request.Context(), &v); err != nil {
		r.ctl.fail(c, err, r.name)
		return
	}
	r.ctl.changed(c)
	c.JSON(http.StatusOK, v)
}

func (r *Resource[T, P]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := r.repo.Delete(c.Request.Context(), id); err != nil {
		r.ctl.fail(c, err, r.name)
		return
	}
	r.ctl.changed(c)
	c.JSON(http.StatusOK, gin.H{"message": r.name + " deleted"})
}

// dateFiltered narrows a dated collection by ?range=&from=&to=, the same
// selection the analytics endpoints take.
func dateFiltered[T analytics.Dated](ctl *Controller) func(c *gin.Context, items []T) ([]T, bool) {
	return func(c *gin.Context, items []T) ([]T, bool) {
		sel, ok := ctl.selection(c)
		if !ok {
			return nil, false
		}
		return analytics.FilterByDate(items, sel, ctl.now()), true
	}
}
