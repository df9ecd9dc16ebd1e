package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daveklee/calorieclimb.com/services"
)

type HealthController struct {
	Foods *services.FoodService
	Store *services.FoodStore // nil without a database
}

func NewHealthController(foods *services.FoodService, store *services.FoodStore) *HealthController {
	return &HealthController{Foods: foods, Store: store}
}

// GET /healthz
func (h *HealthController) Healthz(c *gin.Context) {
	out := gin.H{"status": "ok", "resolver": h.Foods.Status()}
	if h.Store != nil {
		if n, err := h.Store.Count(c.Request.Context()); err == nil {
			out["archived_foods"] = n
		}
	}
	c.JSON(http.StatusOK, out)
}
