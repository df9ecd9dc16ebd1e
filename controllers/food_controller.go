package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/daveklee/calorieclimb.com/models"
	"github.com/daveklee/calorieclimb.com/services"
)

const (
	defaultPageSize = 25
	maxPageSize     = 200
)

type FoodController struct {
	Foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{Foods: foods}
}

// modeParam reads ?mode=, defaulting to the resolver's mode.
func (h *FoodController) modeParam(c *gin.Context) (models.SearchMode, error) {
	v := c.Query("mode")
	if v == "" {
		return h.Foods.Mode(), nil
	}
	return models.ParseSearchMode(v)
}

// GET /foods/search?q=apple&page=1&page_size=25&mode=generic
func (h *FoodController) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 || size > maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return
	}
	mode, err := h.modeParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Foods.Search(c.Request.Context(), q, page, size, mode)
	if errors.Is(err, services.ErrRemoteUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /foods/:id?mode=generic
func (h *FoodController) Details(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}
	mode, err := h.modeParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.Foods.Details(c.Request.Context(), id, mode)
	switch {
	case errors.Is(err, services.ErrFoodNotFound), errors.Is(err, services.ErrFoodRestricted):
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
	case errors.Is(err, services.ErrRemoteUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, f)
	}
}
