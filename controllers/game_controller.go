// controllers/game_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daveklee/calorieclimb.com/models"
	"github.com/daveklee/calorieclimb.com/services"
)

type GameController struct {
	Games *services.GameService
}

func NewGameController(games *services.GameService) *GameController {
	return &GameController{Games: games}
}

// sessionIDFromCtx reads the id set by SessionMiddleware.
func sessionIDFromCtx(c *gin.Context) (string, bool) {
	id := c.GetString("sessionID")
	return id, id != ""
}

// respondGameError maps service errors onto status codes.
func respondGameError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrFeedInProgress), errors.Is(err, services.ErrStaleSession):
		code = http.StatusConflict
	case errors.Is(err, services.ErrInvalidMaxCalories), errors.Is(err, services.ErrInvalidSearchMode):
		code = http.StatusBadRequest
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// GET /game
func (h *GameController) GetState(c *gin.Context) {
	id, ok := sessionIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	st, err := h.Games.State(id)
	if err != nil {
		respondGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type feedReq struct {
	Food string `json:"food" binding:"required"`
}

// POST /game/feed  { "food": "apple" }
func (h *GameController) Feed(c *gin.Context) {
	id, ok := sessionIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req feedReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.Games.Feed(c.Request.Context(), id, req.Food)
	if err != nil {
		respondGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// POST /game/reset
func (h *GameController) Reset(c *gin.Context) {
	id, ok := sessionIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	st, err := h.Games.Reset(id)
	if err != nil {
		respondGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type settingsReq struct {
	MaxCalories *int    `json:"max_calories"`
	SearchMode  *string `json:"search_mode"`
}

// PUT /game/settings  { "max_calories": 1500, "search_mode": "generic" }
func (h *GameController) UpdateSettings(c *gin.Context) {
	id, ok := sessionIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req settingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Nothing is applied unless the whole request is valid.
	if req.MaxCalories != nil && *req.MaxCalories < models.MinMaxCalories {
		respondGameError(c, services.ErrInvalidMaxCalories)
		return
	}
	if req.SearchMode != nil {
		if _, err := models.ParseSearchMode(*req.SearchMode); err != nil {
			respondGameError(c, fmt.Errorf("%w: %q", services.ErrInvalidSearchMode, *req.SearchMode))
			return
		}
	}

	// The session-scoped change goes first so an unknown session leaves the
	// shared search mode alone.
	if req.MaxCalories != nil {
		if _, err := h.Games.SetMaxCalories(id, *req.MaxCalories); err != nil {
			respondGameError(c, err)
			return
		}
	}
	if req.SearchMode != nil {
		if err := h.Games.SetSearchMode(*req.SearchMode); err != nil {
			respondGameError(c, err)
			return
		}
	}

	st, err := h.Games.State(id)
	if err != nil {
		respondGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": st, "search_mode": h.Games.SearchMode()})
}

// GET /game/suggestions?q=app
func (h *GameController) Suggestions(c *gin.Context) {
	out, err := h.Games.Suggestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": out})
}

// POST /game/recognize  { "image_base64": "data:…"}
func (h *GameController) Recognize(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	out, err := h.Games.Recognize(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": out})
}
