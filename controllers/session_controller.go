package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daveklee/calorieclimb.com/services"
	"github.com/daveklee/calorieclimb.com/utils"
)

type SessionController struct {
	Games  *services.GameService
	Secret []byte
}

func NewSessionController(games *services.GameService, secret []byte) *SessionController {
	return &SessionController{Games: games, Secret: secret}
}

// POST /session
func (h *SessionController) CreateSession(c *gin.Context) {
	id, st := h.Games.Create()

	token, err := utils.GenerateSessionJWT(id, h.Secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"session_id": id,
		"state":      st,
	})
}
