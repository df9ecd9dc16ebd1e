package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/daveklee/calorieclimb.com/services"
)

const wsPingInterval = 25 * time.Second

type RealtimeController struct {
	RT           *services.RealtimeHub
	Games        *services.GameService
	SuggestDelay time.Duration
}

// constructor
func NewRealtimeController(rt *services.RealtimeHub, games *services.GameService, suggestDelay time.Duration) *RealtimeController {
	if suggestDelay <= 0 {
		suggestDelay = services.DefaultSuggestDelay
	}
	return &RealtimeController{RT: rt, Games: games, SuggestDelay: suggestDelay}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

type wsInbound struct {
	Type  string `json:"type"`
	Query string `json:"query"`
}

// GET /game/ws
func (rc *RealtimeController) GameWS(c *gin.Context) {
	id, ok := sessionIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	st, err := rc.Games.State(id)
	if err != nil {
		respondGameError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{SessionID: id, Conn: conn}
	rc.RT.Register(cl)
	_ = cl.Send(gin.H{"kind": "game.state", "state": st})

	done := make(chan struct{})
	debounce := services.NewDebouncer(rc.SuggestDelay)
	defer func() {
		close(done)
		debounce.Stop()
		rc.RT.Unregister(cl)
	}()

	// keep connections alive through proxies
	go func() {
		t := time.NewTicker(wsPingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Ping(); err != nil {
					return
				}
			}
		}
	}()

	// read loop ends on client close/error
	ctx := c.Request.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg wsInbound
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "suggest" {
			continue
		}
		query := msg.Query
		debounce.Submit(ctx, func(ctx context.Context) {
			out, err := rc.Games.Suggestions(ctx, query)
			if err != nil || ctx.Err() != nil {
				return
			}
			_ = cl.Send(gin.H{"kind": "suggestions", "query": query, "suggestions": out})
		})
	}
}
