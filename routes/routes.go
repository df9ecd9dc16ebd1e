package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/daveklee/calorieclimb.com/controllers"
	"github.com/daveklee/calorieclimb.com/middlewares"
)

type Controllers struct {
	Session  *controllers.SessionController
	Game     *controllers.GameController
	Food     *controllers.FoodController
	Realtime *controllers.RealtimeController
	Health   *controllers.HealthController
}

func SetupRouter(ctl Controllers, secret []byte) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", ctl.Health.Healthz)

	// Public: start a game and browse the food database
	r.POST("/session", ctl.Session.CreateSession)
	foods := r.Group("/foods")
	{
		foods.GET("/search", ctl.Food.Search)
		foods.GET("/:id", ctl.Food.Details)
	}

	// Session-scoped game routes
	game := r.Group("/game")
	game.Use(middlewares.SessionMiddleware(secret))
	{
		game.GET("", ctl.Game.GetState)
		game.POST("/feed", ctl.Game.Feed)
		game.POST("/reset", ctl.Game.Reset)
		game.PUT("/settings", ctl.Game.UpdateSettings)
		game.GET("/suggestions", ctl.Game.Suggestions)
		game.POST("/recognize", ctl.Game.Recognize)
		game.GET("/ws", ctl.Realtime.GameWS)
	}

	return r
}
