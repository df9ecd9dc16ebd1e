package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/daveklee/calorieclimb.com/config"
	"github.com/daveklee/calorieclimb.com/controllers"
	"github.com/daveklee/calorieclimb.com/routes"
	"github.com/daveklee/calorieclimb.com/services"
	"github.com/daveklee/calorieclimb.com/utils"
)

const (
	janitorInterval = 10 * time.Minute
	sessionMaxIdle  = 2 * time.Hour
	shutdownGrace   = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		log.Printf("[config] JWT_SECRET not set, using a throwaway secret; tokens will not survive a restart")
		secret = []byte(utils.GenerateRandomToken(48))
	}

	// Optional collaborators stay nil interfaces when not configured.
	var remote services.NutritionSource
	var store *services.FoodStore
	if cfg.USDAAPIKey != "" {
		remote = services.NewUSDAService(cfg.USDABaseURL, cfg.USDAAPIKey)
		if db != nil {
			store = services.NewFoodStore(db)
			remote = services.NewArchivedSource(remote, store)
		}
	} else {
		log.Printf("[food] USDA_API_KEY not set, using the offline catalog only")
	}

	var labeler services.ImageLabeler
	if cfg.AWSRegion != "" {
		rek, err := services.NewRekognitionService(ctx, cfg.AWSRegion)
		if err != nil {
			log.Printf("[food] image recognition disabled: %v", err)
		} else {
			labeler = rek
		}
	}

	var narrative services.NarrativeSource
	if cfg.NarrativeAPIKey != "" {
		narrative = services.NewNarrativeService(cfg.NarrativeBaseURL, cfg.NarrativeAPIKey, cfg.NarrativeModel)
	}

	foodCfg := services.DefaultFoodServiceConfig()
	foodCfg.Mode = cfg.SearchMode
	foodCfg.Cooldown = cfg.RemoteCooldown
	foodCfg.BreakerRetry = cfg.BreakerRetry
	foods := services.NewFoodService(services.NewDefaultFoodCatalog(), remote, labeler, foodCfg)

	hub := services.NewRealtimeHub()
	games := services.NewGameService(foods, services.NewFeedbackService(narrative, 0), hub, cfg.MaxCalories)
	go games.RunJanitor(ctx, janitorInterval, sessionMaxIdle)

	r := routes.SetupRouter(routes.Controllers{
		Session:  controllers.NewSessionController(games, secret),
		Game:     controllers.NewGameController(games),
		Food:     controllers.NewFoodController(foods),
		Realtime: controllers.NewRealtimeController(hub, games, services.DefaultSuggestDelay),
		Health:   controllers.NewHealthController(foods, store),
	}, secret)

	// Restore default signal handling once shutdown starts so a second
	// Ctrl-C kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	if err := routes.Serve(ctx, srv, shutdownGrace); err != nil {
		log.Fatalf("server: %v", err)
	}
}
