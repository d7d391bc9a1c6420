package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/redis/go-redis/v9"

	"game-with-you/config"
	"game-with-you/handlers"
	_ "game-with-you/migrations"
	"game-with-you/security"
	"game-with-you/services"
	"game-with-you/store"
	"game-with-you/utils"
)

func Start() error {
	// Load configuration
	cfg := config.LoadConfig()

	logger := utils.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// No subcommand means serve on the configured port.
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve", "--http=0.0.0.0:"+cfg.Port)
	}

	app := pocketbase.New()

	st, err := newStore(cfg, app)
	if err != nil {
		return err
	}

	// Initialize Redis, optional
	var redisClient *redis.Client
	var limit func(e *core.RequestEvent) error
	if cfg.RedisURL != "" {
		redisClient, err = utils.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", "error", err)
		} else {
			defer redisClient.Close()
			limit = security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, cfg.RateLimitWindow, logger).Middleware
		}
	}

	// Initialize services
	matcher := services.NewMatcher(st, logger)
	ticketService := services.NewTicketService(st, logger)
	eventService := services.NewEventService(st, cfg.Slots, logger)

	// Initialize handlers
	routes := handlers.Routes{
		Tickets:       handlers.NewTicketHandler(ticketService, matcher, logger),
		Events:        handlers.NewEventHandler(eventService, logger),
		Health:        handlers.NewHealthHandler(st, redisClient),
		Limit:         limit,
		EnableMetrics: cfg.EnableMetrics,
	}

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	app.RootCmd.AddCommand(newImportCommand(app, cfg, st))

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		routes.Register(e.Router)

		logger.Info("server routes registered",
			"backend", cfg.StoreBackend,
			"rate_limit", limit != nil,
			"metrics", cfg.EnableMetrics,
		)
		return e.Next()
	})

	return app.Start()
}

func newStore(cfg *config.Config, app core.App) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPocketBase:
		return store.NewPocketBaseStore(app), nil
	case config.BackendFile:
		return store.NewFileStore(cfg.TicketsFile, cfg.EventsFile)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
