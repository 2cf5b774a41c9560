package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/wellnest/internal/api"
	"github.com/terraincognita07/wellnest/internal/config"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			if err := cfg.ValidateServer(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := openRuntime(ctx, cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := buildApp(rt)
			if err != nil {
				return err
			}
			return runServer(ctx, app, rt)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}

func buildApp(rt *appRuntime) (*fiber.App, error) {
	handler, err := api.NewHandler(rt.deps, api.Options{
		SecretKey:    rt.config.Server.SecretKey,
		CookieSecure: rt.config.Server.CookieSecure,
		Location:     rt.location,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Wellnest",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} ${method} ${path} ${latency}\n",
		Output: zap.NewStdLog(rt.logger.Named("http")).Writer(),
	}))
	app.Use(compress.New())
	if corsConfig, ok := corsMiddlewareConfig(rt.config.Server.CORSOrigins); ok {
		app.Use(cors.New(corsConfig))
	}
	app.Use(rt.metrics.Middleware())

	api.RegisterRoutes(app, handler)
	return app, nil
}

func corsMiddlewareConfig(rawOrigins string) (cors.Config, bool) {
	origins := make([]string, 0)
	for _, origin := range strings.Split(rawOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return cors.Config{}, false
	}

	allowOrigins := strings.Join(origins, ",")
	return cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowCredentials: allowOrigins != "*",
	}, true
}

func runServer(ctx context.Context, app *fiber.App, rt *appRuntime) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			rt.logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	rt.logger.Info("wellnest listening",
		zap.String("addr", "0.0.0.0:"+rt.config.Server.Port),
		zap.String("db_driver", rt.config.Database.Driver),
		zap.String("tz", rt.location.String()),
		zap.Bool("redis", rt.redis != nil),
	)
	if err := app.Listen(":" + rt.config.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
