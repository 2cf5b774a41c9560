package cli

import (
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/wellnest/internal/cache"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/logging"
	"github.com/terraincognita07/wellnest/internal/services"
)

var errRedisRequired = errors.New("REDIS_ADDR is required to watch change events")

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream change events relayed over redis as JSON lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.RedisEnabled() {
				return errRedisRequired
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, appName)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := cache.NewRedisClient(cfg.Redis)
			defer client.Close()
			if err := cache.Ping(ctx, client); err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			relay := cache.NewChangeRelay(client, logger)
			return relay.Listen(ctx, func(event services.ChangeEvent) {
				_ = encoder.Encode(event)
			})
		},
	}
}
