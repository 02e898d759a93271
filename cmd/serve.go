package cmd

import (
	"context"

	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/logger"
	"github.com/kasuboski/mirra/pkg/manager"
	"github.com/kasuboski/mirra/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the availability server",
	Long:  `start the availability server and the background sync scheduler`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		m, err := newManager(cfg)
		if err != nil {
			log.Fatal("failed to wire clients", zap.Error(err))
		}

		registry := manager.NewJobRegistry()
		scheduler := manager.NewScheduler(m, registry, cfg.Sync.Interval)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		ctx = logger.WithCtx(ctx, log)

		go func() {
			if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("scheduler stopped", zap.Error(err))
			}
		}()

		srv := server.New(log, m, scheduler, registry)
		log.Error(srv.Serve(cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
