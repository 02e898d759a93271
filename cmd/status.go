package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/logger"
	"github.com/kasuboski/mirra/pkg/storage"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	statusMediaType string
	statusFast      bool
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status id...",
	Short: "resolve availability statuses",
	Long:  `resolve the availability status of one or more canonical ids`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		mediaType, ok := storage.ParseMediaType(statusMediaType)
		if !ok {
			log.Fatal("media type must be movie or tv", zap.String("mediaType", statusMediaType))
		}

		ids := make([]int32, 0, len(args))
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 32)
			if err != nil || id <= 0 {
				log.Fatal("invalid id", zap.String("id", arg))
			}
			ids = append(ids, int32(id))
		}

		m, err := newManager(cfg)
		if err != nil {
			log.Fatal("failed to wire clients", zap.Error(err))
		}

		ctx := logger.WithCtx(cmd.Context(), log)
		statuses, err := m.ResolveStatuses(ctx, ids, mediaType, statusFast)
		if err != nil {
			log.Fatal("failed to resolve statuses", zap.Error(err))
		}

		out, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			log.Fatal("failed to marshal statuses", zap.Error(err))
		}

		fmt.Println(string(out))
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusMediaType, "media-type", "movie", "movie or tv")
	statusCmd.Flags().BoolVar(&statusFast, "fast", false, "treat mirrored shows as complete")
	rootCmd.AddCommand(statusCmd)
}
