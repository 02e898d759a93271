package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "run one library sync pass",
	Long:  `mirror the catalog into storage once and print the result`,
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

		ctx := logger.WithCtx(cmd.Context(), log)
		result, err := m.RunFullSync(ctx)
		if err != nil {
			log.Fatal("sync failed", zap.Error(err))
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatal("failed to marshal result", zap.Error(err))
		}

		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
