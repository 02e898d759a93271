package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "show mirror statistics",
	Long:  `show item counts and the age of the last sync`,
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
		stats, err := m.GetSyncStats(ctx)
		if err != nil {
			log.Fatal("failed to read stats", zap.Error(err))
		}

		fmt.Printf("items:  %d\n", stats.TotalItems)
		fmt.Printf("movies: %d\n", stats.Movies)
		fmt.Printf("shows:  %d\n", stats.Shows)
		if stats.LastSyncTime != nil {
			fmt.Printf("last sync: %s\n", humanize.Time(*stats.LastSyncTime))
		} else {
			fmt.Println("last sync: never")
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
