package cmd

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kasuboski/mirra/config"
	"github.com/kasuboski/mirra/pkg/manager"
	"github.com/kasuboski/mirra/pkg/plex"
	"github.com/kasuboski/mirra/pkg/storage/sqlite"
	"github.com/kasuboski/mirra/pkg/tmdb"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mirra",
	Short: "mirra cli",
	Long:  `library availability reconciliation for a plex catalog`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

const defaultSyncInterval = time.Hour

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("MIRRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("plex.scheme", "http")
	viper.SetDefault("plex.host", "localhost:32400")
	viper.SetDefault("plex.token", "")

	viper.SetDefault("tmdb.scheme", "https")
	viper.SetDefault("tmdb.host", "api.themoviedb.org")
	viper.SetDefault("tmdb.apiKey", "")
	viper.SetDefault("tmdb.maxRetries", 3)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("storage.filePath", "mirra.sqlite")

	viper.SetDefault("sync.interval", defaultSyncInterval)
	viper.SetDefault("sync.detailCacheTTL", time.Minute*15)
	viper.SetDefault("sync.fuzzyMaxDistance", 2)
}

// newManager wires the clients and storage a command needs
func newManager(cfg config.Config) (manager.MediaManager, error) {
	plexURL := url.URL{
		Scheme: cfg.Plex.Scheme,
		Host:   cfg.Plex.Host,
	}

	plexClient, err := plex.New(plexURL.String(), cfg.Plex.Token)
	if err != nil {
		return manager.MediaManager{}, err
	}

	tmdbURL := url.URL{
		Scheme: cfg.TMDB.Scheme,
		Host:   cfg.TMDB.Host,
	}

	tmdbClient, err := tmdb.New(tmdbURL.String(), cfg.TMDB.APIKey,
		tmdb.WithRetry(cfg.TMDB.BaseBackoff, cfg.TMDB.MaxRetries))
	if err != nil {
		return manager.MediaManager{}, err
	}

	store, err := sqlite.New(cfg.Storage.FilePath)
	if err != nil {
		return manager.MediaManager{}, err
	}

	return manager.New(plexClient, tmdbClient, store, cfg.Sync), nil
}
