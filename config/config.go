package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Plex    Plex    `json:"plex" yaml:"plex" mapstructure:"plex" validate:"required"`
	TMDB    TMDB    `json:"tmdb" yaml:"tmdb" mapstructure:"tmdb" validate:"required"`
	Storage Storage `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
	Sync    Sync    `json:"sync" yaml:"sync" mapstructure:"sync"`
}

type Plex struct {
	Scheme string `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"oneof=http https"`
	Host   string `json:"host" yaml:"host" mapstructure:"host" validate:"required"`
	Token  string `json:"token" yaml:"token" mapstructure:"token"`
}

type TMDB struct {
	Scheme      string        `json:"scheme" yaml:"scheme" mapstructure:"scheme" validate:"oneof=http https"`
	Host        string        `json:"host" yaml:"host" mapstructure:"host" validate:"required"`
	APIKey      string        `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=0"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=1,lte=65535"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath" validate:"required"`
}

// Sync is the typed scope and cadence of library synchronization. Libraries
// lists the Plex section titles to mirror; empty means every section.
type Sync struct {
	Interval         time.Duration `json:"interval" yaml:"interval" mapstructure:"interval" validate:"gte=0"`
	Libraries        []string      `json:"libraries" yaml:"libraries" mapstructure:"libraries"`
	DetailCacheTTL   time.Duration `json:"detailCacheTTL" yaml:"detailCacheTTL" mapstructure:"detailCacheTTL" validate:"gte=0"`
	FuzzyMaxDistance int           `json:"fuzzyMaxDistance" yaml:"fuzzyMaxDistance" mapstructure:"fuzzyMaxDistance" validate:"gte=0"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration and validates it
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, c.Validate()
}

// Validate checks the configuration against its struct tags
func (c Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
