package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"jobquest/internal/game"
	"jobquest/internal/headhunter"
	"jobquest/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobquest"

	defaultDatabase = "jobquest.db"
	defaultListen   = ":8080"
)

type Config struct {
	Search    *headhunter.SearchParams `mapstructure:"search"`
	UserAgent string                   `mapstructure:"user-agent"`
	TokenFile string                   `mapstructure:"token-file"`
	Database  string                   `mapstructure:"database"`
	Timezone  string                   `mapstructure:"timezone"`
	Listen    string                   `mapstructure:"listen"`
	Apply     *struct {
		Resume  string
		Message string
	} `mapstructure:"apply"`
	Game game.Config `mapstructure:"game"`
	AI   *AIConfig   `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile string        `mapstructure:"api-key-file"`
	Model      string        `mapstructure:"model"`
	LetterTTL  time.Duration `mapstructure:"letter-ttl"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobquest is a job-application assistant for hh.ru: it scores vacancies against your resume, generates cover letters and tracks your application streaks",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobquest.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("database", defaultDatabase)
	viper.SetDefault("listen", defaultListen)
}

func initConfig() {
	// Config needed only for the serve and score commands.
	if serveCmd.CalledAs() == "" && scoreCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// serve can run entirely on defaults, so a missing config file is fine;
	// an unparseable one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	if tokenFile == "" {
		return "", errors.New("headhunter token file is not configured")
	}

	return secrets.Load(secrets.Source{
		Name: "headhunter token",
		File: tokenFile,
	})
}

// loadLocation resolves the reference timezone for streak day-boundary math.
func loadLocation(config *Config) (*time.Location, error) {
	if config == nil || strings.TrimSpace(config.Timezone) == "" {
		return time.Local, nil
	}

	return time.LoadLocation(config.Timezone)
}
