package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	intlogger "jobquest/internal/logger"

	"jobquest/internal/cache"
	"jobquest/internal/game"
	"jobquest/internal/letters"
	"jobquest/internal/secrets"
	"jobquest/internal/server"
	"jobquest/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the jobquest HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8080)")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx := context.Background()

	logger, err := intlogger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	logger.Info("starting the jobquest api", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	loc, err := loadLocation(config)
	if err != nil {
		logger.Fatal("loading timezone", zap.Error(err), zap.String("timezone", config.Timezone))
	}

	database := config.Database
	if database == "" {
		database = viper.GetString("database")
	}

	db, err := store.Open(database, logger)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err), zap.String("database", database))
	}

	engine := game.New(db, logger, config.Game, loc)

	letterSvc, err := buildLetterService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building letter service", zap.Error(err))
	}

	listen := config.Listen
	if listen == "" {
		listen = viper.GetString("listen")
	}

	srv := server.New(db, engine, letterSvc, logger)
	if err := srv.Run(listen); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

// buildLetterService wires letter generation. Without an enabled AI section
// the service still works, serving the static fallback letter.
func buildLetterService(ctx context.Context, config *Config, logger *zap.Logger) (*letters.Service, error) {
	if config.AI == nil || !config.AI.Enabled {
		return letters.NewService(nil, cache.New(), logger, 0), nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	if config.AI.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := letters.NewGeminiGenerator(ctx, apiKey, config.AI.Gemini.Model)
	if err != nil {
		return nil, err
	}

	genLogger := intlogger.WithCommonFields(logger, "gemini", generator.Model())

	return letters.NewService(generator, cache.New(), genLogger, config.AI.Gemini.LetterTTL), nil
}
