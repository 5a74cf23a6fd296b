package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/talentops/shortlister/internal/airtable"
	"github.com/talentops/shortlister/internal/logger"
	"github.com/talentops/shortlister/internal/pipeline"
	"github.com/talentops/shortlister/internal/review"
	"github.com/talentops/shortlister/internal/review/gemini"
	"github.com/talentops/shortlister/internal/scoring"
	"github.com/talentops/shortlister/internal/secrets"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "shortlister"
)

type Config struct {
	Airtable *AirtableConfig `mapstructure:"airtable"`
	AI       *AIConfig       `mapstructure:"ai"`
	Scoring  *ScoringConfig  `mapstructure:"scoring"`
}

type AirtableConfig struct {
	BaseID     string          `mapstructure:"base-id"`
	APIKeyFile string          `mapstructure:"api-key-file"`
	Tables     pipeline.Tables `mapstructure:"tables"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ScoringConfig struct {
	Tier1Companies   []string           `mapstructure:"tier1-companies"`
	AllowedLocations []string           `mapstructure:"allowed-locations"`
	CurrencyRates    map[string]float64 `mapstructure:"currency-rates"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "shortlister maintains a recruiting pipeline: it compresses applicant records into profiles, scores them for shortlisting and runs LLM reviews",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("airtable.api-key-file", "AIRTABLE_API_KEY_FILE"); err != nil {
		log.Fatalf("binding AIRTABLE_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("airtable.base-id", "AIRTABLE_BASE_ID"); err != nil {
		log.Fatalf("binding AIRTABLE_BASE_ID environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is shortlister.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Secret file locations may come from a local .env, matching how the
	// store credentials are usually distributed.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
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

// newLogger builds the process logger from the persistent flags.
func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// newPipeline assembles the store client, scoring engine and optionally the
// reviewer. A missing required credential is fatal before any processing.
func newPipeline(ctx context.Context, config *Config, l *zap.Logger, withReviewer bool) *pipeline.Pipeline {
	if config == nil || config.Airtable == nil {
		l.Fatal("airtable configuration is required")
	}

	if err := config.Airtable.Tables.Validate(); err != nil {
		l.Fatal("validating table configuration", zap.Error(err))
	}

	if config.Airtable.BaseID == "" {
		l.Fatal("airtable base id is required",
			zap.String("hint", "set AIRTABLE_BASE_ID or the 'airtable.base-id' key in the configuration file"),
		)
	}

	token, err := secrets.Load(secrets.Source{
		Name: "airtable api key",
		File: config.Airtable.APIKeyFile,
	})
	if err != nil {
		l.Fatal("loading airtable api key",
			zap.Error(err),
			zap.String("hint", "set AIRTABLE_API_KEY_FILE or the 'airtable.api-key-file' key in the configuration file"),
		)
	}

	store := airtable.New(ctx, l, token, config.Airtable.BaseID)
	engine := scoring.NewEngine(buildRules(config.Scoring))

	var reviewer review.Reviewer
	if withReviewer {
		reviewer, err = newReviewer(ctx, config.AI, l)
		if err != nil {
			l.Fatal("building reviewer", zap.Error(err))
		}
	}

	return pipeline.New(store, config.Airtable.Tables, engine, reviewer, l)
}

func buildRules(cfg *ScoringConfig) scoring.Rules {
	rules := scoring.DefaultRules()
	if cfg == nil {
		return rules
	}

	if len(cfg.Tier1Companies) > 0 {
		rules.Tier1Companies = cfg.Tier1Companies
	}
	if len(cfg.AllowedLocations) > 0 {
		rules.AllowedLocations = cfg.AllowedLocations
	}
	if len(cfg.CurrencyRates) > 0 {
		rules.CurrencyRates = cfg.CurrencyRates
	}

	return rules
}

func newReviewer(ctx context.Context, cfg *AIConfig, l *zap.Logger) (review.Reviewer, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under the 'ai' section")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	reviewerLogger := l.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
		zap.Int("max_retries", cfg.Gemini.MaxRetries),
	)

	return gemini.NewReviewer(generator, cfg.Gemini.MaxRetries, cfg.Gemini.MaxLogLength, reviewerLogger), nil
}
