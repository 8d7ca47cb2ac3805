package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/spigell/jobcoach/internal/logger"
	"github.com/spigell/jobcoach/internal/questions"
)

const (
	app       = "jobcoach"
	envPrefix = "JOBCOACH"
)

type Config struct {
	BankFile  string           `mapstructure:"bank-file"`
	Interview *InterviewConfig `mapstructure:"interview" validate:"required"`
	CV        *CVConfig        `mapstructure:"cv" validate:"required"`
	Speech    *SpeechConfig    `mapstructure:"speech" validate:"required"`
	Share     *ShareConfig     `mapstructure:"share"`
	Log       *LogConfig       `mapstructure:"log"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type InterviewConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=beginner intermediate advanced"`
	Technology string `mapstructure:"technology" validate:"technology"`
	AutoSpeak  bool   `mapstructure:"auto-speak"`
	Review     bool   `mapstructure:"review"`
}

type CVConfig struct {
	Photo     string `mapstructure:"photo"`
	OutputDir string `mapstructure:"output-dir"`
	NoPreview bool   `mapstructure:"no-preview"`
}

type SpeechConfig struct {
	Locale      string   `mapstructure:"locale" validate:"required,locale"`
	Rate        float64  `mapstructure:"rate" validate:"gte=0.1,lte=10"`
	Synthesizer []string `mapstructure:"synthesizer"`
	Recognizer  []string `mapstructure:"recognizer"`
}

type ShareConfig struct {
	Command []string `mapstructure:"command"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max-size-mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max-backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max-age-days" validate:"gte=0"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini" validate:"required_if=Enabled true"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0,lte=10"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobcoach is a terminal coach: mock technical interviews and a CV wizard with PDF export",
	}
)

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobcoach.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interview.level", string(questions.LevelBeginner))
	v.SetDefault("interview.technology", string(questions.TechnologyAll))
	v.SetDefault("cv.output-dir", ".")
	v.SetDefault("speech.locale", "en-US")
	v.SetDefault("speech.rate", 1.0)
	v.SetDefault("speech.synthesizer", []string{"espeak-ng", "-v", "{locale}", "{text}"})
	v.SetDefault("speech.recognizer", []string{})
	v.SetDefault("share.command", []string{})
	v.SetDefault("log.max-size-mb", 10)
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("log.max-age-days", 28)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.max-log-length", 200)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func initConfig() {
	// A missing .env is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless set explicitly; a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := newValidator().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		_, err := language.Parse(fl.Field().String())
		return err == nil
	})

	validate.RegisterValidation("technology", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		if value == "" || strings.EqualFold(value, string(questions.TechnologyAll)) {
			return true
		}
		for _, tech := range questions.KnownTechnologies {
			if strings.EqualFold(value, string(tech)) {
				return true
			}
		}
		return false
	})

	return validate
}

// setup resolves the config and a logger tagged with a fresh session id.
func setup(flowName string) (*Config, *zap.Logger) {
	config, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %s", err)
	}

	opts := logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	}
	if config.Log != nil {
		opts.File = config.Log.File
		opts.MaxSizeMB = config.Log.MaxSizeMB
		opts.MaxBackups = config.Log.MaxBackups
		opts.MaxAgeDays = config.Log.MaxAgeDays
	}

	base, err := logger.NewWithOptions(opts)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	sessionLogger := logger.WithSession(base, uuid.NewString(), flowName)
	sessionLogger.Debug("starting "+app, zap.String("version", version))

	return config, sessionLogger
}

// loadBank returns the interview bank from bank-file, or the embedded one.
func loadBank(config *Config) (*questions.Bank, error) {
	if config.BankFile == "" {
		return questions.Default()
	}

	bank, err := questions.LoadFile(config.BankFile)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", config.BankFile, err)
	}
	return bank, nil
}

// styled reports whether stdout is a terminal that accepts colours.
func styled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
