package cfg

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/aofei/air"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"

	"github.com/air-examples/composer/form"
	"github.com/air-examples/composer/markdown"
	"github.com/air-examples/composer/submit"
)

var (
	Zerolog struct {
		LoggerLevel string `mapstructure:"logger_level"`
	}

	Composer struct {
		APIEndpoint           string `mapstructure:"api_endpoint"`
		DefaultAuthor         string `mapstructure:"default_author"`
		AuthorRole            string `mapstructure:"author_role"`
		TitleLimit            int    `mapstructure:"title_limit"`
		DescriptionLimit      int    `mapstructure:"description_limit"`
		RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
		SessionIdleMinutes    int    `mapstructure:"session_idle_minutes"`
		MaxSessions           int    `mapstructure:"max_sessions"`
	}

	Markdown markdown.Config

	Catalog struct {
		File string `mapstructure:"file"`
	}
)

func init() {
	setDefaults()
}

func setDefaults() {
	Zerolog.LoggerLevel = "info"

	Composer.APIEndpoint = submit.DefaultEndpoint
	Composer.DefaultAuthor = submit.DefaultAuthor
	Composer.AuthorRole = submit.DefaultRole
	Composer.TitleLimit = form.DefaultLimits.Title
	Composer.DescriptionLimit = form.DefaultLimits.Description
	Composer.RequestTimeoutSeconds = 0
	Composer.SessionIdleMinutes = 120
	Composer.MaxSessions = form.DefaultMaxSessions

	Markdown = markdown.Config{
		Engine: markdown.EngineBlackfriday,
		Style:  "github",
	}

	Catalog.File = ""
}

// Load reads the configuration file into a and the package variables. A
// missing file leaves the defaults in place. Values from a .env file and the
// environment win over the file.
func Load(filename string, a *air.Air) error {
	setDefaults()

	m := map[string]interface{}{}
	if _, err := toml.DecodeFile(filename, &m); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to decode configuration file: %w", err)
	}

	if err := mapstructure.Decode(m["air"], a); err != nil {
		return fmt.Errorf("failed to decode air configuration items: %w", err)
	}

	if err := mapstructure.Decode(m["zerolog"], &Zerolog); err != nil {
		return fmt.Errorf("failed to decode zerolog configuration items: %w", err)
	}

	if err := mapstructure.Decode(m["composer"], &Composer); err != nil {
		return fmt.Errorf("failed to decode composer configuration items: %w", err)
	}

	if err := mapstructure.Decode(m["markdown"], &Markdown); err != nil {
		return fmt.Errorf("failed to decode markdown configuration items: %w", err)
	}

	if err := mapstructure.Decode(m["catalog"], &Catalog); err != nil {
		return fmt.Errorf("failed to decode catalog configuration items: %w", err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	if v := os.Getenv("COMPOSER_API_ENDPOINT"); v != "" {
		Composer.APIEndpoint = v
	}

	if v := os.Getenv("COMPOSER_DEFAULT_AUTHOR"); v != "" {
		Composer.DefaultAuthor = v
	}

	setLoggerLevel(Zerolog.LoggerLevel, a.DebugMode)

	return nil
}

func setLoggerLevel(level string, debug bool) {
	zerolog.TimeFieldFormat = ""
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "no":
		zerolog.SetGlobalLevel(zerolog.NoLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
