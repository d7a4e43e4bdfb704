package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/air-gases/defibrillator"
	"github.com/air-gases/limiter"
	"github.com/air-gases/logger"
	"github.com/air-gases/redirector"
	"github.com/aofei/air"
	"github.com/rs/zerolog/log"

	"github.com/air-examples/composer/catalog"
	"github.com/air-examples/composer/cfg"
	"github.com/air-examples/composer/form"
	"github.com/air-examples/composer/handler"
	"github.com/air-examples/composer/markdown"
	"github.com/air-examples/composer/submit"
)

func main() {
	cf := flag.String("config", "config.toml", "configuration file")
	flag.Parse()

	a := air.Default
	if err := cfg.Load(*cf, a); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	renderer, err := markdown.New(cfg.Markdown)
	if err != nil {
		log.Fatal().Err(err).
			Str("app_name", a.AppName).
			Msg("failed to build markdown renderer")
	}

	catalogSource, err := catalog.NewSource(cfg.Catalog.File)
	if err != nil {
		log.Fatal().Err(err).
			Str("app_name", a.AppName).
			Msg("failed to load catalog")
	} else if err := catalogSource.Watch(); err != nil {
		log.Fatal().Err(err).
			Str("app_name", a.AppName).
			Msg("failed to watch catalog file")
	}

	httpClient := &http.Client{}
	if s := cfg.Composer.RequestTimeoutSeconds; s > 0 {
		httpClient.Timeout = time.Duration(s) * time.Second
	}

	limits := form.Limits{
		Title:       cfg.Composer.TitleLimit,
		Description: cfg.Composer.DescriptionLimit,
	}

	handler.Register(a, &handler.Composer{
		Store: form.NewStore(
			limits,
			time.Duration(cfg.Composer.SessionIdleMinutes)*time.Minute,
			cfg.Composer.MaxSessions,
		),
		Catalog:  catalogSource,
		Renderer: renderer,
		Client: &submit.Client{
			Endpoint:      cfg.Composer.APIEndpoint,
			HTTPClient:    httpClient,
			DefaultAuthor: cfg.Composer.DefaultAuthor,
			Role:          cfg.Composer.AuthorRole,
		},
		Style: cfg.Markdown.Style,
	})

	a.Pregases = []air.Gas{
		redirector.WWW2NonWWWGas(redirector.WWW2NonWWWGasConfig{}),
	}
	a.Gases = []air.Gas{
		logger.Gas(logger.GasConfig{}),
		defibrillator.Gas(defibrillator.GasConfig{}),
		limiter.BodySizeGas(limiter.BodySizeGasConfig{
			MaxBytes: 1 << 20,
		}),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := a.Serve(); err != nil {
			log.Error().Err(err).
				Str("app_name", a.AppName).
				Msg("server error")
		}
	}()

	<-shutdownChan

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	catalogSource.Close()
	a.Shutdown(ctx)
}
