package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/charleschoi123/bazi-destiny/bazi"
	"github.com/charleschoi123/bazi-destiny/config"
	"github.com/charleschoi123/bazi-destiny/geocode"
	"github.com/charleschoi123/bazi-destiny/handlers"
	"github.com/charleschoi123/bazi-destiny/interpret"
	"github.com/charleschoi123/bazi-destiny/store"
)

// serveCmd runs the HTTP API until SIGINT or SIGTERM.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chart and interpretation API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

// newCalculator builds the chart calculator from the chart settings.
func newCalculator(c *config.Config) (*bazi.Calculator, error) {
	precision, err := c.Precision()
	if err != nil {
		return nil, err
	}
	zi, err := c.ZiHour()
	if err != nil {
		return nil, err
	}
	return bazi.New(
		bazi.WithPrecision(precision),
		bazi.WithZiHour(zi),
		bazi.WithLuckCycles(c.Chart.LuckCycles),
	), nil
}

// newGeocoder returns nil when geocoding is disabled.
func newGeocoder(c *config.Config, cache geocode.Cache, log *zap.Logger) *geocode.Service {
	if !c.Geocode.Enabled {
		return nil
	}
	client := geocode.NewClient(
		geocode.WithBaseURL(c.Geocode.BaseURL),
		geocode.WithUserAgent(c.Geocode.UserAgent),
	)
	return geocode.NewService(client, cache, log)
}

func serve(ctx context.Context, c *config.Config, log *zap.Logger) error {
	s, err := store.New(c.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	calc, err := newCalculator(c)
	if err != nil {
		return err
	}
	llm, err := interpret.New(ctx, interpret.Settings{
		Provider:     c.LLM.Provider,
		APIKey:       c.LLM.APIKey,
		BaseURL:      c.LLM.BaseURL,
		Model:        c.LLM.Model,
		Label:        c.LLM.Label,
		Temperature:  c.LLM.Temperature,
		Timeout:      c.GetLLMTimeout(),
		GeminiAPIKey: c.LLM.GeminiAPIKey,
		GeminiModel:  c.LLM.GeminiModel,
	})
	if err != nil {
		return fmt.Errorf("failed to configure language model: %w", err)
	}

	h := handlers.New(handlers.Deps{
		Calculator:  calc,
		Geocoder:    newGeocoder(c, s, log),
		Cache:       s,
		LLM:         llm,
		Logger:      log,
		AllowOrigin: c.Server.AllowOrigin,
	})
	srv := &http.Server{
		Addr:    ":" + c.Server.Port,
		Handler: h.Routes(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("db", c.Store.Path),
			zap.String("llm", llm.Name()),
			zap.Bool("geocode", c.Geocode.Enabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.GetShutdownTimeout())
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
