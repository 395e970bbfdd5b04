package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alfandoo/Attrition-Predict/internal/config"
	"github.com/alfandoo/Attrition-Predict/internal/history"
	"github.com/alfandoo/Attrition-Predict/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the prediction API server",
		Long: "Start an HTTP server exposing POST /predict_api, POST /predict_csv, GET /predictions " +
			"and GET /health. Port precedence: --port, PORT, config file, 7860.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}
			srv, cleanup, err := a.newServer(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "Port to listen on")
	return cmd
}

// newServer wires the model, history store and auth into a server. cleanup closes the
// history store.
func (a *app) newServer(ctx context.Context) (*server.Server, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, _, err := a.loadService()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var store history.Store
	if a.cfg.HistoryEnabled() {
		store, err = history.Open(ctx, a.cfg.History.Driver, a.cfg.History.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open prediction history: %w", err)
		}
		cleanup = func() { _ = store.Close() }
		a.logger.Info("prediction history enabled", zap.String("driver", a.cfg.History.Driver))
	}

	var jwtService *server.JWTService
	jwtConfig, err := config.NewJWTConfig()
	switch {
	case errors.Is(err, config.ErrJWTDisabled):
		a.logger.Warn("JWT_SECRET not set, prediction routes are unauthenticated")
	case err != nil:
		cleanup()
		return nil, nil, fmt.Errorf("failed to create JWT config: %w", err)
	default:
		jwtService = server.NewJWTService(jwtConfig)
	}

	srv, err := server.New(server.Config{
		Port:           a.cfg.Port,
		MaxUploadBytes: a.cfg.MaxUploadBytes,
		Service:        svc,
		History:        store,
		JWT:            jwtService,
		Logger:         a.logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, cleanup, nil
}
