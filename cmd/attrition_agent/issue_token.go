package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alfandoo/Attrition-Predict/internal/config"
	"github.com/alfandoo/Attrition-Predict/internal/server"
)

func newIssueTokenCmd(_ *app) *cobra.Command {
	var (
		clientName string
		clientID   string
	)

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint a bearer token for an API client",
		Long:  "Mint a bearer token signed with JWT_SECRET. The token is valid for JWT_EXPIRATION_HOURS.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jwtConfig, err := config.NewJWTConfig()
			if errors.Is(err, config.ErrJWTDisabled) {
				return fmt.Errorf("JWT_SECRET must be set to issue tokens")
			}
			if err != nil {
				return err
			}

			id := uuid.New()
			if clientID != "" {
				if id, err = uuid.Parse(clientID); err != nil {
					return fmt.Errorf("invalid --client-id: %w", err)
				}
			}

			token, err := server.NewJWTService(jwtConfig).GenerateToken(id, clientName)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&clientName, "client-name", "", "Human-readable client name stored in the token")
	cmd.Flags().StringVar(&clientID, "client-id", "", "Client UUID (random if omitted)")
	_ = cmd.MarkFlagRequired("client-name")
	return cmd
}
