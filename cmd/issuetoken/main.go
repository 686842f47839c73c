// Command issuetoken signs caller tokens for the recall API with the same
// key and issuer the server reads from the environment.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	jwttoken "recallguard/internal/jwt_token"
	"recallguard/internal/platform/config"
	id "recallguard/pkg/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "issuetoken <principal>",
		Short: "Issue a bearer token for a recall API caller",
		Long: `Issue an HS256 bearer token whose subject is the given principal.

JWT_SIGNING_KEY and JWT_ISSUER are read from the environment so the token
validates against a server started with the same settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := id.ParsePrincipal(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.FromEnv()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			token, err := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer).GenerateCallerToken(caller, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
