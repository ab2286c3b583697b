// Command admintoken prints a signed admin token for local development.
//
//	go run ./cmd/admintoken --config=./config/local.yaml --subject=me@example.com
package main

import (
	"fmt"
	"os"
	"time"

	"spotguide/internal/config"
	"spotguide/internal/lib/jwt"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	subject string
	ttl     time.Duration

	rootCmd = &cobra.Command{
		Use:   "admintoken",
		Short: "Print a signed admin token",
		Long: `admintoken signs a token carrying the configured admin role with the
secret from the service config. Send it as "Authorization: Bearer <token>".`,
		Args: cobra.NoArgs,
		RunE: run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "path to config file (defaults to CONFIG_PATH)")
	rootCmd.Flags().StringVar(&subject, "subject", "local-admin", "token subject")
	rootCmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
}

func main() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	path := config.ResolvePath(cfgFile)
	if path == "" {
		return fmt.Errorf("config path is empty")
	}

	cfg, err := config.LoadPath(path)
	if err != nil {
		return err
	}

	token, err := jwt.NewToken(subject, cfg.Auth.AdminRole, []byte(cfg.Auth.JWTSecret), ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
