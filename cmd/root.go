package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/company-researcher/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "company-researcher",
	Short: "Automated company research pipeline",
	Long:  "Researches a company via agent-driven web search, enriches the profile from LinkedIn, Trustpilot, SimilarWeb, and Google Maps, and synthesizes a markdown business report.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
