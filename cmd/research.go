package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/company-researcher/internal/model"
)

var researchCompany string

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research a single company",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := runWithTimeout(cmd.Context())
		defer cancel()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		run, err := env.Pipeline.Run(ctx, researchCompany)
		if err != nil {
			return eris.Wrap(err, "research run")
		}

		zap.L().Info("research complete",
			zap.String("company", researchCompany),
			zap.String("run_id", run.ID),
			zap.String("status", string(run.Status)),
		)

		return printRun(run)
	},
}

func printRun(run *model.Run) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

func init() {
	researchCmd.Flags().StringVar(&researchCompany, "company", "", "company name (required)")
	_ = researchCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(researchCmd)
}
