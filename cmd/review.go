package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run the LLM qualitative review over triaged applicants",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()

		logger := newLogger()
		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		logger.Info("starting the review stage", zap.String("version", version))

		p := newPipeline(ctx, config, logger, true)
		if err := p.Review(ctx); err != nil {
			logger.Fatal("review stage failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
