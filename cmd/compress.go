package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Join the source tables into a compressed profile per applicant",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()

		logger := newLogger()
		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		logger.Info("starting the compress stage", zap.String("version", version))

		p := newPipeline(ctx, config, logger, false)
		if err := p.Compress(ctx); err != nil {
			logger.Fatal("compress stage failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(compressCmd)
}
