package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var decompressCmd = &cobra.Command{
	Use:   "decompress",
	Short: "Reconstruct the normalized table records from stored profiles",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()

		logger := newLogger()
		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		logger.Info("starting the decompress stage", zap.String("version", version))

		p := newPipeline(ctx, config, logger, false)
		if err := p.Decompress(ctx); err != nil {
			logger.Fatal("decompress stage failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(decompressCmd)
}
