package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentops/shortlister/internal/pipeline"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Score compressed profiles and drive the shortlist status state machine",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()

		logger := newLogger()
		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		logger.Info("starting the shortlist stage", zap.String("version", version))

		var confirm pipeline.ConfirmFunc
		if cmd.Flag("auto-aprove").Value.String() == "false" {
			confirm = promptConfirm
		}

		p := newPipeline(ctx, config, logger, false)

		summary, err := p.Shortlist(ctx, confirm)
		if errors.Is(err, pipeline.ErrDeclined) {
			return
		}
		if err != nil {
			logger.Fatal("shortlist stage failed", zap.Error(err))
		}

		logger.Info("run summary",
			zap.Int("scored", summary.Scored),
			zap.Int("shortlisted", summary.Shortlisted),
			zap.Int("rejected", summary.Rejected),
			zap.Int("invalid", summary.Invalid),
			zap.Int("skipped", summary.Skipped),
		)
	},
}

func init() {
	rootCmd.AddCommand(shortlistCmd)

	shortlistCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation before committing status updates and leads")
}

func promptConfirm(leads, statusUpdates int) bool {
	prompt := promptui.Select{
		Label: fmt.Sprintf("Commit %d new leads and %d status updates?", leads, statusUpdates),
		Items: []string{PromptYes, PromptNo},
	}

	_, action, err := prompt.Run()
	if err != nil {
		return false
	}

	return action == PromptYes
}
