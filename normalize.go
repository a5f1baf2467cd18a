package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tournevent/otpravka/internal/cleaner"
	"go.uber.org/zap"
)

var normalizeCmd = &cobra.Command{
	Use:       "normalize <address|fio|phone> <text>...",
	Short:     "Normalize addresses, full names or phone numbers",
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: []string{string(cleaner.KindAddress), string(cleaner.KindFIO), string(cleaner.KindPhone)},
	RunE:      runNormalize,
}

func init() {
	normalizeCmd.Flags().Int("parallel", 4, "maximum concurrent requests")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	kind, err := cleaner.ParseKind(args[0])
	if err != nil {
		return err
	}
	parallel, _ := cmd.Flags().GetInt("parallel")

	results, err := cleaner.New(current.client, parallel).Clean(cmd.Context(), kind, args[1:])
	if err != nil {
		return err
	}
	if err := printJSON(results); err != nil {
		return err
	}

	if failed := cleaner.Failed(results); failed > 0 {
		current.logger.Warn("Some inputs could not be normalized",
			zap.String("kind", string(kind)),
			zap.Int("failed", failed),
			zap.Int("total", len(results)),
		)
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}
