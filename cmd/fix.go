package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliaslint/aliaslint/internal/fixer"
	tt "github.com/aliaslint/aliaslint/internal/types"
	"github.com/aliaslint/aliaslint/lint"
)

var (
	dryRun              bool
	confidenceThreshold float64
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Rewrite relative imports to their aliased form",
	Long: `Rewrite flagged import specifiers in place. Only the text between the
quote characters changes; surrounding code, quote style, and formatting are
preserved. Use --dry-run to preview the rewrites without touching any file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// initialize the lint engine
		engine, err := lint.New(".", cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		runAutoFix(ctx, logger, engine, args, dryRun, confidenceThreshold)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show rewrites without applying them")
	fixCmd.Flags().Float64Var(&confidenceThreshold, "confidence", 0.75, "Confidence threshold for rewriting (0.0 to 1.0)")
}

func runAutoFix(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, dryRun bool, confidenceThreshold float64) {
	fix := fixer.New(dryRun, confidenceThreshold)

	rewritten := 0
	files := map[string]bool{}
	for _, path := range paths {
		issues, err := lint.ProcessPath(ctx, logger, engine, path, lint.ProcessFile)
		if err != nil {
			logger.Error("error processing path", zap.String("path", path), zap.Error(err))
			continue
		}

		if err := fix.Fix(issues); err != nil {
			logger.Error("error fixing issues", zap.String("path", path), zap.Error(err))
			continue
		}
		for _, issue := range issues {
			if fixable(issue, confidenceThreshold) {
				rewritten++
				files[issue.Filename] = true
			}
		}
	}

	switch {
	case rewritten == 0:
		fmt.Println("no imports to rewrite")
	case dryRun:
		fmt.Printf("%d import(s) in %d file(s) would be rewritten\n", rewritten, len(files))
	default:
		fmt.Printf("rewrote %d import(s) in %d file(s)\n", rewritten, len(files))
	}
}

func fixable(issue tt.Issue, confidenceThreshold float64) bool {
	return issue.Fix != nil && issue.Confidence >= confidenceThreshold
}
