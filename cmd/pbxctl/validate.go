package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pbxkit/internal/logger"
	"github.com/joshuapare/pbxkit/pbx/verify"
	"github.com/joshuapare/pbxkit/pkg/pbxproj"
)

var validateLimits string

func init() {
	cmd := newValidateCmd()
	cmd.Flags().StringVar(&validateLimits, "limits", "", "Limits preset to use (default, strict, relaxed); overrides the config file")
	rootCmd.AddCommand(cmd)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project>",
		Short: "Check references and cycles",
		Long: `The validate command loads a project without stopping at the first
problem and reports every dangling reference, every cycle in the group
tree or the target dependency graph, and every object that nothing
reachable from the root project refers to. Orphans are reported but do
not make the project invalid.

Example:
  pbxctl validate App.xcodeproj
  pbxctl validate App.xcodeproj --limits strict --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
}

func runValidate(args []string) error {
	path := projectPath(args[0])
	printVerbose("Validating project: %s\n", path)

	preset := cfg.Limits
	if validateLimits != "" {
		preset = validateLimits
	}
	limits, err := limitsPreset(preset)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read project %s: %w", path, err)
	}
	g, err := pbxproj.Parse(src, pbxproj.Options{Limits: &limits, SkipValidation: true, Logger: logger.L})
	if err != nil {
		if jsonOut {
			_ = printJSON(map[string]interface{}{"file": path, "valid": false, "error": err.Error()})
		}
		return err
	}
	report := verify.Check(g)

	result := map[string]interface{}{
		"file":       path,
		"limits":     preset,
		"valid":      report.OK(),
		"references": errorStrings(report.References),
		"cycles":     errorStrings(report.Cycles),
		"orphans":    report.Orphans,
	}
	if jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printInfo("Validating %s...\n\n", path)
		printInfo("Objects: %d\n", g.Len())
		for _, e := range report.References {
			printInfo("  ✗ %v\n", e)
		}
		for _, e := range report.Cycles {
			printInfo("  ✗ %v\n", e)
		}
		for _, id := range report.Orphans {
			printInfo("  ! orphan %s\n", id)
		}
	}

	if !report.OK() {
		if !jsonOut {
			printInfo("\nResult: ✗ INVALID\n")
		}
		return errors.New("project is invalid")
	}
	if !jsonOut {
		printInfo("\nResult: ✓ VALID\n")
	}
	return nil
}

func errorStrings[E error](errs []E) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
