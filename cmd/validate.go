package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/convoy-rl/convoy/config"
	"github.com/convoy-rl/convoy/internal/tui"
)

var strict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the experiment document",
	Long:  "Validate parses the experiment file and reports every problem found in one pass.",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	_, result, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading experiment: %w", err)
	}

	styled := tui.IsTTY()
	styles := tui.NewStyleSet(tui.DetectTheme(themeOverride))
	fmt.Fprint(os.Stderr, tui.RenderResult(styles, result, styled))

	if strict && len(result.Warnings) > 0 {
		return fmt.Errorf("validation failed: %d warning(s) treated as errors in strict mode", len(result.Warnings))
	}
	if !result.IsValid() {
		return fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
	}
	return nil
}
