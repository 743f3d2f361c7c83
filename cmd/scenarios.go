package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/convoy-rl/convoy/config"
	"github.com/convoy-rl/convoy/internal/tui"
)

var scenariosCheck bool

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenarios and step budgets of the experiment",
	RunE:  runScenarios,
}

func init() {
	scenariosCmd.Flags().BoolVar(&scenariosCheck, "check", false, "verify scenario directories exist under scenarios_root")
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	desc, result, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading experiment: %w", err)
	}
	styles := tui.NewStyleSet(tui.DetectTheme(themeOverride))
	if !result.IsValid() {
		fmt.Fprint(os.Stderr, tui.RenderResult(styles, result, tui.IsTTY()))
		return fmt.Errorf("experiment is not valid")
	}

	names := make([]string, 0, len(desc.Scenarios))
	for name := range desc.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	workDir := filepath.Dir(cfgPath)
	missing := 0
	for _, name := range names {
		s := desc.Scenarios[name]
		status := ""
		if !s.IsEnabled() {
			status = styles.Dim.Render(" disabled")
		}
		if scenariosCheck && s.IsEnabled() {
			dir := filepath.Join(workDir, desc.ScenariosRoot, name)
			if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
				status += styles.Error.Render(" missing directory")
				missing++
			}
		}
		fmt.Printf("%-24s %8d steps%s\n", name, s.StepNum, status)
	}
	fmt.Printf("%-24s %8d steps\n", "total (enabled)", desc.TotalStepBudget())

	if missing > 0 {
		return fmt.Errorf("%d scenario directories missing under %s", missing, desc.ScenariosRoot)
	}
	return nil
}
