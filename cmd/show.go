package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/convoy-rl/convoy/config"
	"github.com/convoy-rl/convoy/internal/tui"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the experiment document",
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}

	desc, result, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading experiment: %w", err)
	}
	if !result.IsValid() {
		styles := tui.NewStyleSet(tui.DetectTheme(themeOverride))
		fmt.Fprint(os.Stderr, tui.RenderResult(styles, result, tui.IsTTY()))
		return fmt.Errorf("experiment is not valid")
	}

	styles := tui.NewStyleSet(tui.DetectTheme(themeOverride))
	line := func(label, value string) {
		fmt.Printf("%s %s\n", styles.Label.Render(label+":"), styles.Value.Render(value))
	}

	fmt.Println(styles.Title.Render("Experiment"))
	line("wrapper", desc.Agent.Wrapper)
	line("action space", desc.Agent.ActionType.String())
	line("framework", string(desc.Policy.Framework))
	line("trainer", desc.Policy.Trainer.Module+"."+desc.Policy.Trainer.Name)
	line("agents", fmt.Sprintf("%d enabled (model expects %d)", desc.TotalAgents(), desc.Policy.Model.AgentNumber))
	line("gamma", fmt.Sprintf("%g", desc.Run.Config.Gamma))
	line("horizon", fmt.Sprintf("%d", desc.Run.Config.Horizon))

	fmt.Println()
	fmt.Println(styles.Title.Render("Agent groups"))
	groupNames := make([]string, 0, len(desc.AgentList))
	for name := range desc.AgentList {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)
	for _, name := range groupNames {
		fmt.Printf("  %s\n", styles.Accent.Render(name))
		for _, entry := range desc.AgentList[name] {
			status := ""
			if !entry.IsEnabled() {
				status = styles.Dim.Render(" (disabled)")
			}
			fmt.Printf("    %s%s\n", styles.Value.Render(entry.DisplayName()), status)
		}
	}

	fmt.Println()
	fmt.Println(styles.Title.Render("Scenarios"))
	scenarioNames := make([]string, 0, len(desc.Scenarios))
	for name := range desc.Scenarios {
		scenarioNames = append(scenarioNames, name)
	}
	sort.Strings(scenarioNames)
	for _, name := range scenarioNames {
		s := desc.Scenarios[name]
		status := ""
		if !s.IsEnabled() {
			status = styles.Dim.Render(" (disabled)")
		}
		fmt.Printf("  %s  %s%s\n", styles.Accent.Render(name),
			styles.Value.Render(fmt.Sprintf("%d steps", s.StepNum)), status)
	}
	fmt.Printf("  %s\n", styles.Label.Render(fmt.Sprintf("total budget: %d steps", desc.TotalStepBudget())))

	return nil
}
