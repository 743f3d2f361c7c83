package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/convoy-rl/convoy/internal/tui"
	"github.com/convoy-rl/convoy/templates"
	"github.com/convoy-rl/convoy/util"
)

var (
	initYes  bool
	initName string
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Scaffold a new experiment",
	Long:  "Init writes a starter experiment.yaml and scenario directories. Without --yes it runs an interactive wizard.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "accept defaults without prompting")
}

type scenarioSeed struct {
	Name  string
	Steps int
}

type initData struct {
	Name            string
	Wrapper         string
	ActionType      int
	AgentNumber     int
	TrainerModule   string
	TrainerName     string
	Locators        []string
	EvaluationItems []string
	Scenarios       []scenarioSeed
}

const defaultScenarioSteps = 1500

func runInit(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		initName = args[0]
	}

	data := initData{
		Name:            "my-experiment",
		Wrapper:         "frame_stack",
		ActionType:      1,
		AgentNumber:     4,
		TrainerModule:   "commnet.trainer",
		TrainerName:     "CommNetTrainer",
		Locators:        []string{"open_agent:open_agent-v0"},
		EvaluationItems: []string{"diversity", "offroad", "collision", "kinematics"},
		Scenarios: []scenarioSeed{
			{Name: "cross", Steps: defaultScenarioSteps},
			{Name: "merge", Steps: defaultScenarioSteps},
		},
	}
	if initName != "" {
		data.Name = initName
	}

	if !initYes && tui.IsTTY() {
		answers, err := tui.RunInitWizard(tui.DetectTheme(themeOverride), appVersion)
		if err != nil {
			return err
		}
		if answers.Aborted {
			return fmt.Errorf("init aborted")
		}
		data.Name = answers.Name
		data.Wrapper = answers.Wrapper
		data.AgentNumber = answers.AgentNumber
		data.Locators = make([]string, answers.AgentNumber)
		for i := range data.Locators {
			data.Locators[i] = answers.Locator
		}
		data.EvaluationItems = answers.EvaluationItems
		data.Scenarios = data.Scenarios[:0]
		for _, name := range answers.Scenarios {
			data.Scenarios = append(data.Scenarios, scenarioSeed{Name: util.Slugify(name), Steps: defaultScenarioSteps})
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	projectDir := filepath.Join(wd, util.Slugify(data.Name))
	if _, err := os.Stat(projectDir); err == nil {
		return fmt.Errorf("directory %s already exists", projectDir)
	}
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return fmt.Errorf("creating project dir: %w", err)
	}

	if err := renderInitTemplate("experiment.yaml.tmpl", filepath.Join(projectDir, "experiment.yaml"), data); err != nil {
		return err
	}

	for _, sc := range data.Scenarios {
		dir := filepath.Join(projectDir, "scenarios", sc.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating scenario dir %s: %w", sc.Name, err)
		}
		if err := renderInitTemplate("scenario.yaml.tmpl", filepath.Join(dir, "scenario.yaml"), sc); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized experiment in %s\n", projectDir)
	fmt.Println("Next: edit experiment.yaml, then run `convoy validate`.")
	return nil
}

func renderInitTemplate(name, dest string, data any) error {
	raw, err := templates.GetInitTemplate(name)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(raw)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() { _ = f.Close() }()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}
