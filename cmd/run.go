package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/convoy-rl/convoy/runtime"
)

var (
	runTrainer string
	runDir     string
	runEnvFile string
	runWatch   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate the experiment and launch the external trainer",
	Long:  "Run prepares a run directory and supervises the trainer process, handing it the validated experiment envelope via CONVOY_* environment variables.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runTrainer, "trainer", "", "trainer entrypoint command (required)")
	runCmd.Flags().StringVar(&runDir, "run-dir", ".convoy-run", "run directory for generated artifacts")
	runCmd.Flags().StringVar(&runEnvFile, "env", ".env", "path to .env file")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "revalidate and restart the trainer on experiment changes")
	_ = runCmd.MarkFlagRequired("trainer")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	workDir := filepath.Dir(cfgPath)

	envPath := runEnvFile
	if !filepath.IsAbs(envPath) {
		envPath = filepath.Join(workDir, envPath)
	}
	outDir := runDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	runner, err := runtime.NewRunner(runtime.RunnerConfig{
		ConfigPath:  cfgPath,
		WorkDir:     workDir,
		RunDir:      outDir,
		Trainer:     runTrainer,
		EnvFilePath: envPath,
		ToolVersion: appVersion,
		Watch:       runWatch,
		Verbose:     verbose,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runner.Run(ctx)
}
