package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/convoy-rl/convoy/pipeline"
	"github.com/convoy-rl/convoy/prepare"
)

var exportOutputDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the trainer hand-off artifacts",
	Long:  "Export validates the experiment and writes the trainer envelope, scenario manifest, and env file to the output directory.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputDir, "output-dir", "o", ".convoy-run", "output directory for run artifacts")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return err
	}
	workDir := filepath.Dir(cfgPath)

	outDir := exportOutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	rc := pipeline.NewRunContext(pipeline.RunOptions{
		WorkDir:     workDir,
		OutputDir:   outDir,
		ConfigPath:  cfgPath,
		ToolVersion: appVersion,
	})
	rc.Verbose = verbose

	p := pipeline.New(
		&prepare.ValidateStage{},
		&prepare.EnvelopeStage{},
		&prepare.ManifestStage{},
		&prepare.EnvFileStage{},
	)
	if err := p.Run(cmd.Context(), rc); err != nil {
		return err
	}
	for _, w := range rc.Warnings {
		fmt.Printf("WARNING: %s\n", w)
	}
	rels := make([]string, 0, len(rc.GeneratedFiles))
	for rel := range rc.GeneratedFiles {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		fmt.Printf("wrote %s\n", filepath.Join(outDir, rel))
	}
	return nil
}
