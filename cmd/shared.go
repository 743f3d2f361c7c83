package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveConfigPath makes the --config flag absolute against the working dir.
func resolveConfigPath() (string, error) {
	cfgPath := cfgFile
	if !filepath.IsAbs(cfgPath) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		cfgPath = filepath.Join(wd, cfgPath)
	}
	return cfgPath, nil
}
