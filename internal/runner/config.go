package runner

import (
	"os"
	"path/filepath"

	"github.com/jasona7/typosquat"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
)

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

// defaultConfigPath is where the typosquat config lives when -tc is not given
func defaultConfigPath() string {
	return filepath.Join(getUserHomeDir(), ".config", "typosquat", "config.yaml")
}

// loadConfig reads the typosquat config at path. When path is empty the
// default location is used and a sample with default values is written
// there on first run.
func loadConfig(path string) (*typosquat.Config, error) {
	if path != "" {
		return typosquat.NewConfig(path)
	}
	path = defaultConfigPath()
	if fileutil.FileExists(path) {
		cfg, err := typosquat.NewConfig(path)
		if err == nil {
			return cfg, nil
		}
		gologger.Warning().Msgf("failed to parse %v, using defaults: %v", path, err)
	} else {
		if err := fileutil.CreateFolder(filepath.Dir(path)); err == nil {
			if err := typosquat.GenerateSample(path); err != nil {
				gologger.Error().Msgf("failed to save default config to %v got: %v", path, err)
			}
		}
	}
	cfg := typosquat.DefaultConfig()
	return &cfg, nil
}
