package project

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/piwi3910/FrameFit/internal/model"
)

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.framefit/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".framefit")
}

// DefaultSettingsPath returns the default path for the analysis settings file.
func DefaultSettingsPath() string {
	return filepath.Join(DefaultConfigDir(), "settings.toml")
}

// SaveSettings persists analysis settings to the given path as TOML.
// It creates any missing parent directories automatically.
func SaveSettings(path string, s model.AnalysisSettings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating settings directory %s", dir)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating settings file %s", path)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return errors.Wrap(err, "encoding settings")
	}
	return nil
}

// LoadSettings reads analysis settings from the given path.
// If the file does not exist, it returns DefaultSettings with no error, so a
// fresh install works without any configuration step.
func LoadSettings(path string) (model.AnalysisSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultSettings(), nil
		}
		return model.AnalysisSettings{}, errors.Wrapf(err, "reading settings file %s", path)
	}
	s := model.DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return model.AnalysisSettings{}, errors.Wrapf(err, "parsing settings file %s", path)
	}
	return s, nil
}
