package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/piwi3910/FrameFit/internal/model"
)

// Assembly is a saved part collection with a little metadata. Parts are
// stored exactly as the editor holds them; nothing derived is persisted.
type Assembly struct {
	Name     string       `json:"name"`
	Created  time.Time    `json:"created"`
	Modified time.Time    `json:"modified"`
	Parts    []model.Part `json:"parts"`
}

// NewAssembly creates an empty named assembly.
func NewAssembly(name string) Assembly {
	now := time.Now()
	return Assembly{Name: name, Created: now, Modified: now, Parts: []model.Part{}}
}

// SaveAssembly writes an assembly to the given path as indented JSON,
// creating parent directories as needed. Modified is bumped on every save.
func SaveAssembly(path string, a Assembly) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating assembly directory for %s", path)
	}
	a.Modified = time.Now()
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding assembly")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing assembly file %s", path)
	}
	return nil
}

// LoadAssembly reads an assembly from the given path.
func LoadAssembly(path string) (Assembly, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Assembly{}, errors.Wrapf(err, "reading assembly file %s", path)
	}
	var a Assembly
	if err := json.Unmarshal(data, &a); err != nil {
		return Assembly{}, errors.Wrapf(err, "parsing assembly file %s", path)
	}
	if a.Parts == nil {
		a.Parts = []model.Part{}
	}
	return a, nil
}
