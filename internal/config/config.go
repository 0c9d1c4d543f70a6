// Package config loads CLI defaults from an .inkwell.toml file, following
// the teacher's preference for a direct dependency (BurntSushi/toml) over a
// hand-rolled parser for a format this simple.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// File is the decoded shape of .inkwell.toml. Flags always override these
// defaults; File only ever supplies a value when the corresponding flag
// was not given.
type File struct {
	Parser     string                    `toml:"parser"`
	Renderer   string                    `toml:"renderer"`
	Extensions []string                  `toml:"extensions"`
	Options    map[string]map[string]any `toml:"options"`
}

// Load looks for .inkwell.toml first in dir, then in the user's home
// directory, and decodes the first one found. It returns a zero File, no
// error, if neither exists.
func Load(dir string) (File, error) {
	for _, candidate := range searchPaths(dir) {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return File{}, err
		}
		var f File
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, err
		}
		return f, nil
	}
	return File{}, nil
}

func searchPaths(dir string) []string {
	paths := []string{filepath.Join(dir, ".inkwell.toml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".inkwell.toml"))
	}
	return paths
}
