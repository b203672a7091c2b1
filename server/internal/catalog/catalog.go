package catalog

import (
	"fmt"
	"log/slog"

	"github.com/galcheat/galcheat/pkg/survey"
)

// Sources names where survey tables are read from.
type Sources struct {
	// Builtin includes the tables embedded in the binary.
	Builtin bool

	// Dir is an optional directory of YAML survey tables. A table in Dir
	// replaces a built-in survey of the same name.
	Dir string
}

// Load reads every configured source and returns the merged survey set,
// ordered built-ins first, then Dir tables by file name.
func (src Sources) Load() ([]*survey.Survey, error) {
	var out []*survey.Survey
	index := make(map[string]int)

	if src.Builtin {
		builtin, err := survey.Builtin()
		if err != nil {
			return nil, err
		}
		for _, s := range builtin {
			index[s.Name] = len(out)
			out = append(out, s)
		}
	}

	if src.Dir != "" {
		extra, err := survey.LoadDir(src.Dir)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", src.Dir, err)
		}
		for _, s := range extra {
			if i, ok := index[s.Name]; ok {
				slog.Debug("catalog: table overrides builtin survey", "survey", s.Name, "dir", src.Dir)
				out[i] = s
				continue
			}
			index[s.Name] = len(out)
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("catalog: no surveys loaded")
	}
	return out, nil
}

// Populate loads src into reg, replacing its previous contents.
func Populate(reg *survey.Registry, src Sources) error {
	surveys, err := src.Load()
	if err != nil {
		return err
	}
	return reg.Replace(surveys)
}
