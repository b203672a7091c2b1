package survey

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed data/*.yaml
var builtinFS embed.FS

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Builtin parses the survey tables embedded in the binary. Each call
// returns fresh values.
func Builtin() ([]*Survey, error) {
	surveys, err := loadFS(builtinFS, "data")
	if err != nil {
		return nil, fmt.Errorf("survey: builtin tables: %w", err)
	}
	return surveys, nil
}

// Default returns the process-wide registry, populated with the built-in
// surveys on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		surveys, err := Builtin()
		if err != nil {
			panic(err)
		}
		r := NewRegistry()
		if err := r.Replace(surveys); err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// GetSurvey returns the named survey from the default registry.
func GetSurvey(name string) (*Survey, error) {
	return Default().Get(name)
}

// AvailableSurveys returns the survey names in the default registry.
func AvailableSurveys() []string {
	return Default().Names()
}
