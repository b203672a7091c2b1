package survey

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry is a thread-safe in-memory survey store, keyed by survey name.
// Surveys handed out by a Registry must not be modified.
type Registry struct {
	mu   sync.RWMutex
	data map[string]*Survey
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{data: make(map[string]*Survey)}
}

// Add stores s. It returns an error if s is nil, unnamed or already present.
func (r *Registry) Add(s *Survey) error {
	if s == nil || s.Name == "" {
		return fmt.Errorf("survey: nil or unnamed survey")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[s.Name]; exists {
		return fmt.Errorf("survey: %q already registered", s.Name)
	}
	r.data[s.Name] = s
	return nil
}

// Put stores or replaces the survey for s.Name. Like Add, it rejects a nil
// or unnamed survey.
func (r *Registry) Put(s *Survey) error {
	if s == nil || s.Name == "" {
		return fmt.Errorf("survey: nil or unnamed survey")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.Name] = s
	return nil
}

// Replace swaps the full survey set in one step. On a nil, unnamed or
// duplicate entry the registry is left untouched.
func (r *Registry) Replace(surveys []*Survey) error {
	next := make(map[string]*Survey, len(surveys))
	for _, s := range surveys {
		if s == nil || s.Name == "" {
			return fmt.Errorf("survey: nil or unnamed survey")
		}
		if _, dup := next[s.Name]; dup {
			return fmt.Errorf("survey: %q listed twice", s.Name)
		}
		next[s.Name] = s
	}

	r.mu.Lock()
	prev := len(r.data)
	r.data = next
	r.mu.Unlock()

	slog.Debug("survey: registry replaced", "previous", prev, "current", len(next))
	return nil
}

// Get returns the survey called name, or a *LookupError listing the
// registered names.
func (r *Registry) Get(name string) (*Survey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.data[name]; ok {
		return s, nil
	}
	return nil, &LookupError{
		Kind:      KindSurvey,
		Name:      name,
		Available: r.namesLocked(),
	}
}

// Names returns the registered survey names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// List returns all surveys ordered by name.
func (r *Registry) List() []*Survey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Survey, 0, len(r.data))
	for _, name := range r.namesLocked() {
		out = append(out, r.data[name])
	}
	return out
}

// Count returns the number of registered surveys.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Ref returns a SurveyRef that resolves name in r at resolution time.
func (r *Registry) Ref(name string) SurveyRef {
	return registryRef{r: r, name: name}
}

func (r *Registry) namesLocked() []string {
	out := make([]string, 0, len(r.data))
	for name := range r.data {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type registryRef struct {
	r    *Registry
	name string
}

func (ref registryRef) ResolveSurvey() (*Survey, error) {
	return ref.r.Get(ref.name)
}
