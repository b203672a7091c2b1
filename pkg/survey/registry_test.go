package survey

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/galcheat/galcheat/pkg/units"
)

func named(name string) *Survey {
	return &Survey{
		Name:       name,
		PixelScale: units.New(0.2, units.Arcsec),
		Filters:    []*Filter{{Name: "g"}},
	}
}

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(named("A")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	s, err := r.Get("A")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Name != "A" {
		t.Errorf("Name: got %q, want A", s.Name)
	}
}

func TestRegistry_AddRejects(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(named("A")); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := r.Add(named("A")); err == nil {
		t.Error("expected duplicate Add to fail")
	}
	if err := r.Add(nil); err == nil {
		t.Error("expected nil Add to fail")
	}
	if err := r.Add(&Survey{}); err == nil {
		t.Error("expected unnamed Add to fail")
	}
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry()
	r.Put(named("B"))
	r.Put(named("A"))

	_, err := r.Get("C")
	if !errors.Is(err, ErrSurveyNotFound) {
		t.Fatalf("Get(C): got %v, want ErrSurveyNotFound", err)
	}
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LookupError, got %T", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, le.Available); diff != "" {
		t.Errorf("available (-want +got):\n%s", diff)
	}
}

func TestRegistry_PutOverwrites(t *testing.T) {
	r := NewRegistry()
	first := named("A")
	second := named("A")
	r.Put(first)
	r.Put(second)

	got, err := r.Get("A")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != second {
		t.Error("Put did not replace the stored survey")
	}
	if r.Count() != 1 {
		t.Errorf("Count: got %d, want 1", r.Count())
	}
}

func TestRegistry_PutRejects(t *testing.T) {
	r := NewRegistry()
	r.Put(named("A"))

	if err := r.Put(nil); err == nil {
		t.Error("expected nil Put to fail")
	}
	if err := r.Put(&Survey{}); err == nil {
		t.Error("expected unnamed Put to fail")
	}
	if diff := cmp.Diff([]string{"A"}, r.Names()); diff != "" {
		t.Errorf("Names after rejected Put (-want +got):\n%s", diff)
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"c", "a", "b"} {
		r.Put(named(n))
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, r.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	var listed []string
	for _, s := range r.List() {
		listed = append(listed, s.Name)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, listed); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}
}

func TestRegistry_Replace(t *testing.T) {
	r := NewRegistry()
	r.Put(named("old"))

	if err := r.Replace([]*Survey{named("x"), named("y")}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, r.Names()); diff != "" {
		t.Errorf("Names after Replace (-want +got):\n%s", diff)
	}
}

func TestRegistry_ReplaceInvalidKeepsPrevious(t *testing.T) {
	r := NewRegistry()
	r.Put(named("keep"))

	if err := r.Replace([]*Survey{named("x"), named("x")}); err == nil {
		t.Fatal("expected duplicate Replace to fail")
	}
	if err := r.Replace([]*Survey{named("x"), nil}); err == nil {
		t.Fatal("expected nil entry Replace to fail")
	}
	if diff := cmp.Diff([]string{"keep"}, r.Names()); diff != "" {
		t.Errorf("Names after failed Replace (-want +got):\n%s", diff)
	}
}

func TestRegistry_RefResolvesLate(t *testing.T) {
	r := NewRegistry()
	ref := r.Ref("late")

	if _, err := ref.ResolveSurvey(); !errors.Is(err, ErrSurveyNotFound) {
		t.Fatalf("ResolveSurvey before Put: got %v, want ErrSurveyNotFound", err)
	}

	s := named("late")
	r.Put(s)
	got, err := ref.ResolveSurvey()
	if err != nil {
		t.Fatalf("ResolveSurvey after Put: %v", err)
	}
	if got != s {
		t.Error("Ref resolved to a different survey")
	}
}

func TestRefs(t *testing.T) {
	s := named("obj")

	got, err := s.ResolveSurvey()
	if err != nil || got != s {
		t.Fatalf("(*Survey).ResolveSurvey: got %v, %v", got, err)
	}

	var nilSurvey *Survey
	if _, err := nilSurvey.ResolveSurvey(); !errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("nil survey: got %v, want ErrSurveyNotFound", err)
	}

	f, err := FilterName("g").ResolveFilter(s)
	if err != nil {
		t.Fatalf("FilterName.ResolveFilter: %v", err)
	}
	same, err := f.ResolveFilter(nil)
	if err != nil || same != f {
		t.Fatalf("(*Filter).ResolveFilter: got %v, %v", same, err)
	}

	if _, err := FilterName("nope").ResolveFilter(s); !errors.Is(err, ErrFilterNotFound) {
		t.Errorf("unknown filter: got %v, want ErrFilterNotFound", err)
	}

	lsst, err := SurveyName("LSST").ResolveSurvey()
	if err != nil {
		t.Fatalf("SurveyName(LSST): %v", err)
	}
	if lsst.Name != "LSST" {
		t.Errorf("SurveyName(LSST) resolved to %q", lsst.Name)
	}
	if _, err := SurveyName("Nope").ResolveSurvey(); !errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("SurveyName(Nope): got %v, want ErrSurveyNotFound", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	r.Put(named("s"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = r.Get("s")
			_ = r.List()
		}()
		go func(i int) {
			defer wg.Done()
			r.Put(named(fmt.Sprintf("s-%d", i)))
		}(i)
	}
	wg.Wait()

	if r.Count() != 11 {
		t.Errorf("Count: got %d, want 11", r.Count())
	}
}
