package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/galcheat/galcheat/pkg/photometry"
	"github.com/galcheat/galcheat/pkg/survey"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// result is the -json output of a conversion.
type result struct {
	Survey       string  `json:"survey"`
	Filter       string  `json:"filter"`
	Magnitude    float64 `json:"magnitude"`
	Counts       int64   `json:"counts"`
	MeanSkyLevel float64 `json:"mean_sky_level"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("galcheat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	surveyName := fs.String("survey", "", "survey name, e.g. LSST")
	filterName := fs.String("filter", "", "filter name within the survey, e.g. r")
	mag := fs.Float64("mag", 0, "source magnitude")
	dir := fs.String("surveys", "", "directory of extra YAML survey tables")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	list := fs.Bool("list", false, "list surveys and their filters")
	verbose := fs.Bool("v", false, "debug logging on stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	reg, err := loadRegistry(*dir)
	if err != nil {
		fmt.Fprintln(stderr, "galcheat:", err)
		return 1
	}

	if *list {
		printList(stdout, reg)
		return 0
	}

	magSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "mag" {
			magSet = true
		}
	})
	if *surveyName == "" || *filterName == "" || !magSet {
		fmt.Fprintln(stderr, "galcheat: -survey, -filter and -mag are required (or use -list)")
		fs.Usage()
		return 1
	}

	res, err := convert(reg, *surveyName, *filterName, *mag)
	if err != nil {
		fmt.Fprintln(stderr, "galcheat:", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintln(stderr, "galcheat:", err)
			return 1
		}
		return 0
	}
	fmt.Fprintf(stdout, "%s %s  mag %g\n", res.Survey, res.Filter, res.Magnitude)
	fmt.Fprintf(stdout, "  counts          %d\n", res.Counts)
	fmt.Fprintf(stdout, "  mean sky level  %g ct/pixel\n", res.MeanSkyLevel)
	return 0
}

// loadRegistry returns the built-in surveys, overlaid with the tables in dir.
func loadRegistry(dir string) (*survey.Registry, error) {
	builtin, err := survey.Builtin()
	if err != nil {
		return nil, err
	}
	reg := survey.NewRegistry()
	if err := reg.Replace(builtin); err != nil {
		return nil, err
	}
	if dir == "" {
		return reg, nil
	}

	extra, err := survey.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, s := range extra {
		slog.Debug("loaded survey table", "survey", s.Name, "dir", dir)
		if err := reg.Put(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func convert(reg *survey.Registry, surveyName, filterName string, mag float64) (result, error) {
	s, err := reg.Get(surveyName)
	if err != nil {
		return result{}, err
	}
	f, err := s.GetFilter(filterName)
	if err != nil {
		return result{}, err
	}

	counts, err := photometry.Mag2Counts(mag, s, f)
	if err != nil {
		return result{}, err
	}
	n, err := counts.Int64()
	if err != nil {
		return result{}, fmt.Errorf("counts %s: %w", counts, err)
	}
	sky, err := photometry.MeanSkyLevel(s, f)
	if err != nil {
		return result{}, err
	}
	return result{
		Survey:       s.Name,
		Filter:       f.Name,
		Magnitude:    mag,
		Counts:       n,
		MeanSkyLevel: sky.Value,
	}, nil
}

func printList(w io.Writer, reg *survey.Registry) {
	for _, s := range reg.List() {
		fmt.Fprintf(w, "%-12s %-10s %s\n", s.Name, s.PixelScale, strings.Join(s.AvailableFilters(), " "))
	}
}
