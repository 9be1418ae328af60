package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/tower-engine/pkg/overlay"
	"github.com/jwebster45206/tower-engine/pkg/scenario/cntower"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dialogue.json|dialogue.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &OverlayValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	for _, w := range validator.warnings {
		fmt.Println("warning:" + strings.TrimPrefix(w, " "))
	}
	fmt.Println("Dialogue file is valid!")
}

// OverlayValidator checks a sweet-mode dialogue file against the CN Tower
// location set.
type OverlayValidator struct {
	errors   []string
	warnings []string
}

func (v *OverlayValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json", ".yaml", ".yml":
	default:
		return fmt.Errorf("dialogue file must have a .json, .yaml or .yml extension: %s", filepath.Base(filename))
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	table, err := overlay.Parse(filename, data)
	if err != nil {
		return fmt.Errorf("file %s: %w", filename, err)
	}

	if err := v.validateTable(table); err != nil {
		return fmt.Errorf("validation errors in %s:\n%w", filename, err)
	}
	return nil
}

func (v *OverlayValidator) validateTable(table *overlay.Table) error {
	v.errors = nil
	v.warnings = nil

	for _, loc := range table.Locations() {
		v.validateLocation(loc)
		v.validatePairs(loc, table.Pairs(loc))
	}

	if _, err := cntower.New(table); err != nil {
		v.addError(fmt.Sprintf("scenario rejected the table: %v", err))
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *OverlayValidator) validateLocation(loc string) {
	parsed, err := state.ParseLocation(loc)
	switch {
	case err != nil:
		v.addError(fmt.Sprintf("location '%s' is not a known location", loc))
	case string(parsed) != loc:
		v.addError(fmt.Sprintf("location '%s' must be spelled '%s'", loc, parsed))
	case parsed.Terminal():
		v.addError(fmt.Sprintf("location '%s' is never narrated", loc))
	}
}

// validatePairs flags keys that can never match: an earlier key found
// inside a later one is replaced first and splits it.
func (v *OverlayValidator) validatePairs(loc string, pairs []overlay.Pair) {
	for j, later := range pairs {
		for _, earlier := range pairs[:j] {
			if strings.Contains(later.From, earlier.From) {
				v.addWarning(fmt.Sprintf("key '%s' in %s is shadowed by earlier key '%s'", later.From, loc, earlier.From))
				break
			}
		}
	}
}

func (v *OverlayValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *OverlayValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, " "+msg)
}
