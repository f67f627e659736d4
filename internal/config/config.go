// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config, plus conversion
// into the core engine types.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/internal/lp"
	"github.com/adiorany3/ransumruminansia/internal/ration"
	"github.com/adiorany3/ransumruminansia/internal/requirements"
	"github.com/adiorany3/ransumruminansia/pkg/validation"
)

// Configuration holds all configuration for one ration session.
type Configuration struct {
	Mode    string        `yaml:"mode,omitempty"` // manual, optimize, minerals
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Animal  AnimalConfig  `yaml:"animal"`
	Ration  RationConfig  `yaml:"ration,omitempty"`
	Solver  SolverConfig  `yaml:"solver,omitempty"`

	Feeds    []IngredientConfig `yaml:"feeds"`
	Minerals []IngredientConfig `yaml:"minerals,omitempty"`

	// Manual maps ingredient name to kilograms, for manual evaluation mode
	// and as the base ration of minerals mode.
	Manual map[string]float64 `yaml:"manual,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// AnimalConfig describes the animal (or uniform group) being fed.
type AnimalConfig struct {
	Species           string  `yaml:"species"`
	Purpose           string  `yaml:"purpose"`
	Sex               string  `yaml:"sex"`
	Stage             string  `yaml:"stage"`
	BodyWeightKg      float64 `yaml:"bodyWeightKg"`
	MilkYieldKgPerDay float64 `yaml:"milkYieldKgPerDay,omitempty"`
	DailyGainKg       float64 `yaml:"dailyGainKg,omitempty"`
	HeadCount         int     `yaml:"headCount,omitempty"`
	Season            string  `yaml:"season,omitempty"`
}

// RationConfig holds optimization-mode settings.
type RationConfig struct {
	// TotalMassKg pins the mixture's total mass. Zero means the mass target
	// defaults to the dry-matter intake estimate; negative disables the
	// constraint entirely.
	TotalMassKg float64 `yaml:"totalMassKg,omitempty"`
}

// SolverConfig bounds the LP solves.
type SolverConfig struct {
	MaxIterations  int     `yaml:"maxIterations,omitempty"`
	TimeoutSeconds float64 `yaml:"timeoutSeconds,omitempty"`
}

// IngredientConfig is one feed or mineral supplement row.
type IngredientConfig struct {
	Name          string             `yaml:"name"`
	Category      string             `yaml:"category"`
	CostPerKg     float64            `yaml:"costPerKg"`
	Nutrients     map[string]float64 `yaml:"nutrients,omitempty"`
	MinKg         *float64           `yaml:"minKg,omitempty"`
	MaxKg         *float64           `yaml:"maxKg,omitempty"`
	AntiNutrients map[string]float64 `yaml:"antiNutrients,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors surface later, when the typed tables are
// built.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Animal.HeadCount == 0 {
		warnings = append(warnings, "Animal head count not set - assuming 1")
	}
	if len(c.Feeds) == 0 {
		warnings = append(warnings, "No feed ingredients configured")
	}

	names := make([]string, 0, len(c.Feeds)+len(c.Minerals))
	for _, ing := range append(append([]IngredientConfig{}, c.Feeds...), c.Minerals...) {
		names = append(names, ing.Name)
		if warning, err := validation.ValidateCost(ing.Name, ing.CostPerKg); err == nil && warning != "" {
			warnings = append(warnings, warning)
		}
	}
	for _, dup := range validation.DuplicateNames(names) {
		warnings = append(warnings, fmt.Sprintf("Ingredient '%s' appears more than once", dup))
	}

	return warnings
}

// RequirementSpec converts the animal section into a resolver spec.
func (c *Configuration) RequirementSpec() (requirements.Spec, error) {
	species, err := requirements.ParseSpecies(c.Animal.Species)
	if err != nil {
		return requirements.Spec{}, err
	}
	purpose, err := requirements.ParsePurpose(c.Animal.Purpose)
	if err != nil {
		return requirements.Spec{}, err
	}
	sex, err := requirements.ParseSex(c.Animal.Sex)
	if err != nil {
		return requirements.Spec{}, err
	}
	stage, err := requirements.ParseStage(c.Animal.Stage)
	if err != nil {
		return requirements.Spec{}, err
	}
	season := requirements.WetSeason
	if c.Animal.Season != "" {
		season, err = requirements.ParseSeason(c.Animal.Season)
		if err != nil {
			return requirements.Spec{}, err
		}
	}
	headCount := c.Animal.HeadCount
	if headCount == 0 {
		headCount = 1
	}
	return requirements.Spec{
		Species:           species,
		Purpose:           purpose,
		Sex:               sex,
		Stage:             stage,
		BodyWeightKg:      c.Animal.BodyWeightKg,
		MilkYieldKgPerDay: c.Animal.MilkYieldKgPerDay,
		DailyGainKg:       c.Animal.DailyGainKg,
		HeadCount:         headCount,
		Season:            season,
	}, nil
}

// FeedTable builds the typed feed table from the feeds section.
func (c *Configuration) FeedTable(schema *feed.Schema) (*feed.Table, error) {
	return buildTable(schema, c.Feeds)
}

// MineralTable builds the typed supplement table from the minerals section.
func (c *Configuration) MineralTable(schema *feed.Schema) (*feed.Table, error) {
	return buildTable(schema, c.Minerals)
}

func buildTable(schema *feed.Schema, rows []IngredientConfig) (*feed.Table, error) {
	ingredients := make([]feed.Ingredient, 0, len(rows))
	for _, row := range rows {
		category, err := feed.ParseCategory(row.Category)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", row.Name, err)
		}
		if _, err := validation.ValidateCost(row.Name, row.CostPerKg); err != nil {
			return nil, err
		}
		if err := validation.ValidateInclusionBounds(row.Name, row.MinKg, row.MaxKg); err != nil {
			return nil, err
		}
		nutrients := make(map[feed.NutrientID]float64, len(row.Nutrients))
		for name, value := range row.Nutrients {
			id := feed.NutrientID(name)
			if !schema.Has(id) {
				return nil, fmt.Errorf("ingredient %q: unknown nutrient %q", row.Name, name)
			}
			if err := validation.ValidateNutrientValue(row.Name, name, value); err != nil {
				return nil, err
			}
			nutrients[id] = value
		}
		ingredients = append(ingredients, feed.Ingredient{
			Name:          row.Name,
			Category:      category,
			Nutrients:     nutrients,
			CostPerKg:     row.CostPerKg,
			MinKg:         row.MinKg,
			MaxKg:         row.MaxKg,
			AntiNutrients: row.AntiNutrients,
		})
	}
	return feed.NewTable(schema, ingredients)
}

// ManualMixture maps the manual section onto table ingredient names. Viper
// lowercases configuration keys, so names are matched case-insensitively;
// unmatched names pass through for the evaluator to reject.
func (c *Configuration) ManualMixture(table *feed.Table) ration.Mixture {
	quantities := make(map[string]float64, len(c.Manual))
	for name, qty := range c.Manual {
		resolved := name
		for _, candidate := range table.Names() {
			if strings.EqualFold(candidate, name) {
				resolved = candidate
				break
			}
		}
		quantities[resolved] = qty
	}
	return ration.Mixture{Quantities: quantities}
}

// SolverOptions converts the solver section into LP options; zero fields
// fall back to package defaults inside the solver.
func (c *Configuration) SolverOptions() lp.Options {
	return lp.Options{
		MaxIterations: c.Solver.MaxIterations,
		Timeout:       time.Duration(c.Solver.TimeoutSeconds * float64(time.Second)),
	}
}
