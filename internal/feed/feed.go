// Package feed defines the data structures for feed ingredients and the
// read-only ingredient table used by the evaluation and optimization
// engines. Nutrient values are stored in the units of the source table
// (percent for macro nutrients, ppm for trace minerals); the schema fixes
// the identifier set and units once per session so that LP matrix
// construction is well-defined.
package feed

import (
	"fmt"
	"sort"

	"github.com/adiorany3/ransumruminansia/pkg/units"
)

// NutrientID identifies a nutrient column in the feed table.
type NutrientID string

// Standard nutrient identifiers.
const (
	Protein    NutrientID = "protein"
	TDN        NutrientID = "tdn"
	Calcium    NutrientID = "ca"
	Phosphorus NutrientID = "p"
	Magnesium  NutrientID = "mg"
	Iron       NutrientID = "fe"
	Copper     NutrientID = "cu"
	Zinc       NutrientID = "zn"
)

// MineralIDs returns the nutrient identifiers treated as minerals, macro
// first, in a fixed order.
func MineralIDs() []NutrientID {
	return []NutrientID{Calcium, Phosphorus, Magnesium, Iron, Copper, Zinc}
}

// IsMicroMineral reports whether the nutrient is a trace mineral measured
// in ppm.
func IsMicroMineral(id NutrientID) bool {
	switch id {
	case Iron, Copper, Zinc:
		return true
	}
	return false
}

// Schema fixes the nutrient identifier set and units for one session.
type Schema struct {
	ids       []NutrientID
	unitsByID map[NutrientID]units.Unit
}

// NewSchema builds a schema from a nutrient → unit mapping. The identifier
// order is sorted so iteration is deterministic.
func NewSchema(unitsByID map[NutrientID]units.Unit) *Schema {
	ids := make([]NutrientID, 0, len(unitsByID))
	for id := range unitsByID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	copied := make(map[NutrientID]units.Unit, len(unitsByID))
	for id, u := range unitsByID {
		copied[id] = u
	}
	return &Schema{ids: ids, unitsByID: copied}
}

// DefaultSchema covers the standard eight nutrient columns of the feed
// composition tables.
func DefaultSchema() *Schema {
	return NewSchema(map[NutrientID]units.Unit{
		Protein:    units.Percent,
		TDN:        units.Percent,
		Calcium:    units.Percent,
		Phosphorus: units.Percent,
		Magnesium:  units.Percent,
		Iron:       units.PPM,
		Copper:     units.PPM,
		Zinc:       units.PPM,
	})
}

// IDs returns the nutrient identifiers in sorted order.
func (s *Schema) IDs() []NutrientID {
	out := make([]NutrientID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Unit returns the unit for a nutrient identifier.
func (s *Schema) Unit(id NutrientID) (units.Unit, bool) {
	u, ok := s.unitsByID[id]
	return u, ok
}

// Has reports whether the schema contains the nutrient identifier.
func (s *Schema) Has(id NutrientID) bool {
	_, ok := s.unitsByID[id]
	return ok
}

// Category classifies an ingredient.
type Category string

const (
	Forage            Category = "forage"
	Concentrate       Category = "concentrate"
	MineralSupplement Category = "mineral-supplement"
)

// ParseCategory maps a config string to a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Forage, Concentrate, MineralSupplement:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown feed category %q", s)
}

// Ingredient is one feed material. Nutrient values absent from the map are
// zeros, not unknowns: an ingredient with no recorded copper contributes no
// copper. Instances are immutable once loaded into a Table.
type Ingredient struct {
	Name          string
	Category      Category
	Nutrients     map[NutrientID]float64
	CostPerKg     float64
	MinKg         *float64
	MaxKg         *float64
	AntiNutrients map[string]float64
}

// Value returns the raw table value of a nutrient, zero when absent.
func (ing Ingredient) Value(id NutrientID) float64 {
	return ing.Nutrients[id]
}

// Fraction returns the nutrient content as a mass fraction (kg nutrient per
// kg feed) according to the schema unit.
func (ing Ingredient) Fraction(s *Schema, id NutrientID) float64 {
	u, ok := s.Unit(id)
	if !ok {
		return 0
	}
	return units.Fraction(u, ing.Nutrients[id])
}

// Table is the read-only ingredient repository for one session.
type Table struct {
	schema *Schema
	items  []Ingredient
	index  map[string]int
}

// NewTable builds a table over the given schema. Ingredient names must be
// unique and inclusion bounds consistent.
func NewTable(schema *Schema, ingredients []Ingredient) (*Table, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}
	t := &Table{
		schema: schema,
		items:  make([]Ingredient, len(ingredients)),
		index:  make(map[string]int, len(ingredients)),
	}
	copy(t.items, ingredients)
	for i, ing := range t.items {
		if ing.Name == "" {
			return nil, fmt.Errorf("ingredient %d has no name", i)
		}
		if _, dup := t.index[ing.Name]; dup {
			return nil, fmt.Errorf("duplicate ingredient name %q", ing.Name)
		}
		if ing.MinKg != nil && *ing.MinKg < 0 {
			return nil, fmt.Errorf("ingredient %q has negative minimum inclusion", ing.Name)
		}
		if ing.MinKg != nil && ing.MaxKg != nil && *ing.MinKg > *ing.MaxKg {
			return nil, fmt.Errorf("ingredient %q has minimum inclusion above maximum", ing.Name)
		}
		t.index[ing.Name] = i
	}
	return t, nil
}

// Schema returns the session schema.
func (t *Table) Schema() *Schema { return t.schema }

// Len returns the number of ingredients.
func (t *Table) Len() int { return len(t.items) }

// At returns the ingredient at position i in table order.
func (t *Table) At(i int) Ingredient { return t.items[i] }

// Lookup returns the ingredient with the given name.
func (t *Table) Lookup(name string) (Ingredient, bool) {
	i, ok := t.index[name]
	if !ok {
		return Ingredient{}, false
	}
	return t.items[i], true
}

// Names returns ingredient names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.items))
	for i, ing := range t.items {
		names[i] = ing.Name
	}
	return names
}

// Merge returns a new table containing this table's ingredients followed by
// the other table's. Both tables must share one schema instance semantics;
// the receiver's schema wins. Used to pool base feeds with mineral
// supplements for a combined optimization.
func (t *Table) Merge(other *Table) (*Table, error) {
	combined := make([]Ingredient, 0, len(t.items)+other.Len())
	combined = append(combined, t.items...)
	for i := 0; i < other.Len(); i++ {
		combined = append(combined, other.At(i))
	}
	return NewTable(t.schema, combined)
}
