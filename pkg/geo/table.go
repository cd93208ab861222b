// Package geo maps free-text profile locations to continents using a
// versioned lookup table.
package geo

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Unknown is returned for locations the table cannot place
const Unknown = "Unknown"

//go:embed default_table.yaml
var defaultTableYAML []byte

var ErrUnknownCode = errors.New("continent code not defined in table")

// Resolver maps a location string to a continent name
type Resolver interface {
	Resolve(location string) string
}

// Table is a location lookup table. Aliases and Countries map lowercase
// names to continent codes, or to Unknown for known non-places.
type Table struct {
	Version    string            `yaml:"version" validate:"required"`
	Continents map[string]string `yaml:"continents" validate:"required,min=1,dive,keys,required,endkeys,required"`
	Aliases    map[string]string `yaml:"aliases"`
	Countries  map[string]string `yaml:"countries"`

	// country names ordered longest first for substring matching
	scanOrder []string
}

// LoadTable decodes and validates a YAML table
func LoadTable(r io.Reader) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode location table: %w", err)
	}
	if err := t.init(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTableFile reads a table from path
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open location table: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}

// DefaultTable returns the embedded table
func DefaultTable() (*Table, error) {
	return LoadTable(bytes.NewReader(defaultTableYAML))
}

func (t *Table) init() error {
	if err := validator.New().Struct(t); err != nil {
		return fmt.Errorf("invalid location table: %w", err)
	}

	aliases := make(map[string]string, len(t.Aliases))
	for name, code := range t.Aliases {
		if err := t.checkCode(name, code); err != nil {
			return err
		}
		aliases[Clean(name)] = code
	}
	countries := make(map[string]string, len(t.Countries))
	for name, code := range t.Countries {
		if err := t.checkCode(name, code); err != nil {
			return err
		}
		countries[Clean(name)] = code
	}
	t.Aliases, t.Countries = aliases, countries

	t.scanOrder = make([]string, 0, len(countries))
	for name := range countries {
		t.scanOrder = append(t.scanOrder, name)
	}
	slices.SortFunc(t.scanOrder, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	return nil
}

func (t *Table) checkCode(name, code string) error {
	if code == Unknown {
		return nil
	}
	if _, ok := t.Continents[code]; !ok {
		return fmt.Errorf("location %q: %w: %q", name, ErrUnknownCode, code)
	}
	return nil
}

// Clean normalizes a raw location for lookup
func Clean(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// Resolve returns the continent name of location. Lookup order is exact
// alias, exact country name, then the longest country name contained in
// the location. Anything else is Unknown.
func (t *Table) Resolve(location string) string {
	code := t.ResolveCode(location)
	if code == Unknown {
		return Unknown
	}
	return t.Continents[code]
}

// ResolveCode is Resolve returning the continent code
func (t *Table) ResolveCode(location string) string {
	loc := Clean(location)
	if loc == "" || loc == "unknown" {
		return Unknown
	}
	if code, ok := t.Aliases[loc]; ok {
		return code
	}
	if code, ok := t.Countries[loc]; ok {
		return code
	}
	for _, name := range t.scanOrder {
		if strings.Contains(loc, name) {
			return t.Countries[name]
		}
	}
	return Unknown
}

// ResolveAll resolves every location and returns the continent per key
// along with the number that stayed Unknown.
func ResolveAll(r Resolver, locations map[string]string) (map[string]string, int) {
	out := make(map[string]string, len(locations))
	unknown := 0
	for id, loc := range locations {
		c := r.Resolve(loc)
		if c == Unknown {
			unknown++
		}
		out[id] = c
	}
	return out, unknown
}
