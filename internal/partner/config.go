// Package partner holds per-trading-partner configuration and the receipt
// log. The engine itself never reads partner state; callers consult it to
// build generation options.
package partner

import (
	"fmt"
	"strings"

	"github.com/edikit/edikit/internal/edi"
)

// Config describes one trading partner's preferences.
type Config struct {
	Name       string      `yaml:"name"`
	Standard   string      `yaml:"standard"` // "x12" or "edifact"
	Qualifier  string      `yaml:"qualifier,omitempty"`
	Identifier string      `yaml:"identifier,omitempty"`
	Version    string      `yaml:"version,omitempty"`
	UseGroups  bool        `yaml:"use_groups,omitempty"`
	LineBreaks bool        `yaml:"line_breaks,omitempty"`
	Delimiters *Delimiters `yaml:"delimiters,omitempty"`
}

// Delimiters is the YAML/DB form of a delimiter preference; each field is
// a single character, empty meaning "standard default".
type Delimiters struct {
	Element    string `yaml:"element,omitempty"`
	Component  string `yaml:"component,omitempty"`
	Repetition string `yaml:"repetition,omitempty"`
	Segment    string `yaml:"segment,omitempty"`
	Release    string `yaml:"release,omitempty"`
	Decimal    string `yaml:"decimal,omitempty"`
}

// Validate checks the config is usable before it is stored.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("partner: name is required")
	}
	if _, err := c.EDIStandard(); err != nil {
		return err
	}
	if _, err := c.EDIDelimiters(); err != nil {
		return err
	}
	return nil
}

// EDIStandard maps the stored standard name onto the engine's enum.
func (c *Config) EDIStandard() (edi.Standard, error) {
	switch strings.ToLower(c.Standard) {
	case "", "x12":
		return edi.X12, nil
	case "edifact":
		return edi.EDIFACT, nil
	}
	return 0, fmt.Errorf("partner %s: unknown standard %q", c.Name, c.Standard)
}

// EDIDelimiters builds the engine delimiter set from the partner's
// preferences, starting from the standard's defaults. Returns nil when the
// partner has no preference.
func (c *Config) EDIDelimiters() (*edi.Delimiters, error) {
	if c.Delimiters == nil {
		return nil, nil
	}
	std, err := c.EDIStandard()
	if err != nil {
		return nil, err
	}
	d := edi.DefaultX12()
	if std == edi.EDIFACT {
		d = edi.DefaultEDIFACT()
	}
	fields := []struct {
		val  string
		name string
		dst  *byte
	}{
		{c.Delimiters.Element, "element", &d.Element},
		{c.Delimiters.Component, "component", &d.Component},
		{c.Delimiters.Repetition, "repetition", &d.Repetition},
		{c.Delimiters.Segment, "segment", &d.Segment},
		{c.Delimiters.Release, "release", &d.Release},
		{c.Delimiters.Decimal, "decimal", &d.Decimal},
	}
	for _, f := range fields {
		if f.val == "" {
			continue
		}
		if len(f.val) != 1 {
			return nil, fmt.Errorf("partner %s: %s delimiter %q must be one character", c.Name, f.name, f.val)
		}
		*f.dst = f.val[0]
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("partner %s: %w", c.Name, err)
	}
	return &d, nil
}

// GenerationOptions builds engine options from the partner's preferences.
func (c *Config) GenerationOptions() (edi.Options, error) {
	delims, err := c.EDIDelimiters()
	if err != nil {
		return edi.Options{}, err
	}
	opts := edi.Options{
		Delimiters: delims,
		LineBreaks: c.LineBreaks,
		Version:    c.Version,
	}
	// X12 interchanges are always grouped; the preference only applies to
	// EDIFACT, where UNG envelopes are optional.
	if std, _ := c.EDIStandard(); std == edi.EDIFACT {
		useGroups := c.UseGroups
		opts.UseGroups = &useGroups
	}
	return opts, nil
}
