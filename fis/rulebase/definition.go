// Package rulebase reads rule-base definition files (YAML or TOML),
// gates them on schema version and watches them for changes.
//
// A definition declares the attributes in order (the last one is the
// consequent), each with its triangular fuzzy sets, plus the rule texts:
//
//	schema_version: "1.0.0"
//	name: economy
//	attributes:
//	  - name: power
//	    sets:
//	      - { name: low, shape: [-175, 50, 185] }
//	rules:
//	  - if power is low then economy is high
package rulebase

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis"
	"github.com/teranos/mamdani/fis/membership"
)

// CurrentSchemaVersion is written by Encode and assumed when a file has none
const CurrentSchemaVersion = "1.0.0"

// SupportedSchemas is the range of schema versions this build reads
const SupportedSchemas = ">= 1.0.0, < 2.0.0"

// Format is a definition file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.WithHint(
			errors.Newf("unsupported rule base file %q", path),
			"use a .yaml, .yml or .toml file")
	}
}

// Definition is a rule base as written in a file
type Definition struct {
	SchemaVersion string          `yaml:"schema_version" toml:"schema_version" json:"schema_version"`
	Name          string          `yaml:"name" toml:"name" json:"name"`
	Description   string          `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Attributes    []AttributeSpec `yaml:"attributes" toml:"attributes" json:"attributes"`
	Rules         []string        `yaml:"rules" toml:"rules" json:"rules"`
}

// AttributeSpec declares one attribute and its fuzzy sets, in order
type AttributeSpec struct {
	Name string    `yaml:"name" toml:"name" json:"name"`
	Sets []SetSpec `yaml:"sets" toml:"sets" json:"sets"`
}

// SetSpec declares one fuzzy set; Shape is [lo, mid, hi]
type SetSpec struct {
	Name  string    `yaml:"name" toml:"name" json:"name"`
	Shape []float64 `yaml:"shape,flow" toml:"shape" json:"shape"`
}

// Decode reads a definition in the given format and checks its schema version
func Decode(r io.Reader, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("rule base file is empty")
			}
			return nil, errors.Wrap(err, "failed to decode YAML rule base")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&def)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode TOML rule base")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("unknown key %q in TOML rule base", undecoded[0].String())
		}
	default:
		return nil, errors.Newf("unsupported format %q", format)
	}

	if def.SchemaVersion == "" {
		def.SchemaVersion = CurrentSchemaVersion
	}
	if err := def.CheckVersion(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and decodes a definition file, picking the format from its extension
func Load(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open rule base %s", path)
	}
	defer f.Close()

	def, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "rule base %s", path)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// CheckVersion rejects schema versions outside SupportedSchemas
func (d *Definition) CheckVersion() error {
	v, err := semver.NewVersion(d.SchemaVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid schema_version %q", d.SchemaVersion)
	}
	c, err := semver.NewConstraint(SupportedSchemas)
	if err != nil {
		return errors.Wrap(err, "invalid schema constraint")
	}
	if !c.Check(v) {
		return errors.WithHintf(
			errors.Newf("schema_version %s is not supported", v),
			"this build reads schema versions %s", SupportedSchemas)
	}
	return nil
}

// Store validates the attribute declarations and builds the membership store
func (d *Definition) Store() (*membership.Store, error) {
	attrs := make([]membership.Attribute, len(d.Attributes))
	for i, a := range d.Attributes {
		sets := make([]membership.FuzzySet, len(a.Sets))
		for j, s := range a.Sets {
			if len(s.Shape) != 3 {
				return nil, errors.WithHint(
					errors.Wrapf(errors.ErrDegenerateShape, "%s/%s has %d breakpoints", a.Name, s.Name, len(s.Shape)),
					"shape must be [lo, mid, hi]")
			}
			sets[j] = membership.FuzzySet{Name: s.Name, Shape: membership.Tri(s.Shape[0], s.Shape[1], s.Shape[2])}
		}
		attrs[i] = membership.Attribute{Name: a.Name, Sets: sets}
	}
	return membership.NewStore(attrs...)
}

// Build constructs an engine from the definition
func (d *Definition) Build(opts ...fis.Option) (*fis.Engine, error) {
	store, err := d.Store()
	if err != nil {
		return nil, errors.Wrapf(err, "rule base %q", d.Name)
	}
	return fis.New(store, d.Rules, opts...)
}

// Encode writes the definition in the given format
func (d *Definition) Encode(w io.Writer, format Format) error {
	out := *d
	if out.SchemaVersion == "" {
		out.SchemaVersion = CurrentSchemaVersion
	}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&out); err != nil {
			return errors.Wrap(err, "failed to encode YAML rule base")
		}
		return enc.Close()
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(&out); err != nil {
			return errors.Wrap(err, "failed to encode TOML rule base")
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return errors.Newf("unsupported format %q", format)
	}
}

// FromStore rebuilds a definition from a store and rule texts
func FromStore(name string, store *membership.Store, rules []string) *Definition {
	def := &Definition{
		SchemaVersion: CurrentSchemaVersion,
		Name:          name,
		Rules:         append([]string(nil), rules...),
	}
	for _, a := range store.Attributes() {
		spec := AttributeSpec{Name: a.Name}
		for _, s := range a.Sets {
			spec.Sets = append(spec.Sets, SetSpec{Name: s.Name, Shape: []float64{s.Shape.Lo, s.Shape.Mid, s.Shape.Hi}})
		}
		def.Attributes = append(def.Attributes, spec)
	}
	return def
}
