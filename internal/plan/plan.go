// Package plan loads the small YAML build descriptions the planwriter CLI
// consumes and turns each target into an ordered configuration chain.
//
// A description looks like:
//
//	configs:
//	  release:
//	    defines: [NDEBUG]
//	    cflags: [-O2]
//	  zlib_public:
//	    include_dirs: [third_party/zlib]
//	targets:
//	  zlib:
//	    public_configs: [zlib_public]
//	  app:
//	    values:
//	      defines: [APP=1]
//	    configs: [release]
//	    deps: [zlib]
package plan

import (
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/planwriter/internal/errors"
	"github.com/conneroisu/planwriter/internal/projector"
)

// Target is one buildable unit of a description.
type Target struct {
	Name string `yaml:"-"`
	// Values are set directly on the target and come first in its chain.
	Values projector.ConfigValues `yaml:"values"`
	// Configs are applied to the target itself, in order.
	Configs []string `yaml:"configs"`
	// PublicConfigs are applied to every target that depends on this one.
	PublicConfigs []string `yaml:"public_configs"`
	Deps          []string `yaml:"deps"`
	// Output overrides the generated file name.
	Output string `yaml:"output"`
}

// Description is a parsed build description.
type Description struct {
	Configs map[string]*projector.ConfigValues `yaml:"configs"`
	Targets map[string]*Target                 `yaml:"targets"`
}

// Load reads and validates a description from fs.
func Load(fs afero.Fs, path string) (*Description, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeDescriptionInvalid, "cannot open description").WithPath(path)
	}
	defer f.Close()

	desc, err := Parse(f)
	if err != nil {
		var oe *errors.OutputError
		if stderrors.As(err, &oe) {
			return nil, oe.WithPath(path)
		}
		return nil, err
	}
	return desc, nil
}

// Parse decodes and validates a description.
func Parse(r io.Reader) (*Description, error) {
	var desc Description
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil && err != io.EOF {
		return nil, errors.WrapValidation(err, errors.ErrCodeDescriptionInvalid, "cannot parse description")
	}

	if desc.Configs == nil {
		desc.Configs = make(map[string]*projector.ConfigValues)
	}
	if desc.Targets == nil {
		desc.Targets = make(map[string]*Target)
	}
	for name, cfg := range desc.Configs {
		if cfg == nil {
			cfg = &projector.ConfigValues{}
			desc.Configs[name] = cfg
		}
		cfg.Name = name
	}
	for name, t := range desc.Targets {
		if t == nil {
			t = &Target{}
			desc.Targets[name] = t
		}
		t.Name = name
		t.Values.Name = name
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Validate checks that every reference resolves and that the dependency
// graph has no cycles.
func (d *Description) Validate() error {
	for _, name := range d.TargetNames() {
		t := d.Targets[name]
		for _, c := range append(append([]string{}, t.Configs...), t.PublicConfigs...) {
			if _, ok := d.Configs[c]; !ok {
				return errors.ErrDescriptionInvalid(fmt.Sprintf("target %q references unknown config %q", name, c))
			}
		}
		for _, dep := range t.Deps {
			if _, ok := d.Targets[dep]; !ok {
				return errors.ErrDescriptionInvalid(fmt.Sprintf("target %q depends on unknown target %q", name, dep))
			}
		}
		// Without an override the name becomes the output file name.
		if name == "" {
			return errors.ErrDescriptionInvalid("empty target name")
		}
		if err := validateRelative("name", name); err != nil {
			return errors.ErrDescriptionInvalid(fmt.Sprintf("target %q: %v", name, err))
		}
		if t.Output != "" {
			if err := validateRelative("output", t.Output); err != nil {
				return errors.ErrDescriptionInvalid(fmt.Sprintf("target %q: %v", name, err))
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(d.Targets))
	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case visiting:
			return errors.ErrDescriptionInvalid(fmt.Sprintf("dependency cycle: %v", append(path, name)))
		case done:
			return nil
		}
		state[name] = visiting
		path = append(append([]string{}, path...), name)
		for _, dep := range d.Targets[name].Deps {
			if err := visit(dep, path); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}
	for _, name := range d.TargetNames() {
		if err := visit(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// validateRelative keeps a path that is joined onto the output directory
// inside it.
func validateRelative(kind, p string) error {
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return fmt.Errorf("%s %q must be relative", kind, p)
	}
	for _, part := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return fmt.Errorf("%s %q escapes the output directory", kind, p)
		}
	}
	return nil
}

// TargetNames returns every target name, sorted.
func (d *Description) TargetNames() []string {
	names := make([]string, 0, len(d.Targets))
	for name := range d.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain builds the configuration chain of target: its own values, then its
// configs in order, then for each dependency in order that dependency's
// public configs followed by those its own dependencies forward. A config
// reached twice keeps its first position.
func (d *Description) Chain(target string) (projector.Chain, error) {
	t, ok := d.Targets[target]
	if !ok {
		return nil, errors.ErrDescriptionInvalid("unknown target: " + target)
	}

	var chain projector.Chain
	seen := make(map[string]bool)
	add := func(name string, origin projector.Origin) {
		if seen[name] {
			return
		}
		seen[name] = true
		chain = append(chain, projector.Entry{Values: d.Configs[name], Origin: origin})
	}

	chain = append(chain, projector.Entry{Values: &t.Values, Origin: projector.OriginTarget})
	for _, c := range t.Configs {
		add(c, projector.OriginTarget)
	}

	visited := make(map[string]bool)
	var inherit func(dep string)
	inherit = func(dep string) {
		if visited[dep] {
			return
		}
		visited[dep] = true
		dt := d.Targets[dep]
		for _, c := range dt.PublicConfigs {
			add(c, projector.OriginInherited)
		}
		for _, next := range dt.Deps {
			inherit(next)
		}
	}
	for _, dep := range t.Deps {
		inherit(dep)
	}
	return chain, nil
}
