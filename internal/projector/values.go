// Package projector streams string-valued build flags out of a target's
// configuration chain.
//
// The chain is produced by the dependency graph and its order decides
// compiler-argument precedence, so the projector walks it exactly as given.
// Each flag kind (defines, include dirs, cflags, ...) is handled by the same
// traversal with a different Accessor.
package projector

import (
	"sort"

	"github.com/conneroisu/planwriter/internal/errors"
)

// ConfigValues holds the string-valued settings of one configuration.
type ConfigValues struct {
	Name        string   `yaml:"-"`
	Defines     []string `yaml:"defines"`
	IncludeDirs []string `yaml:"include_dirs"`
	Cflags      []string `yaml:"cflags"`
	CflagsC     []string `yaml:"cflags_c"`
	CflagsCC    []string `yaml:"cflags_cc"`
	Asmflags    []string `yaml:"asmflags"`
	Ldflags     []string `yaml:"ldflags"`
	LibDirs     []string `yaml:"lib_dirs"`
	Libs        []string `yaml:"libs"`
	Frameworks  []string `yaml:"frameworks"`
	RustFlags   []string `yaml:"rustflags"`
	SwiftFlags  []string `yaml:"swiftflags"`
}

// Accessor extracts one ordered list of values from a configuration.
type Accessor func(*ConfigValues) []string

// Defines and the accessors below return one flag kind of a configuration,
// in declaration order. Each is an Accessor.
func Defines(v *ConfigValues) []string     { return v.Defines }
func IncludeDirs(v *ConfigValues) []string { return v.IncludeDirs }
func Cflags(v *ConfigValues) []string      { return v.Cflags }
func CflagsC(v *ConfigValues) []string     { return v.CflagsC }
func CflagsCC(v *ConfigValues) []string    { return v.CflagsCC }
func Asmflags(v *ConfigValues) []string    { return v.Asmflags }
func Ldflags(v *ConfigValues) []string     { return v.Ldflags }
func LibDirs(v *ConfigValues) []string     { return v.LibDirs }
func Libs(v *ConfigValues) []string        { return v.Libs }
func Frameworks(v *ConfigValues) []string  { return v.Frameworks }
func RustFlags(v *ConfigValues) []string   { return v.RustFlags }
func SwiftFlags(v *ConfigValues) []string  { return v.SwiftFlags }

var fields = map[string]Accessor{
	"defines":      Defines,
	"include_dirs": IncludeDirs,
	"cflags":       Cflags,
	"cflags_c":     CflagsC,
	"cflags_cc":    CflagsCC,
	"asmflags":     Asmflags,
	"ldflags":      Ldflags,
	"lib_dirs":     LibDirs,
	"libs":         Libs,
	"frameworks":   Frameworks,
	"rustflags":    RustFlags,
	"swiftflags":   SwiftFlags,
}

// Field returns the accessor for a flag kind, using the same names as the
// description format ("defines", "include_dirs", ...).
func Field(name string) (Accessor, error) {
	get, ok := fields[name]
	if !ok {
		return nil, errors.ErrUnknownField(name)
	}
	return get, nil
}

// FieldNames lists every known flag kind, sorted.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
