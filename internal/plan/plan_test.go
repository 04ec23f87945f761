package plan

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/planwriter/internal/errors"
	"github.com/conneroisu/planwriter/internal/projector"
	"github.com/conneroisu/planwriter/internal/stream"
)

const sample = `configs:
  release:
    defines: [NDEBUG]
    cflags: [-O2]
  warnings:
    cflags: [-Wall]
  zlib_public:
    include_dirs: [third_party/zlib]
  base_public:
    include_dirs: [base/include]
targets:
  base:
    public_configs: [base_public]
  zlib:
    public_configs: [zlib_public]
    deps: [base]
  app:
    values:
      cflags: [-g]
    configs: [release, warnings]
    deps: [zlib, base]
`

func mustParse(t *testing.T, src string) *Description {
	t.Helper()
	desc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return desc
}

func TestParse(t *testing.T) {
	desc := mustParse(t, sample)

	assert.Equal(t, []string{"app", "base", "zlib"}, desc.TargetNames())
	assert.Equal(t, "release", desc.Configs["release"].Name)
	assert.Equal(t, "app", desc.Targets["app"].Name)
	assert.Equal(t, []string{"-g"}, desc.Targets["app"].Values.Cflags)
}

func TestParseEmpty(t *testing.T) {
	desc := mustParse(t, "")
	assert.Empty(t, desc.TargetNames())
}

func TestChainOrder(t *testing.T) {
	desc := mustParse(t, sample)

	chain, err := desc.Chain("app")
	require.NoError(t, err)

	// own values, own configs, then zlib's public configs, then what zlib
	// forwards from base. base is reached twice but appears once.
	require.Len(t, chain, 5)
	assert.Equal(t, "app", chain[0].Values.Name)
	assert.Equal(t, "release", chain[1].Values.Name)
	assert.Equal(t, "warnings", chain[2].Values.Name)
	assert.Equal(t, "zlib_public", chain[3].Values.Name)
	assert.Equal(t, "base_public", chain[4].Values.Name)

	for _, e := range chain[:3] {
		assert.Equal(t, projector.OriginTarget, e.Origin)
	}
	for _, e := range chain[3:] {
		assert.Equal(t, projector.OriginInherited, e.Origin)
	}

	var out stream.StringSink
	projector.WriteStrings(&out, chain, projector.All, projector.Cflags, nil)
	assert.Equal(t, " -g -O2 -Wall", out.String())

	out.Release()
	projector.WriteStrings(&out, chain, projector.InheritedOnly, projector.IncludeDirs, nil)
	assert.Equal(t, " third_party/zlib base/include", out.String())
}

func TestChainLeaf(t *testing.T) {
	desc := mustParse(t, sample)
	chain, err := desc.Chain("base")
	require.NoError(t, err)
	require.Len(t, chain, 1, "public configs do not apply to the target itself")
}

func TestChainUnknownTarget(t *testing.T) {
	desc := mustParse(t, sample)
	_, err := desc.Chain("nope")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDescriptionInvalid))
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{
			name: "unknown config",
			src:  "targets:\n  a:\n    configs: [missing]\n",
			msg:  "unknown config",
		},
		{
			name: "unknown public config",
			src:  "targets:\n  a:\n    public_configs: [missing]\n",
			msg:  "unknown config",
		},
		{
			name: "unknown dep",
			src:  "targets:\n  a:\n    deps: [b]\n",
			msg:  "unknown target",
		},
		{
			name: "cycle",
			src:  "targets:\n  a:\n    deps: [b]\n  b:\n    deps: [c]\n  c:\n    deps: [a]\n",
			msg:  "dependency cycle",
		},
		{
			name: "self dependency",
			src:  "targets:\n  a:\n    deps: [a]\n",
			msg:  "dependency cycle",
		},
		{
			name: "absolute output",
			src:  "targets:\n  a:\n    output: /etc/passwd\n",
			msg:  "must be relative",
		},
		{
			name: "escaping output",
			src:  "targets:\n  a:\n    output: ../a.flags\n",
			msg:  "escapes the output directory",
		},
		{
			name: "escaping target name",
			src:  "targets:\n  ../../escaped: {}\n",
			msg:  "escapes the output directory",
		},
		{
			name: "absolute target name",
			src:  "targets:\n  /tmp/abs: {}\n",
			msg:  "must be relative",
		},
		{
			name: "empty target name",
			src:  "targets:\n  \"\": {}\n",
			msg:  "empty target name",
		},
		{
			name: "unknown key",
			src:  "targets:\n  a:\n    sources: [a.c]\n",
			msg:  "cannot parse description",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.True(t, errors.HasCode(err, errors.ErrCodeDescriptionInvalid))
		})
	}
}

func TestValidateAcceptsNestedNames(t *testing.T) {
	d, err := Parse(strings.NewReader("targets:\n  tools/gen: {}\n  a..b:\n    output: sub/a.flags\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a..b", "tools/gen"}, d.TargetNames())
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/build.yml", []byte(sample), 0o644))

	desc, err := Load(fs, "/build.yml")
	require.NoError(t, err)
	assert.Len(t, desc.Targets, 3)
}

func TestLoadErrorsCarryPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.yml", []byte("targets:\n  a:\n    deps: [b]\n"), 0o644))

	_, err := Load(fs, "/missing.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing.yml")

	_, err = Load(fs, "/bad.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/bad.yml")
}
