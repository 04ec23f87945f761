package stream

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/planwriter/internal/errors"
)

func TestFileSinkWritesAndTruncates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out.txt", []byte("old content that is longer"), 0o644))

	sink, err := CreateFileSink(fs, "/out.txt")
	require.NoError(t, err)

	WriteString(sink, "count=")
	WriteInt(sink, 12)
	require.NoError(t, sink.WriteByte('\n'))
	require.NoError(t, sink.Close())
	assert.NoError(t, sink.Err())
	assert.Equal(t, int64(9), sink.Len())

	data, err := afero.ReadFile(fs, "/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "count=12\n", string(data))
}

func TestCreateFileSinkOpenFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := CreateFileSink(fs, "/out.txt")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeOpenFailed))
}
