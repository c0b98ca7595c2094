package kvparser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocrud/kvparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKeys(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := kvparser.ValidateKeys([]kvparser.KeyDescriptor{
			{Key: "a"},
			{Key: "b/c", Type: kvparser.TypeNumber, Require: true},
			{Key: "d", Type: kvparser.TypeObject},
			{Key: "e", Type: kvparser.TypeString},
		})
		assert.NoError(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		err := kvparser.ValidateKeys(nil)
		assert.ErrorIs(t, err, kvparser.ErrInvalidKeys)
		assert.ErrorIs(t, err, kvparser.ErrKeysRequired)
	})

	t.Run("reports every bad descriptor", func(t *testing.T) {
		err := kvparser.ValidateKeys([]kvparser.KeyDescriptor{
			{Key: "ok"},
			{Key: "", Type: kvparser.TypeNumber},
			{Key: "bad", Type: "bool"},
		})
		require.ErrorIs(t, err, kvparser.ErrInvalidKeys)
		assert.ErrorIs(t, err, kvparser.ErrUnsupportedType)
		assert.Contains(t, err.Error(), "keys[1]")
		assert.Contains(t, err.Error(), "keys[2]")
		assert.NotContains(t, err.Error(), "keys[0]")
	})

	t.Run("missing key only", func(t *testing.T) {
		err := kvparser.ValidateKeys([]kvparser.KeyDescriptor{{Require: true}})
		require.ErrorIs(t, err, kvparser.ErrInvalidKeys)
		assert.NotErrorIs(t, err, kvparser.ErrUnsupportedType)
		assert.NotErrorIs(t, err, kvparser.ErrKeysRequired)
	})
}

func TestDecodeKeys(t *testing.T) {
	input := `
- key: db/host
  require: true
- key: db/port
  type: number
- key: features
  type: object
`
	keys, err := kvparser.DecodeKeys(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []kvparser.KeyDescriptor{
		{Key: "db/host", Require: true},
		{Key: "db/port", Type: kvparser.TypeNumber},
		{Key: "features", Type: kvparser.TypeObject},
	}, keys)
}

func TestDecodeKeys_JSON(t *testing.T) {
	keys, err := kvparser.DecodeKeys(strings.NewReader(`[{"key":"a","type":"number"}]`))
	require.NoError(t, err)
	assert.Equal(t, []kvparser.KeyDescriptor{{Key: "a", Type: kvparser.TypeNumber}}, keys)
}

func TestDecodeKeys_Errors(t *testing.T) {
	_, err := kvparser.DecodeKeys(strings.NewReader(""))
	assert.ErrorIs(t, err, kvparser.ErrKeysRequired)

	_, err = kvparser.DecodeKeys(strings.NewReader("- key: a\n  unknown: 1\n"))
	assert.ErrorIs(t, err, kvparser.ErrInvalidKeys)

	_, err = kvparser.DecodeKeys(strings.NewReader("- key: a\n  type: list\n"))
	assert.ErrorIs(t, err, kvparser.ErrUnsupportedType)
}

func TestLoadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- key: a\n- key: b\n  require: true\n"), 0o644))

	keys, err := kvparser.LoadKeys(path)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.True(t, keys[1].Require)

	_, err = kvparser.LoadKeys(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
