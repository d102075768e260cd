package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReleaseFile_JSON(t *testing.T) {
	data := []byte(`{"numpy": ["1.26.4", "2.1.0"], "pandas": ["2.2.3"]}`)

	releases, err := parseReleaseFile("releases.json", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.26.4", "2.1.0"}, releases["numpy"])
	assert.Equal(t, []string{"2.2.3"}, releases["pandas"])
}

func TestParseReleaseFile_YAML(t *testing.T) {
	data := []byte("numpy:\n  - 1.26.4\n  - 2.1.0\npandas:\n  - 2.2.3\n")

	releases, err := parseReleaseFile("releases.yaml", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.26.4", "2.1.0"}, releases["numpy"])
	assert.Equal(t, []string{"2.2.3"}, releases["pandas"])
}

func TestParseReleaseFile_Invalid(t *testing.T) {
	_, err := parseReleaseFile("releases.json", []byte("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid release file")
}
