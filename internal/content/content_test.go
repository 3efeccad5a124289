package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/constellation/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	list := Default()
	require.NotEmpty(t, list)
	for i, p := range list {
		assert.NoError(t, p.Validate(), "default entry %d", i)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"yaml list", "nodes.yaml", "- title: First\n  date: \"2024\"\n- title: Second\n  date: \"2023\"\n  destination: https://example.com/b\n"},
		{"yaml document", "nodes.yml", "nodes:\n  - title: First\n    date: \"2024\"\n  - title: Second\n    date: \"2023\"\n    destination: https://example.com/b\n"},
		{"json list", "nodes.json", `[{"title":"First","date":"2024"},{"title":"Second","date":"2023","destination":"https://example.com/b"}]`},
		{"toml document", "nodes.toml", "[[nodes]]\ntitle = \"First\"\ndate = \"2024\"\n\n[[nodes]]\ntitle = \"Second\"\ndate = \"2023\"\ndestination = \"https://example.com/b\"\n"},
		{"json document", "nodes.JSON", `{"nodes":[{"title":"First","date":"2024"},{"title":"Second","date":"2023","destination":"https://example.com/b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := Load(writeFile(t, tt.file, tt.body))
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "First", list[0].Title)
			assert.False(t, list[0].HasDestination())
			assert.Equal(t, "https://example.com/b", list[1].Destination)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "nodes.txt", "title: x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, "nodes.yaml", "- title: Missing date\n"))
	assert.ErrorIs(t, err, scene.ErrInvalidPayload)

	_, err = Load(writeFile(t, "nodes.json", "{not json"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Empty(t *testing.T) {
	for name, body := range map[string]string{
		"empty.yaml": "[]\n",
		"nodes.yaml": "nodes: []\n",
		"blank.yaml": "",
		"empty.json": "[]",
		"empty.toml": "",
	} {
		_, err := Load(writeFile(t, name, body))
		assert.ErrorIs(t, err, ErrEmpty, name)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, Save(path, Default()))

	list, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), list)
}
