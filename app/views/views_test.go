package views

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	templates, err := Load()
	require.NoError(t, err)

	for _, name := range Pages {
		tmpl, ok := templates[name]
		require.True(t, ok, name)
		assert.NotNil(t, tmpl.Lookup("layout"), name)
		assert.NotNil(t, tmpl.Lookup("content"), name)
	}
}

func TestStatic(t *testing.T) {
	data, err := fs.ReadFile(Static(), "style.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), ".flash-danger")
}
