package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreparePathCreatesSplitDirs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "export")
	splits := []string{SplitTrain, SplitVal, SplitTest}

	require.NoError(t, PreparePath(root, splits))

	for _, split := range splits {
		info, err := os.Stat(filepath.Join(root, split))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestPreparePathClearsPreviousContent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "export")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "train"), 0755))

	stale := filepath.Join(root, "train", "r_0.png")
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0644))

	require.NoError(t, PreparePath(root, []string{SplitTrain}))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}
