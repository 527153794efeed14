package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit_WritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)

	Info(CatSearch, "query ran", "query", "smith", "results", 2)
	ErrorErr(CatSnapshot, "save failed", nil)
	Warn(CatStore, "odd fields", "dangling")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "[INFO] [search] query ran query=smith results=2")
	require.Contains(t, lines[1], "[ERROR] [snapshot] save failed error=<nil>")
	require.Contains(t, lines[2], "[WARN] [store] odd fields dangling=<missing>")
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}
