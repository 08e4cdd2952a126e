package libgame

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEdgeList(t *testing.T) {
	input := `
# a triangle with a tail
0,1
 1 , 2
2,0

2,-3
5,5
`
	out, err := ReadEdgeList(strings.NewReader(input), "triangle.txt")
	require.NoError(t, err)
	assert.Equal(t, edges(0, 1, 1, 2, 0, 2, -3, 2, 5, 5), out)
}

func TestReadEdgeListErrors(t *testing.T) {
	for _, input := range []string{"0,1\n0;1\n", "0,1,2\n", "a,b\n", "7\n"} {
		_, err := ReadEdgeList(strings.NewReader(input), "bad.txt")
		require.ErrorIs(t, err, edgegame.ErrBadEdgeInput, "%q", input)
		assert.Contains(t, err.Error(), "bad.txt:")
	}
}

func TestLoadEdgeList(t *testing.T) {
	dir := t.TempDir()
	pathname := filepath.Join(dir, edgegame.DefaultInputPathname)
	require.NoError(t, os.WriteFile(pathname, []byte("0,1\n1,2\n"), 0o644))

	out, err := LoadEdgeList(pathname)
	require.NoError(t, err)
	assert.Equal(t, edges(0, 1, 1, 2), out)

	_, err = LoadEdgeList(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, edgegame.ErrBadEdgeInput)
}

func TestParseEdgeRuns(t *testing.T) {
	out, err := ParseEdgeRuns("0-1-2-0, 3-3, 4-2")
	require.NoError(t, err)
	assert.Equal(t, edges(0, 1, 1, 2, 0, 2, 3, 3, 2, 4), out)

	out, err = ParseEdgeRuns("")
	require.NoError(t, err)
	assert.Empty(t, out)

	for _, expr := range []string{"0-", "0-1,", "5", "0-1-x", "0--1"} {
		_, err = ParseEdgeRuns(expr)
		assert.ErrorIs(t, err, edgegame.ErrBadEdgeInput, expr)
	}
}
