package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const valley = "testdata/valley.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(io.Discard)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestPath(t *testing.T) {
	out, err := run(t, "path", valley, "farm", "west-gate")
	require.NoError(t, err)
	assert.Equal(t, "weight 300\nroute farm > bend > west-gate\n", out)

	out, err = run(t, "path", valley, "farm", "mill")
	require.NoError(t, err)
	assert.Equal(t, "no route\n", out)

	_, err = run(t, "path", valley, "farm", "castle")
	assert.ErrorIs(t, err, errUnknownNode)

	_, err = run(t, "path", valley, "farm")
	assert.Error(t, err)
}

func TestHops(t *testing.T) {
	out, err := run(t, "hops", valley, "farm", "mill")
	require.NoError(t, err)
	assert.Equal(t, "no route\n", out)

	out, err = run(t, "hops", valley, "farm", "mill", "--bridge")
	require.NoError(t, err)
	assert.Equal(t, "hops 2 weight 400\nroute farm > bend > west-gate ~ east-gate > mill\n", out)

	_, err = run(t, "hops", valley, "bend", "mill")
	assert.Error(t, err)
}

func TestReach(t *testing.T) {
	out, err := run(t, "reach", valley, "farm", "--weight", "60")
	require.NoError(t, err)
	assert.Equal(t, "bend\nfarm\n", out)

	out, err = run(t, "reach", valley, "farm", "--weight", "1000", "--type", "Perimeter")
	require.NoError(t, err)
	assert.Equal(t, "west-gate\n", out)

	out, err = run(t, "reach", valley, "farm", "--hops", "1")
	require.NoError(t, err)
	assert.Equal(t, "farm\nwest-gate\n", out)

	_, err = run(t, "reach", valley, "farm")
	assert.ErrorIs(t, err, errUsage)
	_, err = run(t, "reach", valley, "farm", "--weight", "1", "--hops", "1")
	assert.ErrorIs(t, err, errUsage)
}

func TestQuery(t *testing.T) {
	out, err := run(t, "query", valley, "--near", "300,40,25")
	require.NoError(t, err)
	assert.Equal(t, "town\ttown\t300,0,40\nwest-gate\tPerimeter\t280,0,40\neast-gate\tPerimeter\t320,0,40\n", out)

	out, err = run(t, "query", valley, "--rect", "0,0,700,100", "--type", "Endpoint")
	require.NoError(t, err)
	assert.Equal(t, "farm\tEndpoint\t0,0,0\nmill\tEndpoint\t600,5,40\n", out)

	_, err = run(t, "query", valley, "--rect", "0,0,1")
	assert.ErrorIs(t, err, errUsage)
	_, err = run(t, "query", valley)
	assert.ErrorIs(t, err, errUsage)
}

func TestConnectedAndClusters(t *testing.T) {
	out, err := run(t, "connected", valley, "mill", "farm")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = run(t, "connected", valley, "mill", "farm", "--bridge")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, "clusters", valley)
	require.NoError(t, err)
	assert.Equal(t, "bend east-gate farm mill town west-gate\n", out)
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", valley, "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "graph valley\ncell 64\nnodes 6\nedges 3\nconnections 2\nmarkers 9\n")
	assert.Contains(t, out, "  town 1\n")
	assert.Contains(t, out, "  Endpoint 2\n")
	assert.Contains(t, out, "worldgraph_tiles_built_total{generator=builder/valley/nodes/0} 3\n")
	assert.Contains(t, out, "worldgraph_tiles_built_total{generator=builder/valley/connections} 3\n")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worldgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte("cell_size = 16\ntile_size = 64\nworkers = 1\n"), 0o600))

	out, err := run(t, "stats", valley, "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "cell 16\n")
	// Four tiles of 64 hold nodes: three phases over each.
	assert.Contains(t, out, "markers 12\n")

	require.NoError(t, os.WriteFile(path, []byte("workers = -1\n"), 0o600))
	_, err = run(t, "stats", valley, "-c", path)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	out, err := run(t, "export", valley)
	require.NoError(t, err)
	assert.Contains(t, out, "graph: valley\n")
	assert.Contains(t, out, "belongs_to: town")
	assert.Contains(t, out, "weights: [100]")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	ctx := withLogger(context.Background(), l)
	assert.Same(t, l, loggerFromContext(ctx))
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
}

func TestVerboseLogsToWriter(t *testing.T) {
	var logs bytes.Buffer
	root := NewRootCommand(&logs)
	root.SetOut(io.Discard)
	root.SetArgs([]string{"stats", valley, "-v"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, logs.String(), "loaded")
	assert.Contains(t, logs.String(), "node added")
}
