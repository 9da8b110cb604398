package orchestration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/services"
)

func writeHostsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPreflightPasses(t *testing.T) {
	path := writeHostsFile(t, "10.0.0.1 node1\n10.0.0.2 node2\n")
	mock := services.NewMockExecutor()

	hosts, verr := Preflight(path, 2, mock)
	require.Nil(t, verr)
	require.Len(t, hosts, 2)
	assert.Equal(t, 1, mock.CallCount("node1", cli.ProbeCmd()))
	assert.Equal(t, 1, mock.CallCount("node2", cli.ProbeCmd()))
}

func TestPreflightBatchesConnectivityFailures(t *testing.T) {
	path := writeHostsFile(t, "10.0.0.1 node1\n10.0.0.2 node2\n10.0.0.3 node3\n")
	mock := services.NewMockExecutor()
	mock.Set("node2", cli.ProbeCmd(), services.MockResult{Unreachable: true})
	mock.Set("node3", cli.ProbeCmd(), services.MockResult{ExitCode: 255, Output: "Permission denied"})

	hosts, verr := Preflight(path, 1, mock)
	assert.Nil(t, hosts)
	require.NotNil(t, verr)
	require.Len(t, verr.Problems, 2)
	assert.Contains(t, verr.Problems[0], "node2")
	assert.Contains(t, verr.Problems[1], "node3")
}

func TestPreflightCombinesValidationAndConnectivity(t *testing.T) {
	path := writeHostsFile(t, "999.0.0.1 bad1\n10.0.0.2 node2\n")
	mock := services.NewMockExecutor()
	mock.Set("node2", cli.ProbeCmd(), services.MockResult{Unreachable: true})

	_, verr := Preflight(path, 1, mock)
	require.NotNil(t, verr)
	// Malformed line and unreachable host are reported in the same batch
	require.Len(t, verr.Problems, 2)
	assert.Contains(t, verr.Error(), "999.0.0.1")
	assert.Contains(t, verr.Error(), "node2")
}

func TestPreflightMissingFile(t *testing.T) {
	mock := services.NewMockExecutor()
	_, verr := Preflight(filepath.Join(t.TempDir(), "nope"), 2, mock)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "failed to read hosts file")
}
