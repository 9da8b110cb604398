package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
	"github.com/jeffvance/glusterfs-cluster-install/services"
)

// scriptProvisionedHost scripts the probes a fully provisioned host answers,
// so the action sequence takes every skip path.
func scriptProvisionedHost(mock *services.MockExecutor, host string, cfg *libs.ClusterConfig, device string) {
	yum := cli.NewYum()
	disk := cli.NewDisk(device)
	mock.Set(host, yum.IsInstalledCheck("glusterfs-server"), services.MockResult{Output: "installed"})
	mock.Set(host, yum.IsInstalledCheck("chrony"), services.MockResult{Output: "installed"})
	mock.Set(host, disk.ExistsCheck(), services.MockResult{Output: "yes"})
	mock.Set(host, disk.IsMountedCheck(cfg.Gluster.BrickMount), services.MockResult{Output: "yes"})
	mock.Set(host, cli.NewSystemCtl("glusterd").IsActive(), services.MockResult{Output: "active"})
}

func TestProvisionHostsSequentialAndRebootTracking(t *testing.T) {
	mock := services.NewMockExecutor()
	s := testSession(mock)
	s.Cfg.Waits.ServiceStart = 0

	needsRestarting := cli.NewYum().NeedsRestarting()
	for i, host := range s.Hosts {
		scriptProvisionedHost(mock, host.Hostname, s.Cfg, s.Device)
		// node2 and node4 picked up a kernel update
		if i%2 == 1 {
			mock.Set(host.Hostname, needsRestarting, services.MockResult{Output: "1"})
		} else {
			mock.Set(host.Hostname, needsRestarting, services.MockResult{Output: "0"})
		}
	}

	require.NoError(t, ProvisionHosts(s))
	assert.Equal(t, []string{"node2", "node4"}, s.Reboots.Pending())

	// Host order preserved: node1's sequence runs before node2's
	firstNode2 := -1
	lastNode1 := -1
	for i, call := range mock.Calls {
		if len(call) > 5 && call[:5] == "node1" {
			lastNode1 = i
		}
		if firstNode2 == -1 && len(call) > 5 && call[:5] == "node2" {
			firstNode2 = i
		}
	}
	assert.Less(t, lastNode1, firstNode2)
}

func TestProvisionHostsMarkerWriteFailureIsNonFatal(t *testing.T) {
	mock := services.NewMockExecutor()
	s := testSession(mock)
	s.Cfg.Waits.ServiceStart = 0

	for _, host := range s.Hosts {
		scriptProvisionedHost(mock, host.Hostname, s.Cfg, s.Device)
		// Read-only /var/lib must not abort the run
		mock.Set(host.Hostname, cli.MarkerWrite(s.RunID),
			services.MockResult{ExitCode: 1, Output: "cannot create directory: read-only file system"})
	}

	require.NoError(t, ProvisionHosts(s))
	assert.Empty(t, s.Reboots.Pending())
}

func TestProvisionHostsAbortsOnActionFailure(t *testing.T) {
	mock := services.NewMockExecutor()
	s := testSession(mock)
	s.Cfg.Waits.ServiceStart = 0

	scriptProvisionedHost(mock, "node1", s.Cfg, s.Device)
	// node2's brick device is missing; node3 and node4 are never touched
	mock.Set("node2", cli.NewYum().IsInstalledCheck("glusterfs-server"), services.MockResult{Output: "installed"})
	mock.Set("node2", cli.NewDisk(s.Device).ExistsCheck(), services.MockResult{Output: "no"})

	err := ProvisionHosts(s)
	require.Error(t, err)
	assert.Equal(t, libs.ExitProvision, libs.ExitCodeFor(err))
	for _, call := range mock.Calls {
		assert.NotContains(t, call, "node3:")
		assert.NotContains(t, call, "node4:")
	}
}
