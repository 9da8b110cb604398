package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
	"github.com/jeffvance/glusterfs-cluster-install/services"
)

var testHost = libs.HostEntry{IP: "10.0.0.1", Hostname: "node1"}

func TestProvisionBrickFormatsAndMounts(t *testing.T) {
	cfg := libs.DefaultConfig()
	mock := services.NewMockExecutor()
	disk := cli.NewDisk("/dev/sdb")
	mock.Set("node1", disk.ExistsCheck(), services.MockResult{Output: "yes"})
	mock.Set("node1", disk.IsMountedCheck(cfg.Gluster.BrickMount), services.MockResult{Output: "no"})

	action, err := GetAction("brick disk provisioning", mock, testHost, "/dev/sdb", cfg)
	require.NoError(t, err)
	require.True(t, action.Execute())

	assert.Equal(t, 1, mock.CallCount("node1", disk.MkfsXFS()))
	assert.Equal(t, 1, mock.CallCount("node1", disk.Mount(cfg.Gluster.BrickMount)))
	assert.Equal(t, 1, mock.CallCount("node1", disk.FstabEntry(cfg.Gluster.BrickMount)))
	assert.Equal(t, 1, mock.CallCount("node1", cli.MkdirCmd(cfg.BrickDir(), "755")))
}

func TestProvisionBrickSkipsMkfsWhenMounted(t *testing.T) {
	cfg := libs.DefaultConfig()
	mock := services.NewMockExecutor()
	disk := cli.NewDisk("/dev/sdb")
	mock.Set("node1", disk.ExistsCheck(), services.MockResult{Output: "yes"})
	mock.Set("node1", disk.IsMountedCheck(cfg.Gluster.BrickMount), services.MockResult{Output: "yes"})

	action, _ := GetAction("brick disk provisioning", mock, testHost, "/dev/sdb", cfg)
	require.True(t, action.Execute())

	assert.Equal(t, 0, mock.CallCount("node1", disk.MkfsXFS()))
}

func TestProvisionBrickMissingDevice(t *testing.T) {
	cfg := libs.DefaultConfig()
	mock := services.NewMockExecutor()
	mock.Set("node1", cli.NewDisk("/dev/sdz").ExistsCheck(), services.MockResult{Output: "no"})

	action, _ := GetAction("brick disk provisioning", mock, testHost, "/dev/sdz", cfg)
	assert.False(t, action.Execute())
}

func TestFeatureFlagsSkipDisabledActions(t *testing.T) {
	cfg := libs.DefaultConfig()
	cfg.Features.ConfigureFirewall = false
	cfg.Features.MonitoringAgent = false
	mock := services.NewMockExecutor()

	for _, name := range []string{"firewall configuration", "monitoring agent installation"} {
		action, err := GetAction(name, mock, testHost, "/dev/sdb", cfg)
		require.NoError(t, err)
		assert.True(t, action.Execute(), name)
	}
	// Disabled actions succeed without touching the host
	assert.Empty(t, mock.Calls)
}

func TestGetActionUnknown(t *testing.T) {
	_, err := GetAction("defragment tape drive", services.NewMockExecutor(), testHost, "/dev/sdb", libs.DefaultConfig())
	assert.Error(t, err)
}

func TestProvisionSequenceRegistered(t *testing.T) {
	for _, name := range ProvisionSequence {
		_, err := GetAction(name, services.NewMockExecutor(), testHost, "/dev/sdb", libs.DefaultConfig())
		assert.NoError(t, err, name)
	}
}
