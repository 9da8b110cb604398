package orchestration

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
	"github.com/jeffvance/glusterfs-cluster-install/services"
)

func volumeStatusOutput(hosts []libs.HostEntry, brickDir string, online int) string {
	var b strings.Builder
	b.WriteString("Status of volume: HadoopVol\n")
	b.WriteString("Gluster process                             Port    Online  Pid\n")
	for i, host := range hosts {
		flag := "Y"
		if i >= online {
			flag = "N"
		}
		fmt.Fprintf(&b, "Brick %s:%s   49152   0   %s   123%d\n", host.Hostname, brickDir, flag, i)
	}
	return b.String()
}

func TestCreateVolumeHappyPath(t *testing.T) {
	mock := services.NewMockExecutor()
	s := testSession(mock)
	gluster := cli.NewGluster().Force(true)
	volume := s.Cfg.Gluster.VolumeName

	mock.Set("node1", gluster.VolumeExistsCheck(volume), services.MockResult{Output: "no"})
	mock.Set("node1", gluster.VolumeInfo(volume), services.MockResult{Output: "Status: Created"})
	// Bricks come online across two polls
	mock.Queue("node1", gluster.VolumeStatus(volume),
		services.MockResult{Output: volumeStatusOutput(s.Hosts, s.Cfg.BrickDir(), 2)},
		services.MockResult{Output: volumeStatusOutput(s.Hosts, s.Cfg.BrickDir(), 4)})

	require.NoError(t, CreateVolume(s))

	// Volume was created with bricks in host-list order, so replica pairing
	// follows the hosts file
	createCmd := gluster.VolumeCreate(volume, 2, []string{
		"node1:" + s.Cfg.BrickDir(),
		"node2:" + s.Cfg.BrickDir(),
		"node3:" + s.Cfg.BrickDir(),
		"node4:" + s.Cfg.BrickDir(),
	})
	assert.Equal(t, 1, mock.CallCount("node1", createCmd))
	assert.Equal(t, 1, mock.CallCount("node1", gluster.VolumeStart(volume)))
	assert.Equal(t, 2, mock.CallCount("node1", gluster.VolumeStatus(volume)))
}

func TestCreateVolumeSkipsExisting(t *testing.T) {
	mock := services.NewMockExecutor()
	s := testSession(mock)
	gluster := cli.NewGluster().Force(true)
	volume := s.Cfg.Gluster.VolumeName

	mock.Set("node1", gluster.VolumeExistsCheck(volume), services.MockResult{Output: "yes"})
	mock.Set("node1", gluster.VolumeInfo(volume), services.MockResult{Output: "Status: Started"})
	mock.Set("node1", gluster.VolumeStatus(volume),
		services.MockResult{Output: volumeStatusOutput(s.Hosts, s.Cfg.BrickDir(), 4)})

	require.NoError(t, CreateVolume(s))

	assert.Equal(t, 0, mock.CallCount("node1", gluster.VolumeStart(volume)))
	for _, call := range mock.Calls {
		assert.NotContains(t, call, "volume create")
	}
}

func TestCreateVolumeBricksNeverOnline(t *testing.T) {
	mock := services.NewMockExecutor()
	s := testSession(mock)
	gluster := cli.NewGluster().Force(true)
	volume := s.Cfg.Gluster.VolumeName

	mock.Set("node1", gluster.VolumeExistsCheck(volume), services.MockResult{Output: "no"})
	mock.Set("node1", gluster.VolumeInfo(volume), services.MockResult{Output: "Status: Created"})
	mock.Set("node1", gluster.VolumeStatus(volume),
		services.MockResult{Output: volumeStatusOutput(s.Hosts, s.Cfg.BrickDir(), 3)})

	err := CreateVolume(s)
	require.Error(t, err)
	assert.Equal(t, libs.ExitConvergence, libs.ExitCodeFor(err))
}

func TestMountVolumeAllNodes(t *testing.T) {
	mock := services.NewMockExecutor()
	s := testSession(mock)
	mountPoint := s.Cfg.Gluster.VolumeMount

	// First check says not mounted, post-mount verification says mounted
	for _, host := range s.Hosts {
		mock.Queue(host.Hostname, cli.MountedCheck(mountPoint),
			services.MockResult{Output: "no"},
			services.MockResult{Output: "yes"})
	}

	require.NoError(t, MountVolume(s))
	for _, host := range s.Hosts {
		mountCmd := cli.GlusterMount("node1", s.Cfg.Gluster.VolumeName, mountPoint)
		assert.Equal(t, 1, mock.CallCount(host.Hostname, mountCmd), host.Hostname)
	}
}

func TestMountVolumeVerificationFailure(t *testing.T) {
	mock := services.NewMockExecutor()
	s := testSession(mock)
	mountPoint := s.Cfg.Gluster.VolumeMount

	mock.Set("node1", cli.MountedCheck(mountPoint), services.MockResult{Output: "no"})

	err := MountVolume(s)
	require.Error(t, err)
	assert.Equal(t, libs.ExitMount, libs.ExitCodeFor(err))
}
