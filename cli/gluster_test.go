package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolumeCreateBrickOrder(t *testing.T) {
	cmd := NewGluster().Force(true).VolumeCreate("HadoopVol", 2,
		[]string{"n1:/mnt/brick1/HadoopVol", "n2:/mnt/brick1/HadoopVol", "n3:/mnt/brick1/HadoopVol", "n4:/mnt/brick1/HadoopVol"})
	assert.Equal(t,
		"gluster volume create HadoopVol replica 2 n1:/mnt/brick1/HadoopVol n2:/mnt/brick1/HadoopVol n3:/mnt/brick1/HadoopVol n4:/mnt/brick1/HadoopVol force 2>&1",
		cmd)
}

func TestVolumeCreateWithoutForce(t *testing.T) {
	cmd := NewGluster().VolumeCreate("vol0", 3, []string{"a:/b"})
	assert.NotContains(t, cmd, "force")
}

func TestParseConnectedPeers(t *testing.T) {
	output := `Number of Peers: 3

Hostname: node2
Uuid: 8b9c...
State: Peer in Cluster (Connected)

Hostname: node3
Uuid: 11aa...
State: Peer sent and Received peer request (Connected)

Hostname: node4
Uuid: 22bb...
State: Peer in Cluster (Connected)
`
	assert.Equal(t, 2, ParseConnectedPeers(output))
	assert.Equal(t, 0, ParseConnectedPeers("Number of Peers: 0"))
}

func TestParsePeerProbeAccepted(t *testing.T) {
	assert.True(t, ParsePeerProbeAccepted("peer probe: success."))
	assert.True(t, ParsePeerProbeAccepted("peer probe: success: host node2 port 24007 already in peer list"))
	assert.False(t, ParsePeerProbeAccepted("peer probe: failed: Probe returned with Transport endpoint is not connected"))
}

func TestParseBricksOnline(t *testing.T) {
	output := `Status of volume: HadoopVol
Gluster process                             Port    Online  Pid
------------------------------------------------------------------------------
Brick node1:/mnt/brick1/HadoopVol           49152   0       Y       2010
Brick node2:/mnt/brick1/HadoopVol           49152   0       N       N/A
Brick node3:/mnt/brick1/HadoopVol           49153   0       Y       2031
NFS Server on localhost                     2049    0       Y       2050
Self-heal Daemon on localhost               N/A     0       Y       2055
`
	online, total := ParseBricksOnline(output)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, online)
}

func TestParseBricksOnlineEmpty(t *testing.T) {
	online, total := ParseBricksOnline("Volume HadoopVol is not started")
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, online)
}

func TestParseVolumeStarted(t *testing.T) {
	started := "Volume Name: HadoopVol\nType: Replicate\nStatus: Started\n"
	created := "Volume Name: HadoopVol\nType: Replicate\nStatus: Created\n"
	assert.True(t, ParseVolumeStarted(started))
	assert.False(t, ParseVolumeStarted(created))
	assert.False(t, ParseVolumeStarted("volume info: volume does not exist"))
}

func TestParsePoolSize(t *testing.T) {
	output := `UUID                                    Hostname        State
9c1f...                                 node2           Connected
8d2e...                                 node3           Connected
7a3b...                                 localhost       Connected
`
	assert.Equal(t, 3, ParsePoolSize(output))
}

func TestParseVolumeExists(t *testing.T) {
	assert.True(t, ParseVolumeExists("yes"))
	assert.False(t, ParseVolumeExists("no"))
}

func TestGlusterRules(t *testing.T) {
	cmd := GlusterRules(10).Apply()
	assert.Contains(t, cmd, "--dport 24007:24008")
	assert.Contains(t, cmd, "--dport 49152:49161")
	assert.Contains(t, cmd, "--dport 111")
	assert.Contains(t, cmd, "service iptables save")
}

func TestParseNeedsRestarting(t *testing.T) {
	assert.True(t, ParseNeedsRestarting("1\n"))
	assert.False(t, ParseNeedsRestarting("0"))
	assert.False(t, ParseNeedsRestarting(""))
}
