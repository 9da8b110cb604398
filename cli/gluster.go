package cli

import (
	"fmt"
	"regexp"
	"strings"
)

// Gluster builds gluster CLI commands and parses their output. All state
// queries redirect stderr so the combined output can be matched.
type Gluster struct {
	glusterCmd string
	force      bool
}

// NewGluster creates a new Gluster command builder
func NewGluster() *Gluster {
	return &Gluster{
		glusterCmd: "gluster",
	}
}

// GlusterCmd sets the gluster binary path
func (g *Gluster) GlusterCmd(cmd string) *Gluster {
	g.glusterCmd = cmd
	return g
}

// Force appends "force" to mutating volume commands
func (g *Gluster) Force(value bool) *Gluster {
	g.force = value
	return g
}

// PeerProbe generates the command to invite a node into the trusted pool
func (g *Gluster) PeerProbe(host string) string {
	return fmt.Sprintf("%s peer probe %s 2>&1", g.glusterCmd, host)
}

// PeerDetach generates the command to remove a node from the trusted pool
func (g *Gluster) PeerDetach(host string) string {
	forceFlag := ""
	if g.force {
		forceFlag = " force"
	}
	return fmt.Sprintf("%s peer detach %s%s 2>&1", g.glusterCmd, host, forceFlag)
}

// PeerStatus generates the read-only peer status query
func (g *Gluster) PeerStatus() string {
	return fmt.Sprintf("%s peer status 2>&1", g.glusterCmd)
}

// PoolList generates the read-only pool membership query
func (g *Gluster) PoolList() string {
	return fmt.Sprintf("%s pool list 2>&1", g.glusterCmd)
}

// VolumeCreate generates the replicated volume creation command. Brick order
// matters: gluster pairs consecutive bricks into replica sets.
func (g *Gluster) VolumeCreate(volumeName string, replicaCount int, bricks []string) string {
	parts := []string{
		g.glusterCmd,
		"volume create",
		volumeName,
		fmt.Sprintf("replica %d", replicaCount),
		strings.Join(bricks, " "),
	}
	if g.force {
		parts = append(parts, "force")
	}
	parts = append(parts, "2>&1")
	return strings.Join(parts, " ")
}

// VolumeStart generates the volume start command
func (g *Gluster) VolumeStart(volumeName string) string {
	return fmt.Sprintf("%s volume start %s 2>&1", g.glusterCmd, volumeName)
}

// VolumeStop generates the volume stop command (non-interactive)
func (g *Gluster) VolumeStop(volumeName string) string {
	return fmt.Sprintf("yes | %s volume stop %s 2>&1", g.glusterCmd, volumeName)
}

// VolumeDelete generates the volume delete command (non-interactive)
func (g *Gluster) VolumeDelete(volumeName string) string {
	return fmt.Sprintf("yes | %s volume delete %s 2>&1", g.glusterCmd, volumeName)
}

// VolumeStatus generates the read-only volume status query
func (g *Gluster) VolumeStatus(volumeName string) string {
	return fmt.Sprintf("%s volume status %s 2>&1", g.glusterCmd, volumeName)
}

// VolumeInfo generates the read-only volume info query
func (g *Gluster) VolumeInfo(volumeName string) string {
	return fmt.Sprintf("%s volume info %s 2>&1", g.glusterCmd, volumeName)
}

// VolumeSet generates the volume option set command
func (g *Gluster) VolumeSet(volumeName, option, value string) string {
	return fmt.Sprintf("%s volume set %s %s %s 2>&1", g.glusterCmd, volumeName, option, value)
}

// VolumeExistsCheck generates a yes/no probe for volume existence
func (g *Gluster) VolumeExistsCheck(volumeName string) string {
	return fmt.Sprintf("%s volume info %s >/dev/null 2>&1 && echo yes || echo no", g.glusterCmd, volumeName)
}

// ParseVolumeExists parses VolumeExistsCheck output
func ParseVolumeExists(output string) bool {
	return strings.TrimSpace(output) == "yes"
}

// ParseConnectedPeers counts peers reported as full pool members by
// "gluster peer status". The issuing node itself is never listed.
func ParseConnectedPeers(output string) int {
	return strings.Count(output, "Peer in Cluster (Connected)")
}

// ParsePeerProbeAccepted reports whether a peer probe was accepted; probing a
// node that is already a member is success.
func ParsePeerProbeAccepted(output string) bool {
	lower := strings.ToLower(output)
	if strings.Contains(lower, "success") {
		return true
	}
	return strings.Contains(lower, "already") && strings.Contains(lower, "peer")
}

var brickLineRe = regexp.MustCompile(`(?m)^Brick\s+\S+`)

// ParseBricksOnline scans "gluster volume status" output and returns how many
// brick processes report Online "Y" out of the bricks listed. Brick rows look
// like:
//
//	Brick host1:/mnt/brick1/vol    49152  0  Y  1234
func ParseBricksOnline(output string) (online, total int) {
	for _, line := range strings.Split(output, "\n") {
		if !brickLineRe.MatchString(line) {
			continue
		}
		total++
		fields := strings.Fields(line)
		// ... port rdma-port online pid
		if len(fields) >= 2 && fields[len(fields)-2] == "Y" {
			online++
		}
	}
	return online, total
}

// ParseVolumeStarted reports whether "volume info" shows Status: Started
func ParseVolumeStarted(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Status:") {
			return strings.Contains(line, "Started")
		}
	}
	return false
}

// ParsePoolSize counts entries in "gluster pool list" output, excluding the
// header line. The issuing node appears as "localhost".
func ParsePoolSize(output string) int {
	n := 0
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "UUID") {
			continue
		}
		n++
	}
	return n
}
