package commands

import (
	"fmt"

	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// Cleanup tears down the remains of a previous (possibly partial) deployment
// so the next run starts clean. It is an operator-invoked pre-cleanup, not an
// automatic rollback: a failed deploy never triggers it.
type Cleanup struct {
	cfg      *libs.ClusterConfig
	executor libs.RemoteExecutor
}

// NewCleanup creates a new Cleanup command
func NewCleanup(cfg *libs.ClusterConfig, executor libs.RemoteExecutor) *Cleanup {
	return &Cleanup{cfg: cfg, executor: executor}
}

// Run executes the cleanup
func (c *Cleanup) Run() error {
	logger := libs.GetLogger("cleanup")
	defer c.executor.Disconnect()

	hosts, verr := libs.ParseHostsFile(c.cfg.HostsFile, c.cfg.Gluster.ReplicaCount)
	if verr != nil {
		return verr
	}

	logger.InfoBanner("Cleaning up previous deployment")
	coordinator := hosts[0]
	volumeName := c.cfg.Gluster.VolumeName
	gluster := cli.NewGluster().Force(true)

	// Unmount clients first so volume stop does not hang on open fds
	for _, host := range hosts {
		logger.Info("Unmounting %s on %s...", c.cfg.Gluster.VolumeMount, host.Hostname)
		c.executor.Execute(host.Hostname, cli.Unmount(c.cfg.Gluster.VolumeMount), libs.IntPtr(60))
	}

	existsOutput, exitCode := c.executor.Execute(coordinator.Hostname, gluster.VolumeExistsCheck(volumeName), nil)
	if exitCode == nil {
		return libs.NewStepError("cleanup", libs.ExitCleanup,
			"cannot reach coordinator %s", coordinator.Hostname)
	}
	if cli.ParseVolumeExists(existsOutput) {
		logger.Info("Stopping and deleting volume '%s'...", volumeName)
		c.executor.Execute(coordinator.Hostname, gluster.VolumeStop(volumeName), nil)
		deleteOutput, exitCode := c.executor.Execute(coordinator.Hostname, gluster.VolumeDelete(volumeName), nil)
		if exitCode == nil || *exitCode != 0 {
			return libs.NewStepError("cleanup", libs.ExitCleanup,
				"volume delete failed: %s", deleteOutput)
		}
	} else {
		logger.Info("Volume '%s' does not exist, skipping", volumeName)
	}

	for _, host := range hosts[1:] {
		logger.Info("Detaching %s from the pool...", host.Hostname)
		c.executor.Execute(coordinator.Hostname, gluster.PeerDetach(host.Hostname), nil)
	}

	for _, host := range hosts {
		logger.Info("Removing brick data on %s...", host.Hostname)
		rmCmd := fmt.Sprintf("rm -rf %s 2>&1", c.cfg.BrickDir())
		if output, exitCode := c.executor.Execute(host.Hostname, rmCmd, libs.IntPtr(120)); exitCode == nil || *exitCode != 0 {
			logger.Warning("Could not remove %s on %s: %s", c.cfg.BrickDir(), host.Hostname, output)
		}
	}

	logger.InfoBanner("Cleanup complete")
	return nil
}
