package orchestration

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// CreateVolume creates and starts the replicated volume on the coordinator,
// then polls volume status until every brick process reports Online. An
// existing volume of the same name is reused as-is (check-and-skip, not
// reconciliation).
func CreateVolume(s *Session) error {
	logger := libs.GetLogger("volume")
	coordinator := s.Coordinator()
	volumeName := s.Cfg.Gluster.VolumeName
	gluster := cli.NewGluster().Force(true)

	logger.InfoBannerf("Creating volume '%s' (replica %d)", volumeName, s.Cfg.Gluster.ReplicaCount)

	existsOutput, exitCode := s.Executor.Execute(coordinator.Hostname, gluster.VolumeExistsCheck(volumeName), nil)
	if exitCode == nil {
		return libs.NewStepError("volume create", libs.ExitVolume,
			"lost connection to coordinator %s", coordinator.Hostname)
	}
	if cli.ParseVolumeExists(existsOutput) {
		logger.Info("Volume '%s' already exists, skipping create", volumeName)
	} else {
		createCmd := gluster.VolumeCreate(volumeName, s.Cfg.Gluster.ReplicaCount, s.BrickList())
		createOutput, exitCode := s.Executor.Execute(coordinator.Hostname, createCmd, nil)
		if exitCode == nil || *exitCode != 0 {
			return libs.NewStepError("volume create", libs.ExitVolume,
				"volume create failed: %s", createOutput)
		}
		logger.Info("%s", createOutput)
	}

	infoOutput, exitCode := s.Executor.Execute(coordinator.Hostname, gluster.VolumeInfo(volumeName), nil)
	if exitCode != nil && cli.ParseVolumeStarted(infoOutput) {
		logger.Info("Volume '%s' already started", volumeName)
	} else {
		startOutput, exitCode := s.Executor.Execute(coordinator.Hostname, gluster.VolumeStart(volumeName), nil)
		if exitCode == nil || *exitCode != 0 {
			return libs.NewStepError("volume start", libs.ExitVolume,
				"volume start failed: %s", startOutput)
		}
	}

	for option, value := range s.Cfg.Gluster.VolumeOpts {
		setOutput, exitCode := s.Executor.Execute(coordinator.Hostname, gluster.VolumeSet(volumeName, option, value), nil)
		if exitCode == nil || *exitCode != 0 {
			return libs.NewStepError("volume set", libs.ExitVolume,
				"setting %s=%s failed: %s", option, value, setOutput)
		}
	}

	expected := len(s.Hosts)
	logger.Info("Waiting for %d brick(s) to come online...", expected)
	state := s.Poller.WaitNotify(func() bool {
		output, exitCode := s.Executor.Execute(coordinator.Hostname, gluster.VolumeStatus(volumeName), nil)
		if exitCode == nil || *exitCode != 0 {
			return false
		}
		online, total := cli.ParseBricksOnline(output)
		return total == expected && online == total
	}, func(attempt int) {
		logger.Info("Waiting for bricks to come online... (%d/%d)", attempt, s.Poller.Budget)
	})

	if state == libs.TimedOut {
		return libs.NewStepError("volume convergence", libs.ExitConvergence,
			"not all %d bricks came online within %d ticks", expected, s.Poller.Budget)
	}

	logger.Info("Volume '%s' started, all bricks online", volumeName)
	return nil
}

// MountVolume mounts the started volume on every node and records the fstab
// entry for it. The coordinator serves the mount; gluster's client protocol
// fans out to the right bricks regardless of which server is named.
func MountVolume(s *Session) error {
	logger := libs.GetLogger("volume")
	coordinator := s.Coordinator()
	volumeName := s.Cfg.Gluster.VolumeName
	mountPoint := s.Cfg.Gluster.VolumeMount

	logger.InfoBannerf("Mounting volume '%s' at %s on all nodes", volumeName, mountPoint)
	for _, host := range s.Hosts {
		logger.Info("Mounting on %s...", host.Hostname)

		mountedOutput, exitCode := s.Executor.Execute(host.Hostname, cli.MountedCheck(mountPoint), nil)
		if exitCode != nil && cli.ParseYes(mountedOutput) {
			logger.Info("%s: volume already mounted", host.Hostname)
			continue
		}

		fstabCmd := cli.GlusterFstabEntry(coordinator.Hostname, volumeName, mountPoint)
		if _, exitCode := s.Executor.Execute(host.Hostname, fstabCmd, nil); exitCode == nil || *exitCode != 0 {
			return libs.NewStepError("volume mount", libs.ExitMount,
				"failed to record fstab entry on %s", host.Hostname)
		}

		mountCmd := cli.GlusterMount(coordinator.Hostname, volumeName, mountPoint)
		mountOutput, exitCode := s.Executor.Execute(host.Hostname, mountCmd, nil)
		if exitCode == nil || *exitCode != 0 {
			return libs.NewStepError("volume mount", libs.ExitMount,
				"mount failed on %s: %s", host.Hostname, mountOutput)
		}

		verifyOutput, exitCode := s.Executor.Execute(host.Hostname, cli.MountedCheck(mountPoint), nil)
		if exitCode == nil || !cli.ParseYes(verifyOutput) {
			return libs.NewStepError("volume mount", libs.ExitMount,
				"mount verification failed on %s", host.Hostname)
		}
		logger.Info("%s: volume mounted", host.Hostname)
	}

	return nil
}
