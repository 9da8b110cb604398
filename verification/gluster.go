package verification

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// VerifyCluster runs the read-only health checks against a deployed cluster:
// pool membership, volume started, all bricks online, and the client mount
// present on every node. It never mutates remote state.
func VerifyCluster(cfg *libs.ClusterConfig, executor libs.RemoteExecutor, hosts []libs.HostEntry) bool {
	logger := libs.GetLogger("verify_gluster")
	if len(hosts) == 0 {
		logger.Printf("No hosts to verify")
		return false
	}
	coordinator := hosts[0]
	gluster := cli.NewGluster()
	volumeName := cfg.Gluster.VolumeName
	healthy := true

	logger.Printf("Verifying gluster cluster health...")

	poolOutput, exitCode := executor.Execute(coordinator.Hostname, gluster.PoolList(), nil)
	if exitCode == nil || *exitCode != 0 {
		logger.Printf("✗ Could not query pool membership on %s", coordinator.Hostname)
		healthy = false
	} else if size := cli.ParsePoolSize(poolOutput); size != len(hosts) {
		logger.Printf("✗ Pool has %d member(s), expected %d", size, len(hosts))
		healthy = false
	} else {
		logger.Printf("✓ Trusted pool has all %d members", len(hosts))
	}

	infoOutput, exitCode := executor.Execute(coordinator.Hostname, gluster.VolumeInfo(volumeName), nil)
	if exitCode == nil || *exitCode != 0 || !cli.ParseVolumeStarted(infoOutput) {
		logger.Printf("✗ Volume '%s' is not started", volumeName)
		healthy = false
	} else {
		logger.Printf("✓ Volume '%s' is started", volumeName)
	}

	statusOutput, exitCode := executor.Execute(coordinator.Hostname, gluster.VolumeStatus(volumeName), nil)
	if exitCode == nil || *exitCode != 0 {
		logger.Printf("✗ Could not query volume status")
		healthy = false
	} else {
		online, total := cli.ParseBricksOnline(statusOutput)
		if total != len(hosts) || online != total {
			logger.Printf("✗ Bricks online: %d/%d (expected %d)", online, total, len(hosts))
			healthy = false
		} else {
			logger.Printf("✓ All %d bricks online", total)
		}
	}

	for _, host := range hosts {
		mountOutput, exitCode := executor.Execute(host.Hostname, cli.MountedCheck(cfg.Gluster.VolumeMount), nil)
		if exitCode == nil || !cli.ParseYes(mountOutput) {
			logger.Printf("✗ %s: volume not mounted at %s", host.Hostname, cfg.Gluster.VolumeMount)
			healthy = false
		}
	}
	if healthy {
		logger.Printf("✓ Volume mounted on all %d nodes", len(hosts))
		logger.Printf("✓ All cluster health checks passed")
	}
	return healthy
}
