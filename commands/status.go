package commands

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
	"github.com/jeffvance/glusterfs-cluster-install/verification"
)

// Status reports cluster health without mutating anything
type Status struct {
	cfg      *libs.ClusterConfig
	executor libs.RemoteExecutor
}

// NewStatus creates a new Status command
func NewStatus(cfg *libs.ClusterConfig, executor libs.RemoteExecutor) *Status {
	return &Status{cfg: cfg, executor: executor}
}

// Run executes the status command
func (s *Status) Run() error {
	logger := libs.GetLogger("status")
	defer s.executor.Disconnect()

	hosts, verr := libs.ParseHostsFile(s.cfg.HostsFile, s.cfg.Gluster.ReplicaCount)
	if verr != nil {
		return verr
	}
	coordinator := hosts[0]
	gluster := cli.NewGluster()

	logger.InfoBanner("Cluster Status")

	peerOutput, exitCode := s.executor.Execute(coordinator.Hostname, gluster.PeerStatus(), nil)
	if exitCode == nil {
		return libs.NewStepError("status", libs.ExitValidation,
			"cannot reach coordinator %s", coordinator.Hostname)
	}
	logger.Info("Peer status:")
	logger.Info("%s", peerOutput)

	volumeOutput, _ := s.executor.Execute(coordinator.Hostname, gluster.VolumeStatus(s.cfg.Gluster.VolumeName), nil)
	logger.Info("Volume status:")
	logger.Info("%s", volumeOutput)

	verification.VerifyCluster(s.cfg, s.executor, hosts)
	return nil
}
