package commands

import (
	"github.com/jeffvance/glusterfs-cluster-install/libs"
	"github.com/jeffvance/glusterfs-cluster-install/orchestration"
)

// Probe runs only the preflight: hosts file validation plus connectivity
type Probe struct {
	cfg      *libs.ClusterConfig
	executor libs.RemoteExecutor
}

// NewProbe creates a new Probe command
func NewProbe(cfg *libs.ClusterConfig, executor libs.RemoteExecutor) *Probe {
	return &Probe{cfg: cfg, executor: executor}
}

// Run executes the probe command
func (p *Probe) Run() error {
	logger := libs.GetLogger("probe")
	defer p.executor.Disconnect()

	hosts, verr := orchestration.Preflight(p.cfg.HostsFile, p.cfg.Gluster.ReplicaCount, p.executor)
	if verr != nil {
		logger.Error("Preflight failed:")
		for _, problem := range verr.Problems {
			logger.Error("  %s", problem)
		}
		return verr
	}

	for i, set := range libs.ReplicaSets(hosts, p.cfg.Gluster.ReplicaCount) {
		for _, host := range set {
			logger.Info("replica set %d: %s", i, host)
		}
	}
	logger.Info("Preflight passed: %d host(s) validated and reachable", len(hosts))
	return nil
}
