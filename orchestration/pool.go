package orchestration

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// FormTrustedPool probes every other host into the trusted pool from the
// coordinator node, then polls the coordinator's peer status until all peers
// report "Peer in Cluster (Connected)" or the tick budget runs out. Peer
// probe is asynchronous on the gluster side, which is why acceptance of the
// probe is not the same as membership.
func FormTrustedPool(s *Session) error {
	logger := libs.GetLogger("pool")
	coordinator := s.Coordinator()
	gluster := cli.NewGluster()

	logger.InfoBanner("Forming trusted storage pool")
	for _, host := range s.Hosts[1:] {
		logger.Info("Probing %s into the pool...", host)
		output, exitCode := s.Executor.Execute(coordinator.Hostname, gluster.PeerProbe(host.Hostname), nil)
		if exitCode == nil {
			return libs.NewStepError("pool formation", libs.ExitPoolForm,
				"lost connection to coordinator %s during peer probe", coordinator.Hostname)
		}
		if *exitCode != 0 && !cli.ParsePeerProbeAccepted(output) {
			return libs.NewStepError("pool formation", libs.ExitPoolForm,
				"peer probe of %s rejected: %s", host.Hostname, output)
		}
	}

	expected := len(s.Hosts) - 1
	if expected == 0 {
		logger.Info("Single-node pool, nothing to converge")
		return nil
	}

	logger.Info("Waiting for %d peer(s) to join the pool...", expected)
	state := s.Poller.WaitNotify(func() bool {
		output, exitCode := s.Executor.Execute(coordinator.Hostname, gluster.PeerStatus(), nil)
		if exitCode == nil || *exitCode != 0 {
			return false
		}
		return cli.ParseConnectedPeers(output) >= expected
	}, func(attempt int) {
		logger.Info("Waiting for peers to connect... (%d/%d)", attempt, s.Poller.Budget)
	})

	if state == libs.TimedOut {
		return libs.NewStepError("pool convergence", libs.ExitConvergence,
			"pool did not reach %d connected peers within %d ticks", expected, s.Poller.Budget)
	}

	logger.Info("Trusted pool formed: %d node(s)", len(s.Hosts))
	return nil
}
