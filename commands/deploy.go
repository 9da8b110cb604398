package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jeffvance/glusterfs-cluster-install/libs"
	"github.com/jeffvance/glusterfs-cluster-install/orchestration"
	"github.com/jeffvance/glusterfs-cluster-install/verification"
)

// Deploy handles the full cluster bootstrap run
type Deploy struct {
	cfg      *libs.ClusterConfig
	executor libs.RemoteExecutor
}

// NewDeploy creates a new Deploy command
func NewDeploy(cfg *libs.ClusterConfig, executor libs.RemoteExecutor) *Deploy {
	return &Deploy{cfg: cfg, executor: executor}
}

// Run executes the deployment: preflight, per-host provisioning, reboots,
// pool formation, volume creation, and mount. device is the brick block
// device present on every node.
func (d *Deploy) Run(device string, autoConfirm bool) error {
	logger := libs.GetLogger("deploy")
	defer d.executor.Disconnect()

	hosts, verr := orchestration.Preflight(d.cfg.HostsFile, d.cfg.Gluster.ReplicaCount, d.executor)
	if verr != nil {
		logger.Error("Preflight failed:")
		for _, problem := range verr.Problems {
			logger.Error("  %s", problem)
		}
		return verr
	}

	session := orchestration.NewSession(d.cfg, d.executor, hosts, device)
	logger.InfoBannerf("Deploying GlusterFS cluster (run %s)", session.RunID)
	logger.Info("Volume: %s  replica: %d  brick device: %s", d.cfg.Gluster.VolumeName, d.cfg.Gluster.ReplicaCount, device)
	for i, set := range libs.ReplicaSets(hosts, d.cfg.Gluster.ReplicaCount) {
		names := make([]string, len(set))
		for j, h := range set {
			names[j] = h.Hostname
		}
		logger.Info("Replica set %d: %s", i, strings.Join(names, ", "))
	}

	controlHost := localHostname()

	if err := orchestration.ProvisionHosts(session); err != nil {
		logger.LogTraceback(err)
		return err
	}

	// Kernel/fuse updates must land before bricks go live
	session.Reboots.RebootAndWait(controlHost)

	if err := orchestration.FormTrustedPool(session); err != nil {
		return err
	}
	if err := orchestration.CreateVolume(session); err != nil {
		return err
	}
	if err := orchestration.MountVolume(session); err != nil {
		return err
	}

	if !verification.VerifyCluster(d.cfg, d.executor, hosts) {
		logger.Warning("Deployment finished but health checks reported problems")
	}

	if session.Reboots.Needs(controlHost) {
		return d.handleControlReboot(session, controlHost, autoConfirm)
	}

	logger.InfoBanner("Cluster deployment complete")
	return nil
}

// handleControlReboot deals with the deferred reboot of the node this tool is
// running on. Rebooting it kills the process, so it only happens on explicit
// confirmation (or --yes); otherwise the run exits with the dedicated
// "reboot required" code for the caller to act on.
func (d *Deploy) handleControlReboot(s *orchestration.Session, controlHost string, autoConfirm bool) error {
	logger := libs.GetLogger("deploy")
	logger.Warning("The control node %s still requires a reboot", controlHost)

	if !autoConfirm {
		fmt.Printf("Reboot control node %s now? [y/N]: ", controlHost)
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Scan()
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			logger.Warning("Reboot the control node manually to finish the deployment")
			return libs.NewStepError("deploy", libs.ExitRebootRequired,
				"control node %s requires a reboot", controlHost)
		}
	}

	logger.InfoBanner("Cluster deployment complete, rebooting control node")
	libs.CloseLogFile()
	s.Reboots.RebootControl(controlHost)
	return nil
}

// localHostname returns the lower-cased short hostname of the control node,
// used to match it against hosts-file entries.
func localHostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	if idx := strings.Index(name, "."); idx > 0 {
		name = name[:idx]
	}
	return strings.ToLower(name)
}
