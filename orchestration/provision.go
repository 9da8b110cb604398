package orchestration

import (
	"github.com/jeffvance/glusterfs-cluster-install/actions"
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// ProvisionHosts runs the per-host preparation sequence, one host at a time,
// in host-list order. Any action failure aborts the whole run: a partially
// provisioned fleet is the operator's signal to inspect, clean up, and rerun.
// After each host's sequence the host is checked for a pending reboot
// requirement (kernel or fuse updates pulled in by the package step) and
// recorded in the session's reboot set.
func ProvisionHosts(s *Session) error {
	logger := libs.GetLogger("provision")

	for i, host := range s.Hosts {
		logger.InfoBannerf("Provisioning %s (%d/%d)", host, i+1, len(s.Hosts))

		for _, actionName := range actions.ProvisionSequence {
			action, err := actions.GetAction(actionName, s.Executor, host, s.Device, s.Cfg)
			if err != nil {
				return libs.NewStepError("provision", libs.ExitProvision, "%v", err)
			}
			logger.Info("[%s] %s...", host.Hostname, action.Description())
			if !action.Execute() {
				return libs.NewStepError("provision", libs.ExitProvision,
					"%s failed on %s", action.Description(), host.Hostname)
			}
		}

		if output, exitCode := s.Executor.Execute(host.Hostname, cli.MarkerWrite(s.RunID), libs.IntPtr(10)); exitCode == nil || *exitCode != 0 {
			logger.Warning("Could not record run marker on %s: %s", host.Hostname, output)
		}

		rebootOutput, exitCode := s.Executor.Execute(host.Hostname, cli.NewYum().NeedsRestarting(), libs.IntPtr(30))
		if exitCode != nil && cli.ParseNeedsRestarting(rebootOutput) {
			logger.Info("%s requires a reboot before the volume goes live", host.Hostname)
			s.Reboots.Require(host.Hostname)
		}
	}

	logger.Info("All %d hosts provisioned", len(s.Hosts))
	return nil
}
