package actions

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// SyncTimeAction installs and enables chrony. Replica healing relies on
// reasonably synchronized clocks across the pool.
type SyncTimeAction struct {
	*BaseAction
}

func NewSyncTimeAction(executor libs.RemoteExecutor, host libs.HostEntry, device string, cfg *libs.ClusterConfig) Action {
	return &SyncTimeAction{
		BaseAction: &BaseAction{Executor: executor, Host: host, Device: device, Cfg: cfg},
	}
}

func (a *SyncTimeAction) Description() string {
	return "time synchronization"
}

func (a *SyncTimeAction) Execute() bool {
	logger := libs.GetLogger("sync_time")
	if !a.Cfg.Features.SyncTime {
		logger.Info("%s: time sync disabled by feature flag, skipping", a.Host.Hostname)
		return true
	}

	yum := cli.NewYum()
	checkOutput, _ := a.Executor.Execute(a.Host.Hostname, yum.IsInstalledCheck("chrony"), libs.IntPtr(30))
	if !cli.ParseIsInstalled(checkOutput) {
		installOutput, exitCode := a.Executor.Execute(a.Host.Hostname, yum.Install([]string{"chrony"}), libs.IntPtr(300))
		if exitCode == nil || *exitCode != 0 {
			logger.Error("Failed to install chrony on %s: %s", a.Host.Hostname, installOutput)
			return false
		}
	}

	enableOutput, exitCode := a.Executor.Execute(a.Host.Hostname, cli.NewSystemCtl("chronyd").EnableNow(), libs.IntPtr(60))
	if exitCode == nil || *exitCode != 0 {
		logger.Error("Failed to enable chronyd on %s: %s", a.Host.Hostname, enableOutput)
		return false
	}

	logger.Info("%s: time synchronization enabled", a.Host.Hostname)
	return true
}
