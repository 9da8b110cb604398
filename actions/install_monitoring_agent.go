package actions

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// InstallMonitoringAgentAction installs the optional node monitoring agent.
// Off by default; this path shipped disabled in earlier releases and is now
// an explicit feature flag.
type InstallMonitoringAgentAction struct {
	*BaseAction
}

func NewInstallMonitoringAgentAction(executor libs.RemoteExecutor, host libs.HostEntry, device string, cfg *libs.ClusterConfig) Action {
	return &InstallMonitoringAgentAction{
		BaseAction: &BaseAction{Executor: executor, Host: host, Device: device, Cfg: cfg},
	}
}

func (a *InstallMonitoringAgentAction) Description() string {
	return "monitoring agent installation"
}

func (a *InstallMonitoringAgentAction) Execute() bool {
	logger := libs.GetLogger("monitoring_agent")
	if !a.Cfg.Features.MonitoringAgent {
		logger.Info("%s: monitoring agent disabled by feature flag, skipping", a.Host.Hostname)
		return true
	}

	yum := cli.NewYum()
	installOutput, exitCode := a.Executor.Execute(a.Host.Hostname, yum.Install([]string{"gluster-nagios-addons"}), libs.IntPtr(300))
	if exitCode == nil || *exitCode != 0 {
		logger.Error("Failed to install monitoring agent on %s: %s", a.Host.Hostname, installOutput)
		return false
	}

	logger.Info("%s: monitoring agent installed", a.Host.Hostname)
	return true
}
