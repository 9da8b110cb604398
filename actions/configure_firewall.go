package actions

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// ConfigureFirewallAction opens the gluster management and brick ports
type ConfigureFirewallAction struct {
	*BaseAction
}

func NewConfigureFirewallAction(executor libs.RemoteExecutor, host libs.HostEntry, device string, cfg *libs.ClusterConfig) Action {
	return &ConfigureFirewallAction{
		BaseAction: &BaseAction{Executor: executor, Host: host, Device: device, Cfg: cfg},
	}
}

func (a *ConfigureFirewallAction) Description() string {
	return "firewall configuration"
}

func (a *ConfigureFirewallAction) Execute() bool {
	logger := libs.GetLogger("configure_firewall")
	if !a.Cfg.Features.ConfigureFirewall {
		logger.Info("%s: firewall configuration disabled by feature flag, skipping", a.Host.Hostname)
		return true
	}

	// One brick per node in this layout; leave headroom for later add-brick
	rules := cli.GlusterRules(10).Apply()
	output, exitCode := a.Executor.Execute(a.Host.Hostname, rules, libs.IntPtr(60))
	if exitCode == nil || *exitCode != 0 {
		logger.Error("Failed to apply firewall rules on %s: %s", a.Host.Hostname, output)
		return false
	}

	logger.Info("%s: gluster ports opened", a.Host.Hostname)
	return true
}
