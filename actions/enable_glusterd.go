package actions

import (
	"time"

	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// EnableGlusterdAction enables and starts the glusterd management daemon
type EnableGlusterdAction struct {
	*BaseAction
}

func NewEnableGlusterdAction(executor libs.RemoteExecutor, host libs.HostEntry, device string, cfg *libs.ClusterConfig) Action {
	return &EnableGlusterdAction{
		BaseAction: &BaseAction{Executor: executor, Host: host, Device: device, Cfg: cfg},
	}
}

func (a *EnableGlusterdAction) Description() string {
	return "glusterd service enablement"
}

func (a *EnableGlusterdAction) Execute() bool {
	logger := libs.GetLogger("enable_glusterd")
	glusterd := cli.NewSystemCtl("glusterd")

	enableOutput, exitCode := a.Executor.Execute(a.Host.Hostname, glusterd.EnableNow(), libs.IntPtr(60))
	if exitCode == nil || *exitCode != 0 {
		logger.Error("Failed to enable glusterd on %s: %s", a.Host.Hostname, enableOutput)
		return false
	}

	time.Sleep(time.Duration(a.Cfg.Waits.ServiceStart) * time.Second)

	activeOutput, _ := a.Executor.Execute(a.Host.Hostname, glusterd.IsActive(), libs.IntPtr(10))
	if !cli.ParseIsActive(activeOutput) {
		logger.Error("%s: glusterd is not running: %s", a.Host.Hostname, activeOutput)
		return false
	}

	logger.Info("%s: glusterd enabled and running", a.Host.Hostname)
	return true
}
