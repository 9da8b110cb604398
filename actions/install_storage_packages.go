package actions

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

var storagePackages = []string{"glusterfs", "glusterfs-server", "glusterfs-fuse", "xfsprogs"}

// InstallStoragePackagesAction installs the gluster server/client packages
type InstallStoragePackagesAction struct {
	*BaseAction
}

func NewInstallStoragePackagesAction(executor libs.RemoteExecutor, host libs.HostEntry, device string, cfg *libs.ClusterConfig) Action {
	return &InstallStoragePackagesAction{
		BaseAction: &BaseAction{Executor: executor, Host: host, Device: device, Cfg: cfg},
	}
}

func (a *InstallStoragePackagesAction) Description() string {
	return "storage package installation"
}

func (a *InstallStoragePackagesAction) Execute() bool {
	logger := libs.GetLogger("install_storage")
	yum := cli.NewYum()

	checkOutput, _ := a.Executor.Execute(a.Host.Hostname, yum.IsInstalledCheck("glusterfs-server"), libs.IntPtr(30))
	if cli.ParseIsInstalled(checkOutput) {
		logger.Info("%s: glusterfs-server already installed, skipping", a.Host.Hostname)
		return true
	}

	logger.Info("Installing storage packages on %s...", a.Host.Hostname)
	installOutput, exitCode := a.Executor.Execute(a.Host.Hostname, yum.Install(storagePackages), libs.IntPtr(600))
	if exitCode == nil || *exitCode != 0 {
		logger.Error("Failed to install storage packages on %s: %s", a.Host.Hostname, installOutput)
		return false
	}

	verifyOutput, _ := a.Executor.Execute(a.Host.Hostname, yum.IsInstalledCheck("glusterfs-server"), libs.IntPtr(30))
	if !cli.ParseIsInstalled(verifyOutput) {
		logger.Error("glusterfs-server not present after install on %s", a.Host.Hostname)
		return false
	}

	logger.Info("%s: storage packages installed", a.Host.Hostname)
	return true
}
