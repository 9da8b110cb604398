package actions

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// ProvisionBrickAction formats the brick device and mounts it. Already-mounted
// devices are left alone so a rerun after a mid-run failure does not destroy
// an existing brick filesystem.
type ProvisionBrickAction struct {
	*BaseAction
}

func NewProvisionBrickAction(executor libs.RemoteExecutor, host libs.HostEntry, device string, cfg *libs.ClusterConfig) Action {
	return &ProvisionBrickAction{
		BaseAction: &BaseAction{Executor: executor, Host: host, Device: device, Cfg: cfg},
	}
}

func (a *ProvisionBrickAction) Description() string {
	return "brick disk provisioning"
}

func (a *ProvisionBrickAction) Execute() bool {
	logger := libs.GetLogger("provision_brick")
	disk := cli.NewDisk(a.Device)
	brickMount := a.Cfg.Gluster.BrickMount

	existsOutput, exitCode := a.Executor.Execute(a.Host.Hostname, disk.ExistsCheck(), libs.IntPtr(10))
	if exitCode == nil || !cli.ParseYes(existsOutput) {
		logger.Error("Block device %s not found on %s", a.Device, a.Host.Hostname)
		return false
	}

	mountedOutput, _ := a.Executor.Execute(a.Host.Hostname, disk.IsMountedCheck(brickMount), libs.IntPtr(10))
	if cli.ParseYes(mountedOutput) {
		logger.Info("%s already mounted at %s on %s, skipping mkfs", a.Device, brickMount, a.Host.Hostname)
	} else {
		logger.Info("Creating XFS filesystem on %s:%s...", a.Host.Hostname, a.Device)
		mkfsOutput, exitCode := a.Executor.Execute(a.Host.Hostname, disk.MkfsXFS(), libs.IntPtr(300))
		if exitCode == nil || *exitCode != 0 {
			logger.Error("mkfs failed on %s: %s", a.Host.Hostname, mkfsOutput)
			return false
		}
		mountOutput, exitCode := a.Executor.Execute(a.Host.Hostname, disk.Mount(brickMount), libs.IntPtr(60))
		if exitCode == nil || *exitCode != 0 {
			logger.Error("Failed to mount %s at %s on %s: %s", a.Device, brickMount, a.Host.Hostname, mountOutput)
			return false
		}
	}

	if _, exitCode := a.Executor.Execute(a.Host.Hostname, disk.FstabEntry(brickMount), libs.IntPtr(10)); exitCode == nil || *exitCode != 0 {
		logger.Error("Failed to record fstab entry for %s on %s", brickMount, a.Host.Hostname)
		return false
	}

	brickDirOutput, exitCode := a.Executor.Execute(a.Host.Hostname, cli.MkdirCmd(a.Cfg.BrickDir(), "755"), libs.IntPtr(10))
	if exitCode == nil || *exitCode != 0 {
		logger.Error("Failed to create brick directory %s on %s: %s", a.Cfg.BrickDir(), a.Host.Hostname, brickDirOutput)
		return false
	}

	logger.Info("%s: brick ready at %s", a.Host.Hostname, a.Cfg.BrickDir())
	return true
}
