package cli

import (
	"fmt"
	"strings"
)

// Disk builds brick-device preparation commands for one block device
type Disk struct {
	device string
}

// NewDisk creates a builder for the given block device (e.g. /dev/sdb)
func NewDisk(device string) *Disk {
	return &Disk{device: device}
}

// ExistsCheck generates a yes/no probe for the block device
func (d *Disk) ExistsCheck() string {
	return fmt.Sprintf("test -b %s && echo yes || echo no", d.device)
}

// MkfsXFS generates the brick filesystem creation command. Gluster bricks use
// 512-byte inodes so extended attributes stay inside the inode.
func (d *Disk) MkfsXFS() string {
	return fmt.Sprintf("mkfs -t xfs -i size=512 -f %s 2>&1", d.device)
}

// IsMountedCheck generates a yes/no probe for the device being mounted at path
func (d *Disk) IsMountedCheck(path string) string {
	return fmt.Sprintf("mount | grep -q '^%s on %s ' && echo yes || echo no", d.device, path)
}

// Mount generates mount-point creation plus mount of the brick filesystem
func (d *Disk) Mount(path string) string {
	return fmt.Sprintf("mkdir -p %s && mount -t xfs %s %s 2>&1", path, d.device, path)
}

// FstabEntry generates the idempotent fstab append for the brick mount
func (d *Disk) FstabEntry(path string) string {
	entry := fmt.Sprintf("%s %s xfs defaults 0 0", d.device, path)
	return fmt.Sprintf("grep -q '^%s ' /etc/fstab || echo '%s' >> /etc/fstab", d.device, entry)
}

// ParseYes parses yes/no probe output
func ParseYes(output string) bool {
	return strings.TrimSpace(output) == "yes"
}

// MkdirCmd generates directory creation with mode
func MkdirCmd(path string, mode string) string {
	return fmt.Sprintf("mkdir -p %s && chmod %s %s 2>&1", path, mode, path)
}

// GlusterFstabEntry generates the idempotent fstab append for the glusterfs
// client mount of volume served by server.
func GlusterFstabEntry(server, volume, path string) string {
	entry := fmt.Sprintf("%s:/%s %s glusterfs defaults,_netdev 0 0", server, volume, path)
	return fmt.Sprintf("grep -q ' %s glusterfs ' /etc/fstab || echo '%s' >> /etc/fstab", path, entry)
}

// GlusterMount generates mount-point creation plus the glusterfs client mount
func GlusterMount(server, volume, path string) string {
	return fmt.Sprintf("mkdir -p %s && mount -t glusterfs %s:/%s %s 2>&1", path, server, volume, path)
}

// MountedCheck generates a yes/no probe for any glusterfs mount at path
func MountedCheck(path string) string {
	return fmt.Sprintf("mount | grep '%s' | grep -q gluster && echo yes || echo no", path)
}

// Unmount generates a tolerant unmount of path
func Unmount(path string) string {
	return fmt.Sprintf("umount %s 2>&1 || true", path)
}
