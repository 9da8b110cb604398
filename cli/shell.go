package cli

import "fmt"

// ProbeCmd is the no-interaction command used for reachability checks; any
// zero exit status means the host accepts passwordless SSH.
func ProbeCmd() string {
	return "true"
}

// RebootCmd generates a detached reboot so the SSH session returns before the
// host goes down. The delay gives sshd time to flush the channel.
func RebootCmd() string {
	return "nohup sh -c 'sleep 2; reboot' >/dev/null 2>&1 & echo rebooting"
}

// BootIDCmd generates the kernel boot id query. The id changes on every
// boot, which distinguishes a rebooted host from one that has not gone down
// yet.
func BootIDCmd() string {
	return "cat /proc/sys/kernel/random/boot_id"
}

// HostnameCmd generates the short-hostname query
func HostnameCmd() string {
	return "hostname -s"
}

// MarkerWrite generates the run-marker write recording which run touched the
// host, used by cleanup to find leftovers from earlier partial runs.
func MarkerWrite(runID string) string {
	return fmt.Sprintf("mkdir -p /var/lib/gluster-install && echo %s > /var/lib/gluster-install/run-id", runID)
}

// MarkerRead generates the run-marker read
func MarkerRead() string {
	return "cat /var/lib/gluster-install/run-id 2>/dev/null || true"
}
