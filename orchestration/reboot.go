package orchestration

import (
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

var errStillRebooting = libs.NewStepError("reboot", libs.ExitProvision, "hosts still rebooting")

// RebootCoordinator tracks which hosts need a reboot and drives them through
// it. Reboots are dispatched fire-and-forget to every pending host, then one
// joint polling loop probes reachability at a fixed interval, unbounded,
// removing each host from the pending set as it answers. The control node is
// never rebooted here; its reboot is deferred to the very end of the run.
type RebootCoordinator struct {
	Executor libs.RemoteExecutor
	Interval time.Duration
	Timer    backoff.Timer // nil uses the wall clock; tests inject a fake

	pending map[string]bool
	order   []string
}

// NewRebootCoordinator creates a coordinator with an empty pending set
func NewRebootCoordinator(executor libs.RemoteExecutor, waits *libs.WaitsConfig) *RebootCoordinator {
	return &RebootCoordinator{
		Executor: executor,
		Interval: time.Duration(waits.RebootProbeInterval) * time.Second,
		pending:  make(map[string]bool),
	}
}

// Require adds a host to the pending reboot set
func (r *RebootCoordinator) Require(host string) {
	if !r.pending[host] {
		r.pending[host] = true
		r.order = append(r.order, host)
	}
}

// Pending returns the pending hosts in the order they were added
func (r *RebootCoordinator) Pending() []string {
	hosts := make([]string, 0, len(r.pending))
	for _, host := range r.order {
		if r.pending[host] {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// Needs reports whether host is in the pending set
func (r *RebootCoordinator) Needs(host string) bool {
	return r.pending[host]
}

// RebootAndWait reboots every pending host except controlHost and blocks
// until all of them have gone through the reboot and answer probes again.
// controlHost, if pending, stays in the set for the caller to handle.
//
// The reboot command returns before the host goes down, so a host answering
// a probe right after dispatch is still on its old boot. A host only counts
// as back once its kernel boot id changed, or a probe failed before one
// succeeded.
func (r *RebootCoordinator) RebootAndWait(controlHost string) {
	logger := libs.GetLogger("reboot")

	bootIDs := make(map[string]string)
	var waiting []string
	for _, host := range r.Pending() {
		if host == controlHost {
			logger.Info("Deferring reboot of control node %s to the end of the run", host)
			continue
		}
		if output, exitCode := r.Executor.Execute(host, cli.BootIDCmd(), libs.IntPtr(10)); exitCode != nil && *exitCode == 0 {
			bootIDs[host] = strings.TrimSpace(output)
		}
		logger.Info("Rebooting %s...", host)
		r.Executor.Execute(host, cli.RebootCmd(), libs.IntPtr(15))
		waiting = append(waiting, host)
	}
	if len(waiting) == 0 {
		return
	}

	// Cached connections are about to die with the hosts
	r.Executor.Disconnect()

	logger.Info("Waiting for %d host(s) to come back...", len(waiting))
	down := make(map[string]bool, len(waiting))
	for _, host := range waiting {
		down[host] = true
	}
	sawDown := make(map[string]bool, len(waiting))

	op := func() error {
		for _, host := range waiting {
			if !down[host] {
				continue
			}
			output, exitCode := r.Executor.Execute(host, cli.BootIDCmd(), libs.IntPtr(10))
			if exitCode == nil || *exitCode != 0 {
				sawDown[host] = true
				continue
			}
			bootID := strings.TrimSpace(output)
			if !sawDown[host] && (bootIDs[host] == "" || bootID == bootIDs[host]) {
				// Still on the old boot, shutdown has not happened yet
				continue
			}
			logger.Info("%s is back", host)
			down[host] = false
			delete(r.pending, host)
		}
		for _, host := range waiting {
			if down[host] {
				return errStillRebooting
			}
		}
		return nil
	}
	notify := func(err error, next time.Duration) {
		remaining := 0
		for _, host := range waiting {
			if down[host] {
				remaining++
			}
		}
		logger.Info("Still waiting for %d host(s)...", remaining)
	}

	// Constant interval, no retry cap: a host that never comes back holds the
	// run until the operator intervenes.
	backoff.RetryNotifyWithTimer(op, backoff.NewConstantBackOff(r.Interval), notify, r.Timer)
	logger.Info("All rebooted hosts are reachable again")
}

// RebootControl issues the deferred control node reboot. The process is
// expected to die with the host; the caller logs before invoking this.
func (r *RebootCoordinator) RebootControl(controlHost string) {
	r.Executor.Execute(controlHost, cli.RebootCmd(), libs.IntPtr(15))
	delete(r.pending, controlHost)
}
