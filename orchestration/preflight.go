package orchestration

import (
	"github.com/jeffvance/glusterfs-cluster-install/cli"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// Preflight parses and validates the hosts file, then verifies passwordless
// SSH to every well-formed entry. Syntax problems and unreachable hosts are
// batched into one ValidationError so the operator fixes everything in a
// single pass; nothing on any remote host is mutated before this succeeds.
func Preflight(path string, replicaCount int, executor libs.RemoteExecutor) ([]libs.HostEntry, *libs.ValidationError) {
	logger := libs.GetLogger("preflight")

	entries, verr := libs.ParseHostsFile(path, replicaCount)
	if verr == nil {
		verr = &libs.ValidationError{}
	}

	logger.Info("Checking passwordless SSH to %d host(s)...", len(entries))
	for _, host := range entries {
		output, exitCode := executor.Execute(host.Hostname, cli.ProbeCmd(), libs.IntPtr(15))
		if exitCode == nil {
			verr.Add("host %s: passwordless SSH not available", host)
			continue
		}
		if *exitCode != 0 {
			verr.Add("host %s: probe command failed with status %d: %s", host, *exitCode, output)
			continue
		}
		logger.Debug("%s reachable", host)
	}

	if !verr.Empty() {
		return nil, verr
	}

	logger.Info("All %d hosts reachable, %d replica set(s)", len(entries), len(entries)/replicaCount)
	return entries, nil
}
