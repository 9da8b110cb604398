package orchestration

import (
	"github.com/google/uuid"

	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// Session carries everything one deployment run owns: the validated host
// list, the executor, the poller, and the set of hosts still needing a
// reboot. All state that the shell-era tooling kept in globals lives here and
// is threaded explicitly through the phases.
type Session struct {
	RunID    string
	Cfg      *libs.ClusterConfig
	Executor libs.RemoteExecutor
	Hosts    []libs.HostEntry
	Device   string
	Poller   *libs.Poller
	Reboots  *RebootCoordinator
}

// NewSession creates a session for one deployment run
func NewSession(cfg *libs.ClusterConfig, executor libs.RemoteExecutor, hosts []libs.HostEntry, device string) *Session {
	return &Session{
		RunID:    uuid.NewString(),
		Cfg:      cfg,
		Executor: executor,
		Hosts:    hosts,
		Device:   device,
		Poller:   libs.NewPoller(&cfg.Waits),
		Reboots:  NewRebootCoordinator(executor, &cfg.Waits),
	}
}

// Coordinator returns the node all gluster CLI commands are issued from: the
// first host in the list.
func (s *Session) Coordinator() libs.HostEntry {
	return s.Hosts[0]
}

// BrickList returns the ordered brick specs for volume creation. Host order
// is preserved so consecutive bricks pair into the intended replica sets.
func (s *Session) BrickList() []string {
	bricks := make([]string, len(s.Hosts))
	for i, host := range s.Hosts {
		bricks[i] = host.Hostname + ":" + s.Cfg.BrickDir()
	}
	return bricks
}
