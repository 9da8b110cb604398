package actions

import (
	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// Action is the base interface for per-host provisioning actions
type Action interface {
	Execute() bool
	Description() string
}

// BaseAction provides base functionality for actions
type BaseAction struct {
	Executor libs.RemoteExecutor
	Host     libs.HostEntry
	Device   string // brick block device, e.g. /dev/sdb
	Cfg      *libs.ClusterConfig
}

// Description returns the action description
func (b *BaseAction) Description() string {
	return ""
}
