package actions

import (
	"fmt"
	"strings"

	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// ActionFactory builds an action bound to one host
type ActionFactory func(executor libs.RemoteExecutor, host libs.HostEntry, device string, cfg *libs.ClusterConfig) Action

var actionRegistry = make(map[string]ActionFactory)

// RegisterAction registers an action factory
func RegisterAction(name string, factory ActionFactory) {
	actionRegistry[normalizeActionName(name)] = factory
}

// GetAction creates an action instance by name
func GetAction(actionName string, executor libs.RemoteExecutor, host libs.HostEntry, device string, cfg *libs.ClusterConfig) (Action, error) {
	normalized := normalizeActionName(actionName)
	if factory, ok := actionRegistry[normalized]; ok {
		return factory(executor, host, device, cfg), nil
	}
	return nil, fmt.Errorf("action '%s' not found. Available actions: %v", actionName, getAvailableActions())
}

func normalizeActionName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	return strings.TrimSpace(name)
}

func getAvailableActions() []string {
	actions := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		actions = append(actions, name)
	}
	return actions
}
