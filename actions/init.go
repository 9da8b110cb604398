package actions

func init() {
	// Register all actions
	RegisterAction("storage package installation", NewInstallStoragePackagesAction)
	RegisterAction("brick disk provisioning", NewProvisionBrickAction)
	RegisterAction("firewall configuration", NewConfigureFirewallAction)
	RegisterAction("time synchronization", NewSyncTimeAction)
	RegisterAction("glusterd service enablement", NewEnableGlusterdAction)
	RegisterAction("monitoring agent installation", NewInstallMonitoringAgentAction)
}

// ProvisionSequence is the ordered list of actions every node runs before
// pool formation. Package install precedes brick provisioning so xfsprogs is
// present for mkfs.
var ProvisionSequence = []string{
	"storage package installation",
	"brick disk provisioning",
	"firewall configuration",
	"time synchronization",
	"glusterd service enablement",
	"monitoring agent installation",
}
