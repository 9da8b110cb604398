package libs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SSHConfig represents SSH configuration
type SSHConfig struct {
	Port               int    `yaml:"port"`
	ConnectTimeout     int    `yaml:"connect_timeout"`
	DefaultExecTimeout int    `yaml:"default_exec_timeout"`
	DefaultUsername    string `yaml:"default_username"`
	PrivateKey         string `yaml:"private_key,omitempty"`
	Verbose            bool   `yaml:"verbose"`
}

// GlusterConfig represents the volume layout being deployed
type GlusterConfig struct {
	VolumeName   string            `yaml:"volume_name"`
	ReplicaCount int               `yaml:"replica_count"`
	BrickMount   string            `yaml:"brick_mount"`
	VolumeMount  string            `yaml:"volume_mount"`
	VolumeOpts   map[string]string `yaml:"volume_options,omitempty"`
}

// WaitsConfig represents polling/retry configuration
type WaitsConfig struct {
	PollInterval        int `yaml:"poll_interval"`         // seconds between convergence ticks
	PollBudget          int `yaml:"poll_budget"`           // convergence ticks before timing out
	RebootProbeInterval int `yaml:"reboot_probe_interval"` // seconds between reachability probes
	ServiceStart        int `yaml:"service_start"`         // settle time after starting glusterd
}

// FeaturesConfig toggles optional deployment steps. Each flag corresponds to a
// step the deploy run performs on every node; disabled steps are logged and
// skipped.
type FeaturesConfig struct {
	ConfigureFirewall bool `yaml:"configure_firewall"`
	SyncTime          bool `yaml:"sync_time"`
	MonitoringAgent   bool `yaml:"monitoring_agent"`
}

// ClusterConfig is the root configuration for a deployment run
type ClusterConfig struct {
	HostsFile string         `yaml:"hosts_file"`
	SSH       SSHConfig      `yaml:"ssh"`
	Gluster   GlusterConfig  `yaml:"gluster"`
	Waits     WaitsConfig    `yaml:"waits"`
	Features  FeaturesConfig `yaml:"features"`
}

// DefaultConfig returns a ClusterConfig with the stock deployment settings
func DefaultConfig() *ClusterConfig {
	return &ClusterConfig{
		HostsFile: "hosts",
		SSH: SSHConfig{
			Port:               22,
			ConnectTimeout:     10,
			DefaultExecTimeout: 600,
			DefaultUsername:    "root",
		},
		Gluster: GlusterConfig{
			VolumeName:   "HadoopVol",
			ReplicaCount: 2,
			BrickMount:   "/mnt/brick1",
			VolumeMount:  "/mnt/glusterfs",
		},
		Waits: WaitsConfig{
			PollInterval:        1,
			PollBudget:          10,
			RebootProbeInterval: 10,
			ServiceStart:        3,
		},
		Features: FeaturesConfig{
			ConfigureFirewall: true,
			SyncTime:          true,
			MonitoringAgent:   false,
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults. A missing file
// is only an error when the path was given explicitly.
func LoadConfig(configFile string, explicit bool) (*ClusterConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ClusterConfig) validate() error {
	if c.Gluster.ReplicaCount < 1 {
		return fmt.Errorf("gluster.replica_count must be >= 1, got %d", c.Gluster.ReplicaCount)
	}
	if c.Gluster.VolumeName == "" {
		return fmt.Errorf("gluster.volume_name must not be empty")
	}
	if c.Waits.PollInterval < 1 {
		return fmt.Errorf("waits.poll_interval must be >= 1, got %d", c.Waits.PollInterval)
	}
	if c.Waits.PollBudget < 1 {
		return fmt.Errorf("waits.poll_budget must be >= 1, got %d", c.Waits.PollBudget)
	}
	return nil
}

// BrickDir returns the brick directory under the brick mount point
func (c *ClusterConfig) BrickDir() string {
	return c.Gluster.BrickMount + "/" + c.Gluster.VolumeName
}

// IntPtr returns a pointer to an int
func IntPtr(i int) *int {
	return &i
}
