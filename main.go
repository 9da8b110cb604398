package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeffvance/glusterfs-cluster-install/commands"
	"github.com/jeffvance/glusterfs-cluster-install/libs"
	"github.com/jeffvance/glusterfs-cluster-install/services"
)

var (
	verbose     bool
	autoConfirm bool
	configFile  string
	hostsFile   string
	logFilePath string
	volumeName  string
	replica     int
	brickMount  string
	volumeMount string
)

// earlyLogSettings scans raw arguments for the logging flags before cobra
// parses them, so flag and config errors land in the run log too.
func earlyLogSettings(args []string) (libs.LogLevel, string) {
	level := libs.LogLevelInfo
	logFile := ""
	for i, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			level = libs.LogLevelDebug
		}
		if arg == "--log-file" && i+1 < len(args) {
			logFile = args[i+1]
		}
		if strings.HasPrefix(arg, "--log-file=") {
			logFile = strings.TrimPrefix(arg, "--log-file=")
		}
	}
	return level, logFile
}

func main() {
	logLevel, logFileArg := earlyLogSettings(os.Args[1:])
	_, err := libs.InitLogger(logLevel, logFileArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer libs.CloseLogFile()

	var rootCmd = &cobra.Command{
		Use:   "gluster-install",
		Short: "Bootstrap a replicated GlusterFS cluster over SSH",
		Long:  "gluster-install provisions brick disks, forms the trusted pool, creates and starts a replicated volume, and coordinates reboots across a fleet of hosts from a single control node",
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and remote command echo")
	rootCmd.PersistentFlags().BoolVarP(&autoConfirm, "yes", "y", false, "Assume yes for interactive confirmations")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "cluster.yaml", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&hostsFile, "hosts-file", "", "Path to the '<ip> <hostname>' hosts file (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFilePath, "log-file", "", "Path to the run log file (default: logs/gluster-install_<timestamp>.log)")

	var deployCmd = &cobra.Command{
		Use:          "deploy <brick-device>",
		Short:        "Provision every host and stand up the replicated volume",
		Args:         cobra.ExactArgs(1),
		RunE:         runDeploy,
		SilenceUsage: true,
	}
	deployCmd.Flags().StringVar(&volumeName, "volume", "", "Volume name (default from config)")
	deployCmd.Flags().IntVarP(&replica, "replica", "r", 0, "Replication factor (default from config)")
	deployCmd.Flags().StringVar(&brickMount, "brick-mount", "", "Brick filesystem mount point (default from config)")
	deployCmd.Flags().StringVar(&volumeMount, "volume-mount", "", "Volume client mount point (default from config)")
	rootCmd.AddCommand(deployCmd)

	var cleanupCmd = &cobra.Command{
		Use:          "cleanup",
		Short:        "Tear down the remains of a previous deployment",
		Args:         cobra.NoArgs,
		RunE:         runCleanup,
		SilenceUsage: true,
	}
	cleanupCmd.Flags().StringVar(&volumeName, "volume", "", "Volume name (default from config)")
	rootCmd.AddCommand(cleanupCmd)

	var statusCmd = &cobra.Command{
		Use:          "status",
		Short:        "Report cluster health (read-only)",
		Args:         cobra.NoArgs,
		RunE:         runStatus,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(statusCmd)

	var probeCmd = &cobra.Command{
		Use:          "probe",
		Short:        "Validate the hosts file and check connectivity, then exit",
		Args:         cobra.NoArgs,
		RunE:         runProbe,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(probeCmd)

	if err := rootCmd.Execute(); err != nil {
		libs.CloseLogFile()
		os.Exit(libs.ExitCodeFor(err))
	}
}

// getConfig loads the YAML config and applies flag overrides on top
func getConfig(cmd *cobra.Command) (*libs.ClusterConfig, error) {
	explicit := cmd.Flags().Changed("config") || cmd.InheritedFlags().Changed("config")
	cfg, err := libs.LoadConfig(configFile, explicit)
	if err != nil {
		return nil, err
	}

	if hostsFile != "" {
		cfg.HostsFile = hostsFile
	}
	if volumeName != "" {
		cfg.Gluster.VolumeName = volumeName
	}
	if replica > 0 {
		cfg.Gluster.ReplicaCount = replica
	}
	if brickMount != "" {
		cfg.Gluster.BrickMount = brickMount
	}
	if volumeMount != "" {
		cfg.Gluster.VolumeMount = volumeMount
	}
	if verbose {
		cfg.SSH.Verbose = true
	}
	return cfg, nil
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	executor := services.NewSSHExecutor(&cfg.SSH)
	return commands.NewDeploy(cfg, executor).Run(args[0], autoConfirm)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	executor := services.NewSSHExecutor(&cfg.SSH)
	return commands.NewCleanup(cfg, executor).Run()
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	executor := services.NewSSHExecutor(&cfg.SSH)
	return commands.NewStatus(cfg, executor).Run()
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	executor := services.NewSSHExecutor(&cfg.SSH)
	return commands.NewProbe(cfg, executor).Run()
}
