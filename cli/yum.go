package cli

import (
	"fmt"
	"strings"
)

// Yum builds yum/rpm package commands
type Yum struct {
	quiet bool
}

// NewYum creates a new Yum command builder
func NewYum() *Yum {
	return &Yum{}
}

// Quiet sets quiet mode
func (y *Yum) Quiet() *Yum {
	y.quiet = true
	return y
}

// Install generates a non-interactive install command
func (y *Yum) Install(packages []string) string {
	flags := []string{"-y"}
	if y.quiet {
		flags = append(flags, "-q")
	}
	return fmt.Sprintf("yum %s install %s 2>&1", strings.Join(flags, " "), strings.Join(packages, " "))
}

// MakeCache generates the metadata refresh command
func (y *Yum) MakeCache() string {
	return "yum -q makecache 2>&1"
}

// IsInstalledCheck generates a yes/no probe for an installed package
func (y *Yum) IsInstalledCheck(packageName string) string {
	return fmt.Sprintf("rpm -q %s >/dev/null 2>&1 && echo installed || echo not_installed", packageName)
}

// ParseIsInstalled parses IsInstalledCheck output
func ParseIsInstalled(output string) bool {
	return strings.TrimSpace(output) == "installed"
}

// NeedsRestarting generates the reboot-required probe. Exit status 1 from
// needs-restarting -r means a reboot is required; hosts without the tool
// fall back to comparing the running kernel against the newest installed one.
func (y *Yum) NeedsRestarting() string {
	return "if command -v needs-restarting >/dev/null 2>&1; then needs-restarting -r >/dev/null 2>&1; echo $?; " +
		"else test \"$(uname -r)\" = \"$(rpm -q --last kernel 2>/dev/null | head -1 | sed 's/^kernel-//;s/ .*//')\" && echo 0 || echo 1; fi"
}

// ParseNeedsRestarting parses NeedsRestarting output
func ParseNeedsRestarting(output string) bool {
	return strings.TrimSpace(output) == "1"
}
