package cli

import (
	"fmt"
	"strings"
)

// SystemCtl builds systemctl commands for one service
type SystemCtl struct {
	serviceName string
}

// NewSystemCtl creates a builder for the named service
func NewSystemCtl(serviceName string) *SystemCtl {
	return &SystemCtl{serviceName: serviceName}
}

// Start generates systemctl start command
func (s *SystemCtl) Start() string {
	return fmt.Sprintf("systemctl start %s 2>&1", s.serviceName)
}

// Stop generates systemctl stop command
func (s *SystemCtl) Stop() string {
	return fmt.Sprintf("systemctl stop %s 2>&1", s.serviceName)
}

// Enable generates systemctl enable command
func (s *SystemCtl) Enable() string {
	return fmt.Sprintf("systemctl enable %s 2>&1", s.serviceName)
}

// EnableNow generates systemctl enable --now command
func (s *SystemCtl) EnableNow() string {
	return fmt.Sprintf("systemctl enable --now %s 2>&1", s.serviceName)
}

// Restart generates systemctl restart command
func (s *SystemCtl) Restart() string {
	return fmt.Sprintf("systemctl restart %s 2>&1", s.serviceName)
}

// IsActive generates systemctl is-active command
func (s *SystemCtl) IsActive() string {
	return fmt.Sprintf("systemctl is-active %s 2>&1", s.serviceName)
}

// ParseIsActive parses IsActive output
func ParseIsActive(output string) bool {
	return strings.TrimSpace(output) == "active"
}
