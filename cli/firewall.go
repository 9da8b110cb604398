package cli

import (
	"fmt"
	"strings"
)

// Gluster port usage: 24007 glusterd, 24008 management RDMA, 49152+ one port
// per brick, 111 portmapper.
const (
	GlusterdPort   = 24007
	GlusterMgmtEnd = 24008
	BrickPortBase  = 49152
	PortmapPort    = 111
)

// Iptables builds firewall rules for gluster traffic
type Iptables struct {
	rules []string
}

// NewIptables creates a new Iptables command builder
func NewIptables() *Iptables {
	return &Iptables{}
}

// AllowTCPRange appends an accept rule for a TCP port range. The rule is
// inserted at the top of INPUT only when not already present.
func (i *Iptables) AllowTCPRange(from, to int) *Iptables {
	spec := fmt.Sprintf("-p tcp --dport %d:%d -j ACCEPT", from, to)
	i.rules = append(i.rules, fmt.Sprintf("iptables -C INPUT %s 2>/dev/null || iptables -I INPUT 1 %s", spec, spec))
	return i
}

// AllowTCP appends an accept rule for one TCP port
func (i *Iptables) AllowTCP(port int) *Iptables {
	return i.AllowTCPRange(port, port)
}

// AllowUDP appends an accept rule for one UDP port
func (i *Iptables) AllowUDP(port int) *Iptables {
	spec := fmt.Sprintf("-p udp --dport %d -j ACCEPT", port)
	i.rules = append(i.rules, fmt.Sprintf("iptables -C INPUT %s 2>/dev/null || iptables -I INPUT 1 %s", spec, spec))
	return i
}

// Apply generates the combined rule application plus persistence command
func (i *Iptables) Apply() string {
	parts := append([]string{}, i.rules...)
	parts = append(parts, "service iptables save >/dev/null 2>&1 || true")
	return strings.Join(parts, " && ")
}

// GlusterRules builds the standard rule set for a cluster of brickCount bricks
// per node.
func GlusterRules(brickCount int) *Iptables {
	return NewIptables().
		AllowTCPRange(GlusterdPort, GlusterMgmtEnd).
		AllowTCPRange(BrickPortBase, BrickPortBase+brickCount-1).
		AllowTCP(PortmapPort).
		AllowUDP(PortmapPort)
}
