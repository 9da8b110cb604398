package libs

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// HostEntry is one "<ip> <hostname>" line from the hosts file. Order of
// entries is significant: contiguous runs of ReplicaCount entries mirror each
// other's bricks.
type HostEntry struct {
	IP       string
	Hostname string
}

func (h HostEntry) String() string {
	return fmt.Sprintf("%s (%s)", h.Hostname, h.IP)
}

// ReplicaSet is a group of hosts whose bricks replicate each other
type ReplicaSet []HostEntry

// ValidationError aggregates every problem found in the hosts file so the
// operator can fix them in one pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("hosts file validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Add appends a problem description
func (e *ValidationError) Add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Empty reports whether any problems were recorded
func (e *ValidationError) Empty() bool {
	return len(e.Problems) == 0
}

// DNS label: alphanumeric start/end, hyphens inside, max 63 chars per label
var hostnameRe = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)

// ValidIP checks dotted-quad syntax with each octet in 0-255
func ValidIP(ip string) bool {
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return false
	}
	for _, octet := range octets {
		if octet == "" || len(octet) > 3 {
			return false
		}
		n, err := strconv.Atoi(octet)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// ValidHostname checks DNS-label grammar against the lower-cased name
func ValidHostname(hostname string) bool {
	if hostname == "" || len(hostname) > 253 {
		return false
	}
	return hostnameRe.MatchString(strings.ToLower(hostname))
}

// ParseHostsFile reads and validates the hosts file. Hostnames are
// lower-cased. All malformed lines are reported together in one
// ValidationError rather than failing on the first; the well-formed entries
// are returned alongside it so connectivity problems can be batched into the
// same report.
func ParseHostsFile(path string, replicaCount int) ([]HostEntry, *ValidationError) {
	data, err := os.ReadFile(path)
	if err != nil {
		verr := &ValidationError{}
		verr.Add("failed to read hosts file %s: %v", path, err)
		return nil, verr
	}
	return ParseHosts(string(data), replicaCount)
}

// ParseHosts validates raw hosts text: one "<ip> <hostname>" pair per line,
// '#' comments and blank lines ignored. The second return is nil when the
// input is clean.
func ParseHosts(raw string, replicaCount int) ([]HostEntry, *ValidationError) {
	verr := &ValidationError{}
	var entries []HostEntry
	seenIPs := make(map[string]int)
	seenNames := make(map[string]int)

	for i, line := range strings.Split(raw, "\n") {
		lineNo := i + 1
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			verr.Add("line %d: expected '<ip> <hostname>', got %q", lineNo, line)
			continue
		}

		ip := fields[0]
		hostname := strings.ToLower(fields[1])
		lineOK := true
		if !ValidIP(ip) {
			verr.Add("line %d: invalid IP address %q", lineNo, ip)
			lineOK = false
		}
		if !ValidHostname(hostname) {
			verr.Add("line %d: invalid hostname %q", lineNo, fields[1])
			lineOK = false
		}
		if !lineOK {
			continue
		}

		if prev, dup := seenIPs[ip]; dup {
			verr.Add("line %d: duplicate IP %s (first used on line %d)", lineNo, ip, prev)
			continue
		}
		if prev, dup := seenNames[hostname]; dup {
			verr.Add("line %d: duplicate hostname %s (first used on line %d)", lineNo, hostname, prev)
			continue
		}
		seenIPs[ip] = lineNo
		seenNames[hostname] = lineNo
		entries = append(entries, HostEntry{IP: ip, Hostname: hostname})
	}

	if verr.Empty() {
		if len(entries) == 0 {
			verr.Add("no host entries found")
		} else if len(entries) < replicaCount {
			verr.Add("need at least %d hosts for replica %d, found %d", replicaCount, replicaCount, len(entries))
		} else if len(entries)%replicaCount != 0 {
			verr.Add("host count %d is not a multiple of replica count %d", len(entries), replicaCount)
		}
	}

	if !verr.Empty() {
		return entries, verr
	}
	return entries, nil
}

// ReplicaSets partitions entries, in order, into groups of replicaCount.
// Entries must already satisfy len(entries) % replicaCount == 0.
func ReplicaSets(entries []HostEntry, replicaCount int) []ReplicaSet {
	sets := make([]ReplicaSet, 0, len(entries)/replicaCount)
	for i := 0; i < len(entries); i += replicaCount {
		sets = append(sets, ReplicaSet(entries[i:i+replicaCount]))
	}
	return sets
}
