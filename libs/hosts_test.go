package libs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodHosts = `# storage cluster
192.168.1.10 Node1   # coordinator
192.168.1.11 node2

192.168.1.12 node3
192.168.1.13 node4
`

func TestParseHostsGrouping(t *testing.T) {
	entries, verr := ParseHosts(goodHosts, 2)
	require.Nil(t, verr)
	require.Len(t, entries, 4)

	// Hostnames are lower-cased, order preserved
	assert.Equal(t, "node1", entries[0].Hostname)
	assert.Equal(t, "192.168.1.10", entries[0].IP)
	assert.Equal(t, "node4", entries[3].Hostname)

	sets := ReplicaSets(entries, 2)
	require.Len(t, sets, 2)
	assert.Equal(t, "node1", sets[0][0].Hostname)
	assert.Equal(t, "node2", sets[0][1].Hostname)
	assert.Equal(t, "node3", sets[1][0].Hostname)
	assert.Equal(t, "node4", sets[1][1].Hostname)
}

func TestParseHostsReportsAllMalformedLines(t *testing.T) {
	raw := `999.1.1.1 host1
192.168.1.2 host_2!
192.168.1.3 host3
1.2.3 shortip
`
	entries, verr := ParseHosts(raw, 1)
	require.NotNil(t, verr)
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, verr.Error(), "999.1.1.1")
	assert.Contains(t, verr.Error(), "host_2!")
	assert.Contains(t, verr.Error(), "1.2.3")
	// The one good line still parses
	require.Len(t, entries, 1)
	assert.Equal(t, "host3", entries[0].Hostname)
}

func TestParseHostsReplicaDivisibility(t *testing.T) {
	// 5 hosts, replica 2
	raw := "10.0.0.1 a\n10.0.0.2 b\n10.0.0.3 c\n10.0.0.4 d\n10.0.0.5 e\n"
	_, verr := ParseHosts(raw, 2)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "not a multiple")

	// too few hosts for the replica count
	_, verr = ParseHosts("10.0.0.1 a\n", 2)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "at least 2")
}

func TestParseHostsDuplicates(t *testing.T) {
	raw := "10.0.0.1 a\n10.0.0.1 b\n10.0.0.2 a\n"
	_, verr := ParseHosts(raw, 1)
	require.NotNil(t, verr)
	require.Len(t, verr.Problems, 2)
	assert.Contains(t, verr.Problems[0], "duplicate IP")
	assert.Contains(t, verr.Problems[1], "duplicate hostname")
}

func TestValidIP(t *testing.T) {
	for _, ip := range []string{"0.0.0.0", "255.255.255.255", "192.168.1.1"} {
		assert.True(t, ValidIP(ip), ip)
	}
	for _, ip := range []string{"999.1.1.1", "1.2.3", "1.2.3.4.5", "a.b.c.d", "1..2.3", "01234.1.1.1"} {
		assert.False(t, ValidIP(ip), ip)
	}
}

func TestValidHostname(t *testing.T) {
	for _, name := range []string{"node1", "Node-1", "a.b.example.com", "x"} {
		assert.True(t, ValidHostname(name), name)
	}
	long := strings.Repeat("a", 64)
	for _, name := range []string{"", "host_1!", "-lead", "trail-", long} {
		assert.False(t, ValidHostname(name), name)
	}
}
