package services

import "sync"

// MockResult is one scripted response from the fake executor
type MockResult struct {
	Output      string
	ExitCode    int
	Unreachable bool // simulate a transport failure (nil exit status)
}

// MockExecutor is an in-memory RemoteExecutor for tests. Responses are
// scripted per (host, command); queuing several results for the same key
// simulates state that changes between polls (the last result repeats once
// the queue drains). Unscripted commands succeed with empty output, so tests
// only script the commands they assert on.
type MockExecutor struct {
	mu      sync.Mutex
	scripts map[string][]MockResult
	Calls   []string // "host: command", in dispatch order
}

// NewMockExecutor creates an empty fake executor
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{scripts: make(map[string][]MockResult)}
}

func key(host, command string) string {
	return host + ": " + command
}

// Set scripts a single repeating result for host+command
func (m *MockExecutor) Set(host, command string, res MockResult) {
	m.Queue(host, command, res)
}

// Queue appends a result to the script for host+command
func (m *MockExecutor) Queue(host, command string, res ...MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(host, command)
	m.scripts[k] = append(m.scripts[k], res...)
}

// Execute implements libs.RemoteExecutor
func (m *MockExecutor) Execute(host string, command string, timeout *int) (string, *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, key(host, command))

	queue, ok := m.scripts[key(host, command)]
	if !ok || len(queue) == 0 {
		zero := 0
		return "", &zero
	}
	res := queue[0]
	if len(queue) > 1 {
		m.scripts[key(host, command)] = queue[1:]
	}
	if res.Unreachable {
		return "", nil
	}
	code := res.ExitCode
	return res.Output, &code
}

// Disconnect implements libs.RemoteExecutor
func (m *MockExecutor) Disconnect() {}

// CallCount returns how many times host+command was dispatched
func (m *MockExecutor) CallCount(host, command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	k := key(host, command)
	for _, c := range m.Calls {
		if c == k {
			n++
		}
	}
	return n
}
