package libs

// RemoteExecutor runs a shell command on a remote host and returns the
// combined output plus the exit status. A nil exit status means the command
// could not be run at all (connection or transport failure); callers treat
// that as unreachable rather than as a command failure.
type RemoteExecutor interface {
	Execute(host string, command string, timeout *int) (string, *int)
	Disconnect()
}
