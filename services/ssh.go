package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/jeffvance/glusterfs-cluster-install/libs"
)

// SSHExecutor executes commands on cluster nodes over SSH using the control
// node's passwordless key. Connections are opened on first use and cached per
// host; a dead connection is detected and redialed on the next Execute, which
// is what lets reachability probes work across node reboots.
type SSHExecutor struct {
	sshConfig *libs.SSHConfig
	clients   map[string]*ssh.Client
}

// NewSSHExecutor creates a new SSH executor
func NewSSHExecutor(sshConfig *libs.SSHConfig) *SSHExecutor {
	return &SSHExecutor{
		sshConfig: sshConfig,
		clients:   make(map[string]*ssh.Client),
	}
}

// connect returns a live client for host, dialing if needed
func (e *SSHExecutor) connect(host string) *ssh.Client {
	if client, ok := e.clients[host]; ok && client != nil {
		// Check if connection is still alive
		_, _, err := client.SendRequest("keepalive", false, nil)
		if err == nil {
			return client
		}
		client.Close()
		delete(e.clients, host)
	}

	keyFile := e.findPrivateKey()
	if keyFile == "" {
		libs.GetLogger("ssh").Printf("No private key found")
		return nil
	}
	signer, err := e.loadPrivateKey(keyFile)
	if err != nil {
		libs.GetLogger("ssh").Printf("Failed to load private key %s: %v", keyFile, err)
		return nil
	}

	config := &ssh.ClientConfig{
		User:            e.sshConfig.DefaultUsername,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // In production, use knownhosts
		Timeout:         time.Duration(e.sshConfig.ConnectTimeout) * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", host, e.sshConfig.Port)
	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		libs.GetLogger("ssh").Debug("Failed to establish SSH connection to %s: %v", host, err)
		return nil
	}

	e.clients[host] = client
	libs.GetLogger("ssh").Debug("SSH connection established to %s@%s", config.User, host)
	return client
}

// Disconnect closes every cached connection
func (e *SSHExecutor) Disconnect() {
	for host, client := range e.clients {
		if client != nil {
			client.Close()
			libs.GetLogger("ssh").Debug("SSH connection closed to %s", host)
		}
		delete(e.clients, host)
	}
}

// Execute runs a command on host, returning combined output and the exit
// status. A nil exit status means the command could not be delivered.
func (e *SSHExecutor) Execute(host string, command string, timeout *int) (string, *int) {
	client := e.connect(host)
	if client == nil {
		return "", nil
	}

	execTimeout := e.sshConfig.DefaultExecTimeout
	if timeout != nil {
		execTimeout = *timeout
	}

	libs.GetLogger("ssh").Debug("[%s] Running: %s", host, command)

	session, err := client.NewSession()
	if err != nil {
		libs.GetLogger("ssh").Printf("Failed to create SSH session on %s: %v", host, err)
		// Connection may have died mid-run; drop it so the next call redials
		client.Close()
		delete(e.clients, host)
		return "", nil
	}
	defer session.Close()

	var stdout, stderr strings.Builder
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case err := <-done:
		exitCode := 0
		if err != nil {
			if exitErr, ok := err.(*ssh.ExitError); ok {
				exitCode = exitErr.ExitStatus()
			} else {
				libs.GetLogger("ssh").Printf("Command execution error on %s: %v", host, err)
				return "", nil
			}
		}
		output := stdout.String()
		errorOutput := stderr.String()
		combined := output
		if errorOutput != "" {
			if output != "" {
				combined = output + "\n" + errorOutput
			} else {
				combined = errorOutput
			}
		}
		if e.sshConfig.Verbose {
			fmt.Print(combined)
		}
		return strings.TrimSpace(combined), &exitCode
	case <-time.After(time.Duration(execTimeout) * time.Second):
		session.Close()
		libs.GetLogger("ssh").Printf("SSH command timeout after %ds on %s - COMMAND FAILED", execTimeout, host)
		return "", nil
	}
}

// findPrivateKey finds the control node's private key file
func (e *SSHExecutor) findPrivateKey() string {
	if e.sshConfig.PrivateKey != "" {
		return e.sshConfig.PrivateKey
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	keyPaths := []string{
		filepath.Join(homeDir, ".ssh", "id_rsa"),
		filepath.Join(homeDir, ".ssh", "id_ed25519"),
	}
	for _, keyPath := range keyPaths {
		if _, err := os.Stat(keyPath); err == nil {
			return keyPath
		}
	}
	return ""
}

// loadPrivateKey loads a private key from file
func (e *SSHExecutor) loadPrivateKey(keyFile string) (ssh.Signer, error) {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, err
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err == nil {
		return signer, nil
	}

	signer, err = ssh.ParsePrivateKeyWithPassphrase(key, []byte(""))
	if err == nil {
		return signer, nil
	}

	return nil, fmt.Errorf("failed to parse private key: %v", err)
}
