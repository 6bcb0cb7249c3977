//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Token       string
	APIEndpoint string
	LinPath     string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Token:       os.Getenv("LINODE_TOKEN"),
		APIEndpoint: os.Getenv("LINODE_API_URL"),
		LinPath:     getLinPath(),
		Verbose:     os.Getenv("LIN_VERBOSE") == "true",
	}
}

// getLinPath determines the path to the lin binary
func getLinPath() string {
	if path := os.Getenv("LIN_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../lin",
		"./lin",
		"../lin",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "lin" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Token == "" {
		t.Skip("LINODE_TOKEN not set, skipping integration test")
	}

	if _, err := os.Stat(config.LinPath); os.IsNotExist(err) {
		t.Skipf("lin binary not found at %s, skipping integration test", config.LinPath)
	}
}

// CommandRunner provides utilities for running lin commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a lin command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	if runner.config.APIEndpoint != "" {
		args = append([]string{"--api", runner.config.APIEndpoint}, args...)
	}

	if runner.config.Token != "" {
		args = append([]string{"--token", runner.config.Token}, args...)
	}

	cmd := exec.Command(runner.config.LinPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.LinPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName produces a unique resource label for this run
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()%1000000)
}

// AssertJSONOutput fails the test when output isn't valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	var parsed any
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Errorf("expected valid JSON output, got error %v:\n%s", err, output)
	}
}

// CleanupResource removes a test resource, ignoring failures
func (runner *CommandRunner) CleanupResource(kind, id string, extra ...string) {
	args := append([]string{kind, "delete", id}, extra...)
	if _, stderr, err := runner.Run(args...); err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup of %s %s failed: %v\n%s", kind, id, err, stderr)
	}
}
