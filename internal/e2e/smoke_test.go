package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeInstancesFixture(home))

	stdout, stderr, err := runGuildctl(t, binaryPath, home, "instance", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "instances: 1")
	assert.Contains(t, stdout, "ops#1234 (inst-1)")

	stdout, stderr, err = runGuildctl(t, binaryPath, home, "instance", "remove", "inst-1")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Removed instance inst-1")

	stdout, stderr, err = runGuildctl(t, binaryPath, home, "instance", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "instances: 0")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "guildctl-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/guildctl")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build guildctl binary: %s", string(output))
	return binaryPath
}

func runGuildctl(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeInstancesFixture(home string) error {
	configDir := filepath.Join(home, ".guildctl")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	instances := `version = 1

[[instances]]
id = "inst-1"
token = "token-1"
kind = "bot"
tag = "ops#1234"
created_at = "2016-04-30"
`

	return os.WriteFile(filepath.Join(configDir, "instances.toml"), []byte(instances), 0o600)
}
