package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"atividade":"Call a friend"},{"atividade":"Call a friend"}]`))
	}))
	t.Cleanup(remote.Close)
	require.NoError(t, writeConfigFixture(home, remote.URL))

	stdout, stderr, err := runDA(t, binaryPath, home, "today", "--json")
	require.NoError(t, err, "stderr: %s", stderr)

	var today map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &today))
	assert.Equal(t, "Call a friend", today["text"])
	assert.Equal(t, "remote", today["source"])

	remote.Close()

	stdout, stderr, err = runDA(t, binaryPath, home, "today", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	require.NoError(t, json.Unmarshal([]byte(stdout), &today))
	assert.Equal(t, "saved", today["source"])

	stdout, stderr, err = runDA(t, binaryPath, home, "done")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Completed: Call a friend")

	stdout, stderr, err = runDA(t, binaryPath, home, "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Call a friend")
	assert.FileExists(t, filepath.Join(home, ".daily-activity", "completions.db"))
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "da-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/da")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build da binary: %s", string(output))
	return binaryPath
}

func runDA(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "DA_LOGGING_OUTPUT=discard")

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

func writeConfigFixture(home, remoteURL string) error {
	configDir := filepath.Join(home, ".daily-activity")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	config := `[remote]
url = "` + remoteURL + `"

[remote.retry]
max_elapsed = "0s"

[notifications]
command = "terminal"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600)
}
