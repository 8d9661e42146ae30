package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayFetchesAndShowsSuggestion(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, `[{"atividade":"Read a chapter"}]`)
	setTestEnv(t, remote.URL)

	stdout, _, err := executeCLI(t, home, "today")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Read a chapter")
	assert.Contains(t, stdout, "Today (")
	assert.NotContains(t, stdout, "offline")
}

func TestTodayJSONReusesSavedSelection(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, `[{"atividade":"Read a chapter"}]`)
	setTestEnv(t, remote.URL)

	first := runTodayJSON(t, home)
	assert.Equal(t, "remote", first.Source)
	assert.Equal(t, "Read a chapter", first.Text)
	assert.True(t, first.Available)
	assert.False(t, first.Degraded)

	second := runTodayJSON(t, home)
	assert.Equal(t, "saved", second.Source)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Day, second.Day)
	assert.Equal(t, int32(1), remote.hits.Load())

	_, err := os.Stat(filepath.Join(home, ".daily-activity", "cache.toml"))
	require.NoError(t, err)
}

func TestTodayWithoutRemoteOrCacheIsUnavailable(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, "")
	remote.fail.Store(true)
	setTestEnv(t, remote.URL)

	stdout, _, err := executeCLI(t, home, "today")
	require.NoError(t, err)
	assert.Contains(t, stdout, domain.UnavailableMessage)

	result := runTodayJSON(t, home)
	assert.Equal(t, "unavailable", result.Source)
	assert.False(t, result.Available)
}

func TestTodayFallsBackToCachedCandidates(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, `[{"atividade":"Stretch"}]`)
	setTestEnv(t, remote.URL)

	_ = runTodayJSON(t, home)

	_, _, err := executeCLI(t, home, "cache", "clear")
	require.NoError(t, err)
	remote.fail.Store(true)

	result := runTodayJSON(t, home)
	assert.Equal(t, "cache", result.Source)
	assert.Equal(t, "Stretch", result.Text)
	assert.True(t, result.Degraded)

	stdout, _, err := executeCLI(t, home, "today")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stretch")
}

func TestCacheClearAllRemovesCacheFile(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, `[{"atividade":"Stretch"}]`)
	setTestEnv(t, remote.URL)

	_ = runTodayJSON(t, home)
	cachePath := filepath.Join(home, ".daily-activity", "cache.toml")
	require.FileExists(t, cachePath)

	stdout, _, err := executeCLI(t, home, "cache", "clear", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, cachePath)
	assert.NoFileExists(t, cachePath)

	remote.fail.Store(true)
	result := runTodayJSON(t, home)
	assert.Equal(t, "unavailable", result.Source)
}

func TestDoneRecordsSuggestionAndUpdatesHistory(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, `[{"atividade":"Walk outside"}]`)
	setTestEnv(t, remote.URL)

	stdout, _, err := executeCLI(t, home, "done")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Completed: Walk outside")
	assert.Contains(t, stdout, "Tier: Bronze")

	stdout, _, err = executeCLI(t, home, "history", "--json")
	require.NoError(t, err)

	var entries []completionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Walk outside", entries[0].Description)
	assert.NotEmpty(t, entries[0].ID)
	assert.WithinDuration(t, time.Now(), entries[0].CompletedAt, time.Minute)
}

func TestDoneWithTextWorksWhileOffline(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, "")
	remote.fail.Store(true)
	setTestEnv(t, remote.URL)

	for range 3 {
		_, _, err := executeCLI(t, home, "done", "--text", "Push-ups")
		require.NoError(t, err)
	}

	stdout, _, err := executeCLI(t, home, "tier", "--json")
	require.NoError(t, err)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, "Silver", summary["tier"])
	assert.EqualValues(t, 3, summary["completions"])
	assert.EqualValues(t, 1, summary["distinct_days"])
	assert.EqualValues(t, 1, summary["streak"])

	stdout, _, err = executeCLI(t, home, "tier")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tier: Silver")
	assert.Contains(t, stdout, "Next: Gold at 7 completions")
}

func TestDoneRefusesUnavailableSuggestion(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, "")
	remote.fail.Store(true)
	setTestEnv(t, remote.URL)

	_, _, err := executeCLI(t, home, "done")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoSuggestion)
	assert.Contains(t, err.Error(), "--text")

	stdout, _, err := executeCLI(t, home, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No completed activities yet.")
}

func TestDoneRejectsBlankText(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, newCandidatesServer(t, "").URL)

	_, _, err := executeCLI(t, home, "done", "--text", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyDescription)
}

func TestHistoryLimit(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, newCandidatesServer(t, "").URL)

	for _, text := range []string{"first", "second", "third"} {
		_, _, err := executeCLI(t, home, "done", "--text", text)
		require.NoError(t, err)
	}

	stdout, _, err := executeCLI(t, home, "history", "--limit", "2", "--json")
	require.NoError(t, err)

	var entries []completionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Description)
	assert.Equal(t, "second", entries[1].Description)

	_, _, err = executeCLI(t, home, "history", "--limit", "-1")
	require.Error(t, err)
}

func TestStatusRendersDashboard(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, `[{"atividade":"Cook dinner"}]`)
	setTestEnv(t, remote.URL)

	_, _, err := executeCLI(t, home, "done", "--text", "Cook dinner")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Daily Activity")
	assert.Contains(t, stdout, "Cook dinner")
	assert.Contains(t, stdout, "Bronze")
	assert.Contains(t, stdout, "next reminder:")
}

func TestTickReportsDecision(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		decision domain.ReminderDecision
		hour     *int
	}{
		{
			name:     "inside the morning window",
			now:      time.Date(2024, 5, 1, 8, 5, 0, 0, time.Local),
			decision: domain.DecisionNotified,
			hour:     intPtr(8),
		},
		{
			name:     "between target hours",
			now:      time.Date(2024, 5, 1, 9, 5, 0, 0, time.Local),
			decision: domain.DecisionOutsideWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			setTestEnv(t, newCandidatesServer(t, "").URL)

			stdout, stderr, err := executeCLIAt(t, home, tt.now, "tick", "--json")
			require.NoError(t, err)

			var output tickOutput
			require.NoError(t, json.Unmarshal([]byte(stdout), &output))
			assert.Equal(t, string(tt.decision), output.Decision)
			assert.Equal(t, tt.hour, output.Hour)
			assert.True(t, tt.now.Equal(output.At))

			if tt.decision == domain.DecisionNotified {
				assert.Contains(t, stderr, domain.ReminderTitle)
			} else {
				assert.NotContains(t, stderr, domain.ReminderTitle)
			}
		})
	}
}

func TestTickDedupesSecondTickInSameWindow(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, newCandidatesServer(t, "").URL)

	stdout, _, err := executeCLIAt(t, home, time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local), "tick")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 12:00 notified\n", stdout)

	stdout, stderr, err := executeCLIAt(t, home, time.Date(2024, 5, 1, 12, 15, 0, 0, time.Local), "tick")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 12:15 already_notified\n", stdout)
	assert.NotContains(t, stderr, domain.ReminderTitle)
}

func TestTickAfterCompletionNeverNotifies(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, newCandidatesServer(t, "").URL)
	now := time.Date(2024, 5, 1, 8, 5, 0, 0, time.Local)

	_, _, err := executeCLIAt(t, home, now.Add(-time.Hour), "done", "--text", "Yoga")
	require.NoError(t, err)

	stdout, stderr, err := executeCLIAt(t, home, now, "tick")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 08:05 "+string(domain.DecisionAlreadyDone)+"\n", stdout)
	assert.NotContains(t, stderr, domain.ReminderTitle)
}

func TestConfigFileIsRead(t *testing.T) {
	home := t.TempDir()
	remote := newCandidatesServer(t, `[{"atividade":"Water the plants"}]`)
	t.Setenv("DA_LOGGING_OUTPUT", "discard")

	configDir := filepath.Join(home, ".daily-activity")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	config := "[remote]\nurl = \"" + remote.URL + "\"\n\n[log]\ndriver = \"memory\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600))

	result := runTodayJSON(t, home)
	assert.Equal(t, "Water the plants", result.Text)

	_, _, err := executeCLI(t, home, "done")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(configDir, "completions.db"))
}

func TestInvalidConfigFailsEveryCommand(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, newCandidatesServer(t, "").URL)
	t.Setenv("DA_LOG_DRIVER", "postgres")

	_, _, err := executeCLI(t, home, "today")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log.driver")
}

func TestDaemonStopsWhenContextEnds(t *testing.T) {
	home := t.TempDir()
	setTestEnv(t, newCandidatesServer(t, "").URL)
	t.Setenv("DA_LOG_DRIVER", "memory")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	stdout, _, err := executeCLIContext(t, ctx, home, "daemon", "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "daemon started")
	assert.Contains(t, stdout, "*/15 * * * *")
}

func TestVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "da dev\n", stdout)
}

func TestNextReminderSkipsTicksOutsideWindow(t *testing.T) {
	scheduler, err := (&app{}).newScheduler()
	require.NoError(t, err)

	window := domain.DefaultNotificationWindow()
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "later the same hour",
			now:  time.Date(2024, 5, 1, 8, 1, 0, 0, time.Local),
			want: time.Date(2024, 5, 1, 8, 15, 0, 0, time.Local),
		},
		{
			name: "next target hour",
			now:  time.Date(2024, 5, 1, 8, 20, 0, 0, time.Local),
			want: time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local),
		},
		{
			name: "next morning",
			now:  time.Date(2024, 5, 1, 20, 16, 0, 0, time.Local),
			want: time.Date(2024, 5, 2, 8, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(nextReminder(scheduler, window, tt.now)))
		})
	}
}

type candidatesServer struct {
	*httptest.Server
	hits atomic.Int32
	fail atomic.Bool
}

func newCandidatesServer(t *testing.T, body string) *candidatesServer {
	t.Helper()

	server := &candidatesServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		if server.fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func setTestEnv(t *testing.T, remoteURL string) {
	t.Helper()
	t.Setenv("DA_REMOTE_URL", remoteURL)
	t.Setenv("DA_REMOTE_RETRY_MAX_ELAPSED", "0s")
	t.Setenv("DA_NOTIFICATIONS_COMMAND", terminalNotifier)
	t.Setenv("DA_LOGGING_OUTPUT", "discard")
}

func runTodayJSON(t *testing.T, home string) suggestionOutput {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "today", "--json")
	require.NoError(t, err)

	var result suggestionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	return result
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, context.Background(), home, nil, args...)
}

func executeCLIAt(t *testing.T, home string, now time.Time, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, context.Background(), home, stoppedClock{now: now}, args...)
}

func executeCLIContext(t *testing.T, ctx context.Context, home string, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, ctx, home, nil, args...)
}

func runCLI(t *testing.T, ctx context.Context, home string, clock ports.Clock, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd(clock)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

type stoppedClock struct {
	now time.Time
}

func (c stoppedClock) Now() time.Time {
	return c.now
}

func intPtr(v int) *int {
	return &v
}
