package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/gcsim/internal/app"
	"github.com/specialistvlad/gcsim/internal/hcl"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a scenario run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
}

// RunScenario writes the given HCL files into a temporary directory and runs
// the whole application against it with the given mark strategy.
func RunScenario(t *testing.T, files map[string]string, strategy string) *HarnessResult {
	t.Helper()

	// The test provides relative paths (e.g., "heap/objects.hcl"), which
	// naturally creates the subdirectory structure within the root dir.
	scenarioDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(scenarioDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg, err := app.NewConfig(app.Config{
		ScenarioPath: scenarioDir,
		Strategy:     strategy,
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	runErr := app.NewApp(out, logBuffer, cfg, hcl.NewLoader()).Run(context.Background())

	if os.Getenv("GCSIM_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
}
