//go:build basic || database

package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBinaryPath holds the path to a shared devwrapped binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the devwrapped binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "devwrapped-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "devwrapped")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build devwrapped: %v\n%s", err, out))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// newFakeGitLab serves a user with three pushes in 2024 across two projects.
func newFakeGitLab(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/user", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"id":42,"username":"wrapped","name":"Wrapped Tester"}`)
	})
	mux.HandleFunc("/api/v4/events", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			_, _ = fmt.Fprint(w, `[]`)
			return
		}
		_, _ = fmt.Fprint(w, `[
			{"project_id":1,"created_at":"2024-01-15T09:00:00Z","push_data":{"commit_count":2,"commit_title":"feat: first"}},
			{"project_id":1,"created_at":"2024-01-16T22:00:00Z","push_data":{"commit_count":1,"commit_title":"fix: second"}},
			{"project_id":2,"created_at":"2024-07-01T14:00:00Z","push_data":{"commit_count":30,"commit_title":"import legacy code"}}
		]`)
	})
	mux.HandleFunc("/api/v4/projects/1/languages", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"Go":100.0}`)
	})
	mux.HandleFunc("/api/v4/projects/2/languages", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"Python":60.0,"Shell":40.0}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// runDevwrapped runs the binary in an isolated working directory and HOME.
// Only the fake GitLab provider is configured.
func runDevwrapped(t *testing.T, workDir string, env map[string]string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(),
		"HOME="+workDir,
		"GITHUB_TOKEN=",
		"DEVWRAPPED_GITHUB_TOKEN=",
	)
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}
