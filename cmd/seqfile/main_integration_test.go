//go:build integration

//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

// runAsCLIEnv makes the test binary behave as the seqfile command.
const runAsCLIEnv = "SEQFILE_RUN_AS_CLI"

func TestMain(m *testing.M) {
	if os.Getenv(runAsCLIEnv) == "1" {
		main()
	}

	os.Exit(m.Run())
}

func command(args ...string) *exec.Cmd {
	cmd := exec.Command(os.Args[0], args...) //nolint:gosec // Re-executes this test binary
	cmd.Env = append(os.Environ(), runAsCLIEnv+"=1", "SEQFILE_LOG_LEVEL=warn")

	return cmd
}

func TestProcesses_GetDistinctFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	const processes = 12

	dir := t.TempDir()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		paths []string
	)

	for range processes {
		wg.Add(1)

		go func() {
			defer wg.Done()

			out, err := command("mdl.", ".cPickle", dir, "--max-attempts", strconv.Itoa(processes)).Output()
			if err != nil {
				t.Errorf("seqfile failed: %v", err)
				return
			}

			mu.Lock()
			paths = append(paths, strings.TrimSpace(string(out)))
			mu.Unlock()
		}()
	}

	wg.Wait()

	want := make([]string, 0, processes)
	for i := range processes {
		want = append(want, filepath.Join(dir, "mdl."+strconv.Itoa(i)+".cPickle"))
	}

	g.Expect(paths).Should(ConsistOf(want))
}

func TestProcess_ExitStatus(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	err := command("a.", ".txt", t.TempDir(), "-m", "0").Run()

	var exitErr *exec.ExitError
	g.Expect(err).Should(BeAssignableToTypeOf(exitErr))
	g.Expect(err.(*exec.ExitError).ExitCode()).ShouldNot(BeZero()) //nolint:errorlint,forcetypeassert // Checked above
}
