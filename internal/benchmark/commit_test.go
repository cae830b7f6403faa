package benchmark

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is not a real test. It is re-executed by fakeExecCommand
// to stand in for git.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	os.Stdout.WriteString(os.Getenv("HELPER_OUTPUT"))
	os.Exit(0)
}

func fakeExecCommand(output string) func(string, ...string) *exec.Cmd {
	return func(name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_OUTPUT="+output)
		return cmd
	}
}

func TestGitCommit(t *testing.T) {
	defer func() { execCommand = exec.Command }()
	execCommand = fakeExecCommand("1a2b3c4\n")

	commit, err := GitCommit()
	require.NoError(t, err)
	assert.Equal(t, "1a2b3c4", commit)
}
