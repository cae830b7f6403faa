package benchmark

import (
	"os/exec"
	"strings"
)

// execCommand allows mocking in tests.
var execCommand = exec.Command

// GitCommit returns the short hash of HEAD in the working directory.
func GitCommit() (string, error) {
	out, err := execCommand("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
