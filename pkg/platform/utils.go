package platform

import (
	"os/exec"
)

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := lookPath(cmd)
	return err == nil
}

// contains checks if a slice contains a value
func contains[T comparable](slice []T, item T) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
