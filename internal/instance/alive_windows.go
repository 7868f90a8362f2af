//go:build windows

// internal/instance/alive_windows.go
package instance

import "os"

// FindProcess opens a handle on Windows and fails for unknown PIDs.
func alive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = p.Release()
	return true
}
