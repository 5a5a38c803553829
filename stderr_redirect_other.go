//go:build !unix

package main

import "os"

// Only writes through os.Stderr are captured here; runtime panics still go to
// the original handle.
func redirectStderr(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stderr = f
	return nil
}
