//go:build !unix

package main

import "os"

// Fallback without dup2: only output written through os.Stdout/os.Stderr
// reaches the file, runtime panics do not.
func redirectStdIO(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
