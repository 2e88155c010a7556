//go:build !unix

package channel

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("shared file mapping is not supported on this platform")

func mapFile(file *os.File, size int) ([]byte, error) { return nil, errNoMmap }

func unmap(mem []byte) error { return nil }
