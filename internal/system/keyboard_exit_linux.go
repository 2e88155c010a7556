//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	KeyEsc = 1
	KeyF4  = 62
)

// DefaultCloseKeys close the framebuffer viewer.
var DefaultCloseKeys = []uint16{KeyEsc, KeyF4}

// input_event = timeval + u16 type + u16 code + s32 value.
var (
	timevalSize    = binary.Size(unix.Timeval{})
	inputEventSize = timevalSize + 2 + 2 + 4
)

// WatchCloseKeys reads every /dev/input/event* device and calls onClose
// once when one of keys is pressed. It returns immediately; readers stop
// with ctx. Without input devices it only logs.
func WatchCloseKeys(ctx context.Context, l logger, keys []uint16, onClose func()) {
	if onClose == nil || len(keys) == 0 {
		return
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if l != nil {
			l.Infof("input", "no evdev devices found, close keys disabled")
		}
		return
	}

	var once sync.Once
	trigger := func(code uint16) {
		once.Do(func() {
			if l != nil {
				l.Infof("input", "key %d pressed: closing", code)
			}
			onClose()
		})
	}

	for _, path := range paths {
		go watchDevice(ctx, path, keys, trigger)
	}
}

func watchDevice(ctx context.Context, path string, keys []uint16, trigger func(uint16)) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if code, ok := findKeyPress(buf[:n], keys); ok {
			trigger(code)
			return
		}
	}
}

// findKeyPress scans a run of input_event records for a press of any key.
func findKeyPress(data []byte, keys []uint16) (uint16, bool) {
	for off := 0; off+inputEventSize <= len(data); off += inputEventSize {
		rec := data[off : off+inputEventSize]
		typ := binary.LittleEndian.Uint16(rec[timevalSize:])
		code := binary.LittleEndian.Uint16(rec[timevalSize+2:])
		value := int32(binary.LittleEndian.Uint32(rec[timevalSize+4:]))
		if typ != evKey || value != 1 {
			continue
		}
		for _, k := range keys {
			if code == k {
				return code, true
			}
		}
	}
	return 0, false
}
