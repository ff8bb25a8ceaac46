// Package i2cbus opens an I2C adapter through one of two backends: the
// kernel's i2c-dev ioctl interface directly, or periph.io's host drivers.
package i2cbus

import (
	"fmt"
	"strings"
	"sync"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/yunginnanet/verdant-sensors/pkg/i2cdev"
)

// Backend selects how the adapter is driven.
type Backend string

const (
	BackendIoctl  Backend = "ioctl"
	BackendPeriph Backend = "periph"
)

// ParseBackend parses a backend name, case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendIoctl, BackendPeriph:
		return b, nil
	case "":
		return BackendIoctl, nil
	default:
		return "", fmt.Errorf("unknown I2C backend %q (want %s or %s)", s, BackendIoctl, BackendPeriph)
	}
}

type conn interface {
	Tx(addr uint16, w, r []byte) error
	Close() error
	String() string
}

// BusInfo represents a snapshot of the adapter that was opened.
type BusInfo struct {
	Backend Backend
	Path    string
	Name    string
}

// String returns a string representation of the bus information.
func (bi BusInfo) String() string {
	return fmt.Sprintf("BusInfo{Backend:%s, Path:%s, Name:%s}", bi.Backend, bi.Path, bi.Name)
}

// Bus is an open I2C adapter.
type Bus struct {
	conn
	info BusInfo
}

// Info returns a snapshot of the bus information. Read-only.
func (b *Bus) Info() BusInfo {
	return b.info
}

// String returns the backend and the name the backend reports for the adapter.
func (b *Bus) String() string {
	return fmt.Sprintf("I2C[%s]: %s", b.info.Backend, b.conn.String())
}

var (
	hostOnce sync.Once
	hostErr  error
)

func initHost() error {
	hostOnce.Do(func() {
		_, hostErr = host.Init()
	})
	return hostErr
}

// Connect opens the adapter described by desc with backend.
func Connect(backend Backend, desc Descriptor) (*Bus, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	b := &Bus{info: BusInfo{Backend: backend, Path: desc.Path(), Name: desc.Name()}}

	switch backend {
	case BackendIoctl:
		d, err := i2cdev.Open(desc.Path())
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", desc.Path(), err)
		}
		b.conn = d
	case BackendPeriph:
		if err := initHost(); err != nil {
			return nil, fmt.Errorf("failed to initialize periph host drivers: %w", err)
		}
		bc, err := i2creg.Open(desc.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to open I2C bus %q: %w", desc.Name(), err)
		}
		b.conn = bc
	default:
		return nil, fmt.Errorf("unknown I2C backend %q", backend)
	}

	return b, nil
}
