// Package i2cdev provides raw access to Linux I2C character devices
// (/dev/i2c-N).
//
// See https://docs.kernel.org/i2c/dev-interface.html
package i2cdev

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// i2cSlave is the I2C_SLAVE ioctl request from <linux/i2c-dev.h>.
const i2cSlave = 0x0703

var (
	ErrClosed     = errors.New("i2cdev: device closed")
	ErrBadAddress = errors.New("i2cdev: invalid 7-bit address")
	ErrNoAddress  = errors.New("i2cdev: target address not set")
	errEmptyPath  = errors.New("i2cdev: empty device path")
)

// Dev is an open I2C adapter. Tx is safe for concurrent use; the raw
// SetAddress/Read/Write calls are not and must be serialized by the caller.
type Dev struct {
	mu      sync.Mutex
	f       *os.File
	path    string
	addr    uint16
	addrSet bool
}

// Open opens the I2C adapter at path, e.g. "/dev/i2c-1".
func Open(path string) (*Dev, error) {
	if path == "" {
		return nil, errEmptyPath
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	return &Dev{f: f, path: path}, nil
}

// Path returns the device path passed to [Open].
func (d *Dev) Path() string {
	return d.path
}

func (d *Dev) String() string {
	return d.path
}

// Address returns the current target address and whether one was set.
func (d *Dev) Address() (uint16, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addr, d.addrSet
}

// SetAddress selects the target device for subsequent Read and Write calls.
func (d *Dev) SetAddress(addr uint16) error {
	if d.f == nil {
		return ErrClosed
	}
	if addr > 0x7F {
		return fmt.Errorf("%w: 0x%X", ErrBadAddress, addr)
	}
	if d.addrSet && d.addr == addr {
		return nil
	}
	if err := unix.IoctlSetInt(int(d.f.Fd()), i2cSlave, int(addr)); err != nil {
		d.addrSet = false
		return fmt.Errorf("set target address 0x%02X on %s: %w", addr, d.path, err)
	}
	d.addr, d.addrSet = addr, true
	return nil
}

// Write sends p to the current target as a single I2C write.
func (d *Dev) Write(p []byte) (int, error) {
	if d.f == nil {
		return 0, ErrClosed
	}
	if !d.addrSet {
		return 0, ErrNoAddress
	}
	n, err := d.f.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Read fills p from the current target with a single I2C read.
func (d *Dev) Read(p []byte) (int, error) {
	if d.f == nil {
		return 0, ErrClosed
	}
	if !d.addrSet {
		return 0, ErrNoAddress
	}
	n, err := d.f.Read(p)
	if err == nil && n < len(p) {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// Tx addresses addr, writes w and then reads len(r) bytes. The write and the
// read are separate transfers with a STOP between them.
func (d *Dev) Tx(addr uint16, w, r []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.SetAddress(addr); err != nil {
		return err
	}
	if len(w) > 0 {
		if _, err := d.Write(w); err != nil {
			return fmt.Errorf("write %d bytes to 0x%02X: %w", len(w), addr, err)
		}
	}
	if len(r) > 0 {
		if _, err := d.Read(r); err != nil {
			return fmt.Errorf("read %d bytes from 0x%02X: %w", len(r), addr, err)
		}
	}
	return nil
}

// Close closes the adapter.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.f == nil {
		return ErrClosed
	}
	err := d.f.Close()
	d.f = nil
	d.addrSet = false
	return err
}
