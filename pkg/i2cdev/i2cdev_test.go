package i2cdev

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"golang.org/x/sys/unix"
)

func TestOpen(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "i2c-99"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if _, err := Open(""); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("RegularFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "i2c-0")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		d, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.String() != path || d.Path() != path {
			t.Errorf("unexpected path %q", d.String())
		}

		// a regular file does not implement the I2C ioctls
		if err = d.SetAddress(0x48); err == nil {
			t.Error("expected ioctl error")
		}
		if _, ok := d.Address(); ok {
			t.Error("address must not be set after a failed ioctl")
		}
		if _, err = d.Write([]byte{0x01}); !errors.Is(err, ErrNoAddress) {
			t.Errorf("expected ErrNoAddress, got %v", err)
		}
		if _, err = d.Read(make([]byte, 2)); !errors.Is(err, ErrNoAddress) {
			t.Errorf("expected ErrNoAddress, got %v", err)
		}
		if err = d.SetAddress(0x80); !errors.Is(err, ErrBadAddress) {
			t.Errorf("expected ErrBadAddress, got %v", err)
		}

		if err = d.Close(); err != nil {
			t.Errorf("failed to close: %v", err)
		}
		if err = d.Close(); !errors.Is(err, ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
		if err = d.Tx(0x48, []byte{0x00}, nil); !errors.Is(err, ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	})
}

// TestTx drives SetAddress through Tx. A regular file answers the I2C_SLAVE
// ioctl with ENOTTY, which must surface unchanged and leave no address cached.
func TestTx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2c-1")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()

	t.Run("Ioctl", func(t *testing.T) {
		err := d.Tx(0x44, []byte{0x24, 0x00}, make([]byte, 6))
		if !errors.Is(err, unix.ENOTTY) {
			t.Fatalf("expected ENOTTY from the I2C_SLAVE ioctl, got %v", err)
		}
		if !strings.Contains(err.Error(), "0x44") {
			t.Errorf("error lacks the target address: %v", err)
		}
		if addr, ok := d.Address(); ok {
			t.Errorf("address 0x%02X cached after a failed ioctl", addr)
		}
	})

	t.Run("BadAddress", func(t *testing.T) {
		if err := d.Tx(0x80, nil, make([]byte, 1)); !errors.Is(err, ErrBadAddress) {
			t.Errorf("expected ErrBadAddress, got %v", err)
		}
	})
}

// TestAddressConcurrent reads the cached address while Tx updates it. Run
// with -race.
func TestAddressConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2c-2")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer d.Close()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(addr uint16) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = d.Tx(addr, []byte{0x00}, nil)
			}
		}(uint16(0x48 + i))
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := d.Address(); ok {
					t.Error("address cached after a failed ioctl")
					return
				}
			}
		}()
	}
	wg.Wait()
}

// TestHardware talks to a real adapter. Set TEST_I2C_BUS to the adapter path
// and TEST_I2C_ADDR to a device address known to ACK.
func TestHardware(t *testing.T) {
	path := os.Getenv("TEST_I2C_BUS")
	if path == "" {
		t.Skip("set 'TEST_I2C_BUS' in environment to run this test")
	}

	addr := uint64(0x48)
	if s := strings.TrimSpace(os.Getenv("TEST_I2C_ADDR")); s != "" {
		var err error
		if addr, err = strconv.ParseUint(s, 0, 7); err != nil {
			t.Fatalf("bad 'TEST_I2C_ADDR' environment variable: %v\nvalue: %s", err, s)
		}
	}

	d, err := Open(path)
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer d.Close()

	buf := make([]byte, 2)
	if err = d.Tx(uint16(addr), nil, buf); err != nil {
		t.Fatalf("read error: %v", err)
	}
	t.Logf("0x%02X: % X", addr, buf)
}
