package i2cbus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// devPrefix is the path prefix of Linux I2C adapters.
const devPrefix = "/dev/i2c-"

var ErrBadDescriptor = errors.New("invalid I2C bus descriptor provided")

// Descriptor identifies an I2C adapter by number or by device path.
type Descriptor struct {
	Number int
	path   string
}

// Validate checks if [Descriptor] is valid.
func (d Descriptor) Validate() error {
	if d.Number < 0 && d.path == "" {
		return ErrBadDescriptor
	}
	return nil
}

// Path returns the character device path of the adapter.
func (d Descriptor) Path() string {
	if d.path != "" {
		return d.path
	}
	return devPrefix + strconv.Itoa(d.Number)
}

// Name returns the name the adapter is registered under in periph's i2creg:
// its number when known, otherwise the path.
func (d Descriptor) Name() string {
	if d.Number >= 0 {
		return strconv.Itoa(d.Number)
	}
	return d.path
}

// String returns a string representation of the [Descriptor].
func (d Descriptor) String() string {
	return fmt.Sprintf("Descriptor{Number:%d, Path:%s}", d.Number, d.Path())
}

// ByNumber returns a [Descriptor] for /dev/i2c-<number>.
func ByNumber(number int) Descriptor {
	return Descriptor{Number: number}
}

// ByPath returns a [Descriptor] for the adapter at path. The bus number is
// recovered from paths of the form /dev/i2c-N.
func ByPath(path string) Descriptor {
	d := Descriptor{Number: -1, path: path}
	if n, ok := strings.CutPrefix(path, devPrefix); ok {
		if num, err := strconv.Atoi(n); err == nil && num >= 0 {
			d.Number = num
		}
	}
	return d
}
