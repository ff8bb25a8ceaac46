package ads1115

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidChannel    = errors.New("invalid channel")
	ErrInvalidRange      = errors.New("invalid full-scale range")
	ErrOutOfDomain       = errors.New("raw sample outside signed 16-bit range")
	ErrInvalidDataRate   = errors.New("invalid data rate")
	ErrConversionTimeout = errors.New("conversion did not complete")
)

// fullScaleCode is the code magnitude that would represent +FS. Positive
// full scale is one LSB short of it, so 32767 reads slightly below scale.
const fullScaleCode = 32768.0

// Convert converts a raw signed 16-bit code to volts using scaleVolts, the
// scale factor returned by [SelectRange].
func Convert(raw int, scaleVolts float64) (float64, error) {
	if raw < math.MinInt16 || raw > math.MaxInt16 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfDomain, raw)
	}
	return float64(raw) / fullScaleCode * scaleVolts, nil
}

// Convert16 interprets a 2-byte big-endian two's complement value as int16.
func Convert16(data []byte) int16 {
	return int16(uint16(data[0])<<8 | uint16(data[1]))
}
