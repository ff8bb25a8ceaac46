package ads1115

import "fmt"

// FullScaleRange is a PGA gain setting. Each range carries the magnitude
// of the voltage represented by a full-scale code.
type FullScaleRange int

//goland:noinspection GoSnakeCaseUsage
const (
	FSR_0p256V FullScaleRange = iota
	FSR_0p512V
	FSR_1p024V
	FSR_2p048V
	FSR_4p096V
	FSR_6p144V
)

// NumRanges is the number of selectable full-scale ranges.
const NumRanges = 6

type rangeInfo struct {
	volts float64
	pga   uint16
	name  string
}

var ranges = [NumRanges]rangeInfo{
	FSR_0p256V: {volts: 0.256, pga: ConfigPGA0p256V, name: "±0.256V"},
	FSR_0p512V: {volts: 0.512, pga: ConfigPGA0p512V, name: "±0.512V"},
	FSR_1p024V: {volts: 1.024, pga: ConfigPGA1p024V, name: "±1.024V"},
	FSR_2p048V: {volts: 2.048, pga: ConfigPGA2p048V, name: "±2.048V"},
	FSR_4p096V: {volts: 4.096, pga: ConfigPGA4p096V, name: "±4.096V"},
	FSR_6p144V: {volts: 6.144, pga: ConfigPGA6p144V, name: "±6.144V"},
}

// SelectRange returns the [FullScaleRange] for index (0..5) along with its
// scale factor in volts.
func SelectRange(index int) (FullScaleRange, float64, error) {
	if index < 0 || index >= NumRanges {
		return 0, 0, fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidRange, index, NumRanges-1)
	}
	fsr := FullScaleRange(index)
	return fsr, fsr.Scale(), nil
}

// Valid reports whether r is one of the defined ranges.
func (r FullScaleRange) Valid() bool {
	return r >= FSR_0p256V && r <= FSR_6p144V
}

// Scale returns the full-scale voltage of r, or 0 for an invalid range.
func (r FullScaleRange) Scale() float64 {
	if !r.Valid() {
		return 0
	}
	return ranges[r].volts
}

// PGA returns the PGA bits of the CONFIG register for r.
func (r FullScaleRange) PGA() (uint16, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRange, int(r))
	}
	return ranges[r].pga, nil
}

// Volts converts a conversion result taken at range r.
func (r FullScaleRange) Volts(raw int16) float64 {
	return float64(raw) / fullScaleCode * r.Scale()
}

func (r FullScaleRange) String() string {
	if !r.Valid() {
		return "(invalid range)"
	}
	return ranges[r].name
}

// RangeOf decodes the PGA bits of a CONFIG register value. The three PGA codes
// above 0x0A00 all select ±0.256V.
func RangeOf(config uint16) FullScaleRange {
	pga := config & ConfigPGAMask
	for r := FSR_0p256V; r <= FSR_6p144V; r++ {
		if ranges[r].pga == pga {
			return r
		}
	}
	return FSR_0p256V
}
