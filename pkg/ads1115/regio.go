package ads1115

import (
	"context"
	"fmt"
)

// Register is an ADS1115 pointer register value.
type Register byte

func (r Register) String() string {
	switch r {
	case RegConversion:
		return "Conversion"
	case RegConfig:
		return "Config"
	case RegLoThresh:
		return "Lo_thresh"
	case RegHiThresh:
		return "Hi_thresh"
	default:
		return fmt.Sprintf("Register(0x%02X)", byte(r))
	}
}

// LastReadRegister returns the value most recently read from reg.
func (adc *ADS1115) LastReadRegister(reg Register) uint16 {
	if reg >= NumRegisters {
		return 0
	}
	adc.mu.Lock()
	v := adc.regLR[reg]
	adc.mu.Unlock()
	return v
}

// LastWrittenRegister returns the value most recently written to reg.
func (adc *ADS1115) LastWrittenRegister(reg Register) uint16 {
	if reg >= NumRegisters {
		return 0
	}
	adc.mu.Lock()
	v := adc.regLW[reg]
	adc.mu.Unlock()
	return v
}

// writeRegister writes a 16-bit value, MSB first, to register [regAddr].
func (adc *ADS1115) writeRegister(regAddr Register, value uint16) error {
	if regAddr >= NumRegisters || regAddr == RegConversion {
		return fmt.Errorf("invalid register address 0x%02X", byte(regAddr))
	}

	out := get3Bytes()
	out[0] = byte(regAddr)
	out[1] = byte(value >> 8)
	out[2] = byte(value)

	err := adc.write(out)
	put3Bytes(out)
	if err != nil {
		return fmt.Errorf("write %s register: %w", regAddr, err)
	}

	adc.regLW[regAddr] = value
	return nil
}

// readRegister sets the pointer register to [regAddr] and reads 2 bytes.
// adc.mu must be held.
func (adc *ADS1115) readRegister(regAddr Register) (uint16, error) {
	if regAddr >= NumRegisters {
		return 0, fmt.Errorf("invalid register address 0x%02X", byte(regAddr))
	}

	// rx is shared; adc.mu serializes its use.
	ptr, buf := adc.rx[:1], adc.rx[1:3]
	ptr[0] = byte(regAddr)
	if err := adc.writeRead(ptr, buf); err != nil {
		return 0, fmt.Errorf("read %s register: %w", regAddr, err)
	}

	adc.regLR[regAddr] = uint16(Convert16(buf))
	return adc.regLR[regAddr], nil
}

// Registers reads every register and returns a snapshot keyed by address.
func (adc *ADS1115) Registers(ctx context.Context) (map[Register]uint16, error) {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	registers := make(map[Register]uint16, NumRegisters)
	for reg := Register(0); reg < NumRegisters; reg++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		val, err := adc.readRegister(reg)
		if err != nil {
			return nil, err
		}
		registers[reg] = val
	}
	return registers, nil
}
