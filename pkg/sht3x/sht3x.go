// Package sht3x reads temperature and relative humidity from Sensirion
// SHT30/SHT31/SHT35 sensors.
//
// Every response word is checked against its CRC-8 before it is decoded.
package sht3x

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

const (
	DefaultAddress   uint16 = 0x44 // ADDR pin low
	AlternateAddress uint16 = 0x45 // ADDR pin high
)

// Commands
const (
	cmdMeasureHighRep uint16 = 0x2400 // single shot, no clock stretching
	cmdReadStatus  uint16 = 0xF32D
	cmdClearStatus uint16 = 0x3041
	cmdSoftReset   uint16 = 0x30A2
	cmdHeaterOn    uint16 = 0x306D
	cmdHeaterOff   uint16 = 0x3066
)

// measureDelay covers tMEAS at high repeatability (15.5ms max).
const measureDelay = 16 * time.Millisecond

var ErrCRC = errors.New("sht3x: invalid crc8")

// Bus is the I2C transport.
type Bus = drivers.I2C

// Device is an SHT3x sensor.
type Device struct {
	mu   sync.Mutex
	bus  Bus
	addr uint16
}

// New returns a Device at addr on bus; addr 0 selects [DefaultAddress].
func New(bus Bus, addr uint16) *Device {
	if addr == 0 {
		addr = DefaultAddress
	}
	return &Device{bus: bus, addr: addr}
}

// Address returns the I2C address of the sensor.
func (d *Device) Address() uint16 {
	return d.addr
}

// Sense performs a high-repeatability single-shot measurement and fills
// the temperature and humidity of env. env is left untouched on error.
func (d *Device) Sense(env *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.writeCmd(cmdMeasureHighRep); err != nil {
		return err
	}
	time.Sleep(measureDelay)

	var buf [6]byte
	if err := d.bus.Tx(d.addr, nil, buf[:]); err != nil {
		return fmt.Errorf("sht3x: read measurement: %w", err)
	}
	rawT, err := checkWord("temperature", buf[0:3])
	if err != nil {
		return err
	}
	rawRH, err := checkWord("humidity", buf[3:6])
	if err != nil {
		return err
	}

	env.Temperature = temperature(rawT)
	env.Humidity = humidity(rawRH)
	return nil
}

// temperature is -45 + 175 * raw / (2^16 - 1) °C.
func temperature(raw uint16) physic.Temperature {
	t := physic.Temperature(int64(raw) * 175 * int64(physic.Kelvin) / 0xFFFF)
	return physic.ZeroCelsius - 45*physic.Celsius + t
}

// humidity is 100 * raw / (2^16 - 1) %RH.
func humidity(raw uint16) physic.RelativeHumidity {
	return physic.RelativeHumidity(int64(raw) * 100 * int64(physic.PercentRH) / 0xFFFF)
}

// checkWord validates a big-endian word followed by its CRC.
func checkWord(what string, b []byte) (uint16, error) {
	if b[2] != crc8(b[0:2]) {
		return 0, fmt.Errorf("%w: %s 0x%02X%02X, crc 0x%02X", ErrCRC, what, b[0], b[1], b[2])
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (d *Device) writeCmd(cmd uint16) error {
	if err := d.bus.Tx(d.addr, []byte{byte(cmd >> 8), byte(cmd)}, nil); err != nil {
		return fmt.Errorf("sht3x: command 0x%04X: %w", cmd, err)
	}
	return nil
}

// Status reads and checks the status register.
func (d *Device) Status() (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.writeCmd(cmdReadStatus); err != nil {
		return 0, err
	}

	var buf [3]byte
	if err := d.bus.Tx(d.addr, nil, buf[:]); err != nil {
		return 0, fmt.Errorf("sht3x: read status: %w", err)
	}
	v, err := checkWord("status", buf[:])
	if err != nil {
		return 0, err
	}
	return Status(v), nil
}

// ClearStatus clears the alert and reset-detected flags.
func (d *Device) ClearStatus() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeCmd(cmdClearStatus)
}

// SoftReset reloads the calibration data and resets the sensor state.
func (d *Device) SoftReset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.writeCmd(cmdSoftReset); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond) // tSR max 1.5ms
	return nil
}

// Heater turns the internal heater on or off.
func (d *Device) Heater(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		return d.writeCmd(cmdHeaterOn)
	}
	return d.writeCmd(cmdHeaterOff)
}

// crc8 is the Sensirion checksum: polynomial 0x31, init 0xFF.
func crc8(buf []byte) uint8 {
	var (
		poly uint8 = 0x31
		crc  uint8 = 0xFF
	)

	for _, v := range buf {
		crc ^= v
		for i := 0; i < 8; i++ {
			if (crc & 0x80) != 0 {
				crc = (crc << 1) ^ poly
			} else {
				crc = crc << 1
			}
		}
	}
	return crc
}
