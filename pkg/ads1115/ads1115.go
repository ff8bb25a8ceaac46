package ads1115

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ADS1115 provides one-shot conversions on a TI ADS1115 16-bit ADC.
//
// It talks to the device through a [Bus]. Conversions are serialized so a
// single ADS1115 may be shared between goroutines; sharing the underlying
// bus with other devices is the caller's concern.
type ADS1115 struct {
	mu  sync.Mutex // Synchronize register transactions
	bus Bus
	cfg Config

	// Last read or written register states (for reference or debugging)
	regLR [NumRegisters]uint16 // "Last Read"  register data
	regLW [NumRegisters]uint16 // "Last Write" register data

	rx [3]byte // pointer byte + register data for readRegister
}

// Config represents user-level configuration parameters
type Config struct {
	Address  uint16         // 7-bit I2C address, 0x48..0x4B depending on ADDR strapping
	Range    FullScaleRange // FSR_xxx applied to every conversion
	DataRate byte           // DR_xxx_SPS
}

// DefaultConfig provides default config. You can adjust as needed
func DefaultConfig() Config {
	return Config{
		Address:  DefaultAddress,
		Range:    FSR_6p144V, // widest range, safe for any input up to VDD
		DataRate: DR_128_SPS, // power-on default
	}
}

// Validate checks the range and data rate of cfg.
func (cfg Config) Validate() error {
	if !cfg.Range.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRange, int(cfg.Range))
	}
	if int(cfg.DataRate) >= len(dataRateSPS) {
		return fmt.Errorf("%w: 0x%02X", ErrInvalidDataRate, cfg.DataRate)
	}
	return nil
}

// NewADS1115 constructs an ADS1115 on bus. Invalid range or data rate
// values in cfg are replaced with the defaults.
func NewADS1115(bus Bus, cfg Config) *ADS1115 {
	def := DefaultConfig()
	if cfg.Address == 0 {
		cfg.Address = def.Address
	}
	if !cfg.Range.Valid() {
		cfg.Range = def.Range
	}
	if int(cfg.DataRate) >= len(dataRateSPS) {
		cfg.DataRate = def.DataRate
	}
	return &ADS1115{bus: bus, cfg: cfg}
}

// Address returns the I2C address of the device.
func (adc *ADS1115) Address() uint16 {
	return adc.cfg.Address
}

// SetFullScaleRange selects the range used by subsequent conversions.
func (adc *ADS1115) SetFullScaleRange(fsr FullScaleRange) error {
	if !fsr.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRange, int(fsr))
	}
	adc.mu.Lock()
	adc.cfg.Range = fsr
	adc.mu.Unlock()
	return nil
}

// FullScaleRange returns the range used for conversions.
func (adc *ADS1115) FullScaleRange() FullScaleRange {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	return adc.cfg.Range
}

// SetDataRate selects the data rate (DR_xxx_SPS) used by subsequent conversions.
func (adc *ADS1115) SetDataRate(dr byte) error {
	if int(dr) >= len(dataRateSPS) {
		return fmt.Errorf("%w: 0x%02X", ErrInvalidDataRate, dr)
	}
	adc.mu.Lock()
	adc.cfg.DataRate = dr
	adc.mu.Unlock()
	return nil
}

// conversionTime is the nominal time of one conversion at the configured data rate.
func (adc *ADS1115) conversionTime() time.Duration {
	return time.Second / time.Duration(dataRateSPS[adc.cfg.DataRate])
}

// configFor builds the CONFIG register starting a single-shot conversion on ch.
func (adc *ADS1115) configFor(ch Channel) (uint16, error) {
	mux, err := ch.mux()
	if err != nil {
		return 0, err
	}
	pga, err := adc.cfg.Range.PGA()
	if err != nil {
		return 0, err
	}

	config := ConfigOSSingle | mux | pga | ConfigModeSingle
	config |= uint16(adc.cfg.DataRate&0x07) << configDataRateShift
	config |= ConfigCompModeTraditional | ConfigCompPolActiveLow | ConfigCompNonLatching | ConfigCompQueueNone
	return config, nil
}

// SingleConversion starts a single-shot conversion on ch, waits for the OS
// bit to report completion and returns the raw code.
//
// If ctx carries no deadline the wait is bounded by a few conversion periods.
func (adc *ADS1115) SingleConversion(ctx context.Context, ch Channel) (int16, error) {
	adc.mu.Lock()
	raw, _, err := adc.singleConversion(ctx, ch)
	adc.mu.Unlock()
	return raw, err
}

// singleConversion performs the conversion flow and reports the range it
// used. adc.mu must be held.
func (adc *ADS1115) singleConversion(ctx context.Context, ch Channel) (int16, FullScaleRange, error) {
	fsr := adc.cfg.Range

	config, err := adc.configFor(ch)
	if err != nil {
		return 0, fsr, err
	}

	if err = adc.writeRegister(RegConfig, config); err != nil {
		return 0, fsr, fmt.Errorf("start conversion on %s: %w", ch, err)
	}

	if err = adc.waitReady(ctx); err != nil {
		return 0, fsr, fmt.Errorf("conversion on %s: %w", ch, err)
	}

	raw, err := adc.readRegister(RegConversion)
	if err != nil {
		return 0, fsr, err
	}
	return int16(raw), fsr, nil
}

// waitReady polls the CONFIG register until OS reads back 1.
func (adc *ADS1115) waitReady(ctx context.Context) error {
	convTime := adc.conversionTime()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 4*convTime+10*time.Millisecond)
		defer cancel()
	}

	poll := convTime / 8
	if poll < 100*time.Microsecond {
		poll = 100 * time.Microsecond
	}

	timer := time.NewTimer(convTime)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrConversionTimeout, ctx.Err())
		case <-timer.C:
		}

		config, err := adc.readRegister(RegConfig)
		if err != nil {
			return err
		}
		if config&ConfigOSMask != 0 {
			return nil
		}
		timer.Reset(poll)
	}
}

// Read performs a single conversion on ch at the configured range and
// converts it to volts.
func (adc *ADS1115) Read(ctx context.Context, ch Channel) (Reading, error) {
	adc.mu.Lock()
	raw, fsr, err := adc.singleConversion(ctx, ch)
	adc.mu.Unlock()
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Channel: ch,
		Range:   fsr,
		Raw:     raw,
		Volts:   fsr.Volts(raw),
		Time:    time.Now(),
	}, nil
}

// ReadAll reads every channel in index order at the configured range.
// Readings taken before a failure are returned along with the error.
func (adc *ADS1115) ReadAll(ctx context.Context) ([]Reading, error) {
	readings := make([]Reading, 0, NumChannels)
	for _, ch := range Channels {
		r, err := adc.Read(ctx, ch)
		if err != nil {
			return readings, err
		}
		readings = append(readings, r)
	}
	return readings, nil
}

// Close returns the CONFIG register to its power-on value, leaving the
// device powered down between single-shot conversions. The bus is not closed.
func (adc *ADS1115) Close() error {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	// OS is written as 0 so that no conversion is started.
	err := adc.writeRegister(RegConfig, ConfigReset&^ConfigOSMask)
	if err != nil {
		return errors.Join(errors.New("failed to reset ADS1115 config"), err)
	}
	return nil
}
