package ads1115

// Bus is the I2C transport used by the [ADS1115]. It writes w and then
// reads len(r) bytes from the device at addr; either may be empty.
//
// [periph.io/x/conn/v3/i2c.Bus], [tinygo.org/x/drivers.I2C] and
// [github.com/yunginnanet/verdant-sensors/pkg/i2cdev.Dev] all satisfy it.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

func (adc *ADS1115) write(p []byte) error {
	return adc.bus.Tx(adc.cfg.Address, p, nil)
}

func (adc *ADS1115) writeRead(w, r []byte) error {
	return adc.bus.Tx(adc.cfg.Address, w, r)
}
