package ads1115

// Constants from the datasheet

// Register Addresses (pointer register values)
const (
	// RegConversion holds the last conversion result.
	RegConversion = 0x00
	// RegConfig is the configuration register.
	RegConfig = 0x01
	// RegLoThresh is the comparator low threshold register.
	RegLoThresh = 0x02
	// RegHiThresh is the comparator high threshold register.
	RegHiThresh = 0x03

	// NumRegisters is the total number of registers.
	NumRegisters = 0x04
)

// DefaultAddress is the I2C address with ADDR tied to GND.
const DefaultAddress uint16 = 0x48

// Bits for the CONFIG register
const (
	// ConfigOSSingle starts a single conversion when written, reads 1 when idle.
	ConfigOSSingle uint16 = 0x8000
	ConfigOSMask   uint16 = 0x8000

	// ConfigMuxSingle0 MUX bits, single-ended AINx vs GND
	ConfigMuxSingle0 uint16 = 0x4000
	ConfigMuxSingle1 uint16 = 0x5000
	ConfigMuxSingle2 uint16 = 0x6000
	ConfigMuxSingle3 uint16 = 0x7000
	ConfigMuxMask    uint16 = 0x7000

	// ConfigPGA6p144V PGA bits
	ConfigPGA6p144V uint16 = 0x0000
	ConfigPGA4p096V uint16 = 0x0200
	ConfigPGA2p048V uint16 = 0x0400
	ConfigPGA1p024V uint16 = 0x0600
	ConfigPGA0p512V uint16 = 0x0800
	ConfigPGA0p256V uint16 = 0x0A00
	ConfigPGAMask   uint16 = 0x0E00

	ConfigModeContinuous uint16 = 0x0000
	ConfigModeSingle     uint16 = 0x0100

	ConfigCompModeTraditional uint16 = 0x0000
	ConfigCompPolActiveLow    uint16 = 0x0000
	ConfigCompNonLatching     uint16 = 0x0000
	// ConfigCompQueueNone disables the comparator and puts ALERT/RDY in high impedance.
	ConfigCompQueueNone uint16 = 0x0003

	// ConfigReset is the power-on value of the CONFIG register.
	ConfigReset uint16 = 0x8583
)

// DR Config bits (data rate, samples per second)
const (
	DR_8_SPS   byte = 0x00
	DR_16_SPS  byte = 0x01
	DR_32_SPS  byte = 0x02
	DR_64_SPS  byte = 0x03
	DR_128_SPS byte = 0x04
	DR_250_SPS byte = 0x05
	DR_475_SPS byte = 0x06
	DR_860_SPS byte = 0x07
)

// dataRateSPS maps the DR bits to samples per second.
var dataRateSPS = [...]int{8, 16, 32, 64, 128, 250, 475, 860}

// configDataRateShift is the bit offset of DR in the CONFIG register.
const configDataRateShift = 5
