package ads1115

import "fmt"

// Channel is one of the four single-ended analog inputs.
type Channel int

//goland:noinspection GoSnakeCaseUsage
const (
	CH_AIN0 Channel = iota
	CH_AIN1
	CH_AIN2
	CH_AIN3
)

// NumChannels is the number of single-ended inputs on the ADS1115.
const NumChannels = 4

// Channels lists every channel in index order.
var Channels = [NumChannels]Channel{CH_AIN0, CH_AIN1, CH_AIN2, CH_AIN3}

// SelectChannel returns the [Channel] for index, which must be in 0..3.
func SelectChannel(index int) (Channel, error) {
	switch index {
	case 0:
		return CH_AIN0, nil
	case 1:
		return CH_AIN1, nil
	case 2:
		return CH_AIN2, nil
	case 3:
		return CH_AIN3, nil
	default:
		return 0, fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidChannel, index, NumChannels-1)
	}
}

// Valid reports whether c is one of the defined channels.
func (c Channel) Valid() bool {
	return c >= CH_AIN0 && c <= CH_AIN3
}

// Index returns the numeric input index of the channel.
func (c Channel) Index() int {
	return int(c)
}

// mux returns the MUX config bits selecting c against GND.
func (c Channel) mux() (uint16, error) {
	switch c {
	case CH_AIN0:
		return ConfigMuxSingle0, nil
	case CH_AIN1:
		return ConfigMuxSingle1, nil
	case CH_AIN2:
		return ConfigMuxSingle2, nil
	case CH_AIN3:
		return ConfigMuxSingle3, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannel, int(c))
	}
}

func (c Channel) String() string {
	switch c {
	case CH_AIN0:
		return "CH_AIN0"
	case CH_AIN1:
		return "CH_AIN1"
	case CH_AIN2:
		return "CH_AIN2"
	case CH_AIN3:
		return "CH_AIN3"
	default:
		return "(invalid channel)"
	}
}
