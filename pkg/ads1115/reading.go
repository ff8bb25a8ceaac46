package ads1115

import (
	"fmt"
	"math"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Reading is one converted sample.
type Reading struct {
	Channel Channel        `json:"channel"`
	Range   FullScaleRange `json:"range"`
	Raw     int16          `json:"raw"`
	Volts   float64        `json:"volts"`
	Time    time.Time      `json:"time"`
}

// Potential returns the reading as a [physic.ElectricPotential].
func (r Reading) Potential() physic.ElectricPotential {
	return physic.ElectricPotential(math.Round(r.Volts * float64(physic.Volt)))
}

func (r Reading) String() string {
	return fmt.Sprintf("%s@%s: %d (%s)", r.Channel, r.Range, r.Raw, r.Potential())
}
