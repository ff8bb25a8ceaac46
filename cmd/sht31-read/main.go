package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"

	"github.com/yunginnanet/verdant-sensors/pkg/i2cbus"
	"github.com/yunginnanet/verdant-sensors/pkg/sht3x"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	log = zerolog.New(cw).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func flags() (bus string, addr uint, backend string, status bool, debug bool) {
	b := flag.String("bus", "/dev/i2c-1", "I2C adapter device path")
	a := flag.Uint("addr", uint(sht3x.DefaultAddress), "SHT3x I2C address")
	be := flag.String("backend", string(i2cbus.BackendIoctl), "I2C backend (ioctl, periph)")
	st := flag.Bool("status", false, "print the decoded status register instead of a measurement")
	dbg := flag.Bool("debug", false, "debug logging")
	flag.Parse()
	return *b, *a, *be, *st, *dbg
}

func main() {
	busPath, addr, backendName, status, debug := flags()
	if debug {
		log = log.Level(zerolog.DebugLevel)
	}

	backend, err := i2cbus.ParseBackend(backendName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad backend")
	}

	bus, err := i2cbus.Connect(backend, i2cbus.ByPath(busPath))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open I2C bus")
	}
	log.Debug().Stringer("bus", bus.Info()).Msg("opened I2C bus")

	err = run(sht3x.New(bus, uint16(addr)), status)

	if cerr := bus.Close(); cerr != nil {
		log.Warn().Err(cerr).Msg("failed to close I2C bus")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read SHT3x")
	}
}

func run(dev *sht3x.Device, status bool) error {
	if status {
		st, err := dev.Status()
		if err != nil {
			return err
		}
		log.Debug().Uint16("status", uint16(st)).Send()
		fmt.Printf("Status: 0x%04X %s\n", uint16(st), st)
		return nil
	}

	env := physic.Env{}
	if err := dev.Sense(&env); err != nil {
		return err
	}
	log.Debug().Int64("nano_kelvin", int64(env.Temperature)).Int32("tenth_micro_rh", int32(env.Humidity)).Send()
	fmt.Println(env.Temperature, env.Humidity)
	return nil
}
