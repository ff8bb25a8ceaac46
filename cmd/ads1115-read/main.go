package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/yunginnanet/verdant-sensors/pkg/ads1115"
	"github.com/yunginnanet/verdant-sensors/pkg/i2cbus"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	log = zerolog.New(cw).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

type options struct {
	bus     string
	addr    uint
	backend string
	all     bool
	raw     bool
	timeout time.Duration
	debug   bool
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <channel 0-3> <range 0-5>\n\n", os.Args[0])
	fmt.Fprintln(flag.CommandLine.Output(), "ranges: 0=±0.256V 1=±0.512V 2=±1.024V 3=±2.048V 4=±4.096V 5=±6.144V")
	fmt.Fprintln(flag.CommandLine.Output(), "with -all the channel argument is omitted")
	flag.PrintDefaults()
}

func flags() (opts options, args []string) {
	flag.StringVar(&opts.bus, "bus", "/dev/i2c-2", "I2C adapter device path")
	flag.UintVar(&opts.addr, "addr", uint(ads1115.DefaultAddress), "ADS1115 I2C address")
	flag.StringVar(&opts.backend, "backend", string(i2cbus.BackendIoctl), "I2C backend (ioctl, periph)")
	flag.BoolVar(&opts.all, "all", false, "read all four channels")
	flag.BoolVar(&opts.raw, "raw", false, "also print the raw conversion code")
	flag.DurationVar(&opts.timeout, "timeout", time.Second, "overall timeout for the readings")
	flag.BoolVar(&opts.debug, "debug", false, "debug logging")
	flag.Usage = usage
	flag.Parse()
	return opts, flag.Args()
}

var errArgCount = errors.New("wrong number of arguments")

// selection is the channel and range named on the command line.
type selection struct {
	ch    ads1115.Channel
	fsr   ads1115.FullScaleRange
	scale float64
}

func parseIndex(name, s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s index %q: %w", name, s, err)
	}
	return i, nil
}

// parseArgs reads <channel> <range>, or only <range> when all is set.
func parseArgs(args []string, all bool) (sel selection, err error) {
	wantArgs := 2
	if all {
		wantArgs = 1
	}
	if len(args) != wantArgs {
		return sel, fmt.Errorf("%w: got %d, want %d", errArgCount, len(args), wantArgs)
	}

	if !all {
		i, err := parseIndex("channel", args[0])
		if err != nil {
			return sel, err
		}
		if sel.ch, err = ads1115.SelectChannel(i); err != nil {
			return sel, err
		}
	}

	i, err := parseIndex("range", args[len(args)-1])
	if err != nil {
		return sel, err
	}
	sel.fsr, sel.scale, err = ads1115.SelectRange(i)
	return sel, err
}

func main() {
	opts, args := flags()
	if opts.debug {
		log = log.Level(zerolog.DebugLevel)
	}

	sel, err := parseArgs(args, opts.all)
	if err != nil {
		if errors.Is(err, errArgCount) {
			flag.Usage()
		}
		log.Fatal().Err(err).Strs("args", args).Msg("bad arguments")
	}

	backend, err := i2cbus.ParseBackend(opts.backend)
	if err != nil {
		log.Fatal().Err(err).Msg("bad backend")
	}

	bus, err := i2cbus.Connect(backend, i2cbus.ByPath(opts.bus))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open I2C bus")
	}
	log.Debug().Stringer("bus", bus.Info()).Msg("opened I2C bus")

	cfg := ads1115.DefaultConfig()
	cfg.Address = uint16(opts.addr)
	cfg.Range = sel.fsr
	adc := ads1115.NewADS1115(bus, cfg)

	log.Debug().Any("config", cfg).Float64("scale_volts", sel.scale).Msg("configured ADS1115")

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	err = run(ctx, adc, sel.ch, opts)
	if err == nil && opts.debug {
		logRegisters(ctx, adc)
	}
	cancel()

	if cerr := adc.Close(); cerr != nil {
		log.Warn().Err(cerr).Msg("failed to close ADS1115")
	}
	if cerr := bus.Close(); cerr != nil {
		log.Warn().Err(cerr).Msg("failed to close I2C bus")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read ADS1115")
	}
}

func run(ctx context.Context, adc *ads1115.ADS1115, ch ads1115.Channel, opts options) error {
	if opts.all {
		readings, err := adc.ReadAll(ctx)
		for _, r := range readings {
			log.Debug().Stringer("reading", r).Send()
			if opts.raw {
				fmt.Printf("Channel %d: %v (%d)\n", r.Channel.Index(), r.Volts, r.Raw)
				continue
			}
			fmt.Printf("Channel %d: %v\n", r.Channel.Index(), r.Volts)
		}
		return err
	}

	r, err := adc.Read(ctx, ch)
	if err != nil {
		return err
	}
	log.Debug().Stringer("reading", r).Send()
	if opts.raw {
		fmt.Println(r.Volts, r.Raw)
		return nil
	}
	fmt.Println(r.Volts)
	return nil
}

func logRegisters(ctx context.Context, adc *ads1115.ADS1115) {
	regs, err := adc.Registers(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("failed to read ADS1115 registers")
		return
	}
	ev := log.Debug()
	for reg, val := range regs {
		ev = ev.Str(reg.String(), fmt.Sprintf("0x%04X", val))
	}
	ev.Stringer("device_range", ads1115.RangeOf(regs[ads1115.RegConfig])).Msg("ADS1115 registers")
}
