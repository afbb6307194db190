package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-bargraph/bargraph"
	"github.com/coreman2200/funtimes-bargraph/config"
	"github.com/coreman2200/funtimes-bargraph/sim"
)

var cycle = [...]bargraph.Color{bargraph.Green, bargraph.Red, bargraph.Yellow}

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "path to config.yaml")
		simOnly     = flag.Bool("sim-only", false, "force console simulation (no hardware output)")
		busName     = flag.String("bus", "", "I2C bus name or alias (empty picks the first)")
		address     = flag.Uint("address", 0, "display address (0 uses config/default)")
		stepMs      = flag.Int("step-ms", 0, "demo step interval in ms (0 uses config/default)")
		writeConfig = flag.Bool("write-config", false, "write the effective config to -config and exit")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with defaults")
	} else {
		cfg = c
	}
	if *busName != "" {
		cfg.I2C.Bus = *busName
	}
	if *address != 0 {
		cfg.I2C.Address = uint16(*address)
	}
	if *stepMs > 0 {
		cfg.StepMs = *stepMs
	}
	if *simOnly {
		cfg.Driver = "sim"
	}

	if *writeConfig {
		if err := config.Save(*configPath, cfg); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config save failed")
		}
		return
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("host init failed")
	}

	b, err := bargraph.NewAt(openTransport(cfg), cfg.I2C.Address)
	if err != nil {
		log.Fatal().Err(err).Msg("bargraph init failed")
	}
	defer b.Clear()

	runDemo(b, time.Duration(cfg.StepMs)*time.Millisecond)
}

func openTransport(cfg *config.Config) bargraph.Transport {
	if cfg.Driver != "sim" {
		bus, err := i2creg.Open(cfg.I2C.Bus)
		if err == nil {
			if err := bus.SetSpeed(400 * physic.KiloHertz); err != nil {
				log.Warn().Err(err).Msg("could not set bus speed")
			}
			log.Info().Str("bus", bus.String()).Msg("driving the display over I2C")
			return bargraph.NewI2CTransport(bus)
		}
		log.Warn().Err(err).Msg("Failed to find an I2C bus, printing at the console")
	}
	return sim.New()
}

func runDemo(b *bargraph.Dev, step time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	defer func() {
		signal.Stop(c)
		cancel()
	}()

	wg := &sync.WaitGroup{}
	wg.Add(1)

	d := demo{b: b}
	ticker := time.NewTicker(step)

	go func(cc context.Context) {
		for {
			select {
			case <-ticker.C:
				if err := d.stepOnce(); err != nil {
					log.Error().Err(err).Msg("display write failed")
					ticker.Stop()
					cancel()
					wg.Done()
					return
				}

			case sig := <-c:
				log.Info().Str("signal", sig.String()).Msg("Aborting...")
				ticker.Stop()
				cancel()
				wg.Done()
				return

			case <-cc.Done():
				ticker.Stop()
				wg.Done()
				return
			}
		}
	}(ctx)

	wg.Wait()
}

// demo walks the two showcase phases: lighting bars 1-24 one per tick with
// cycling colors, then sweeping a percentage fill from 0 to 100.
type demo struct {
	b     *bargraph.Dev
	phase int
	i     int
}

func (d *demo) stepOnce() error {
	switch d.phase {
	case 0:
		d.i++
		d.b.SetBar(d.i, cycle[(d.i-1)%len(cycle)])
		if err := d.b.Update(); err != nil {
			return err
		}
		if d.i >= bargraph.NumBars {
			d.phase, d.i = 1, -1
		}

	case 1:
		// green up to 50%, yellow to 80%, red above
		d.i++
		c := bargraph.Green
		if d.i > 80 {
			c = bargraph.Red
		} else if d.i > 50 {
			c = bargraph.Yellow
		}
		if err := d.b.SetPercentage(float64(d.i)/100, c); err != nil {
			return err
		}
		if d.i >= 100 {
			d.phase, d.i = 0, 0
			return d.b.Clear()
		}
	}
	return nil
}
