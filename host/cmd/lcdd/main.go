// lcdd plays the device end of the display link on a host: it reads
// packets from a serial port and drives an emulated screen or an HD44780
// wired to the GPIO header.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"lcdlink/core"
	"lcdlink/host/config"
	"lcdlink/host/lcd"
	"lcdlink/host/logging"
	"lcdlink/host/serial"
	"lcdlink/protocol"
)

var (
	configPath = flag.String("config", "", "Configuration file")
	port       = flag.String("port", "", "Serial device path (overrides device.port)")
	driver     = flag.String("driver", "", "Display driver: screen or gpio (overrides device.driver)")
	noBanner   = flag.Bool("no-banner", false, "Skip the start-up banner")
	logLevel   = flag.String("log-level", "", "Log level")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *port != "" {
		cfg.Device.Port = *port
	}
	if *driver != "" {
		cfg.Device.Driver = strings.ToLower(*driver)
	}
	if *noBanner {
		cfg.Device.Banner = false
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logging.InitLogger("lcdd", cfg.LogLevel)

	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("lcdd stopped")
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if cfg.Device.Port == "" {
		return errors.New("no serial port given, use -port or device.port")
	}

	display, render, halt, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	defer halt()

	p, err := serial.Open(serial.DefaultConfig(cfg.Device.Port))
	if err != nil {
		return err
	}
	// drop whatever arrived before we were listening, it may start mid-packet
	if err := p.Flush(); err != nil {
		log.Warn().Err(err).Msg("flush failed")
	}
	src := serial.NewSource(p, serial.DefaultSourceCapacity)

	if cfg.Device.Banner {
		core.ShowBanner(display, cfg.Device.BannerText)
		render(nil)
	}

	d := core.NewDispatcher(src, display, core.Options{
		Yield: src.Yield,
		OnPacket: func(pkt protocol.Packet) {
			log.Debug().Stringer("tag", pkt.Tag()).Msg("packet")
			render(pkt)
		},
		OnDecodeError: func(tag byte) {
			log.Warn().Uint8("tag", tag).Msg("unknown tag")
			render(nil)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	log.Info().Str("port", cfg.Device.Port).Str("driver", cfg.Device.Driver).Msg("listening")

	select {
	case err = <-errc:
	case <-ctx.Done():
		// the dispatcher may be blocked inside a packet; closing the port
		// ends the read
		err = ctx.Err()
	}
	p.Close()

	s := d.Stats()
	log.Info().
		Uint32("packets", s.Packets).
		Uint32("idle", s.Idle).
		Uint32("decode_errors", s.DecodeErrors).
		Uint32("handler_errors", s.HandlerErrors).
		Msg("done")

	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// openDisplay returns the configured driver, a function that shows its
// state after a packet (nil for the banner and decode errors) and one that
// shuts it down
func openDisplay(cfg config.Config) (core.DisplayDriver, func(protocol.Packet), func(), error) {
	switch cfg.Device.Driver {
	case config.DriverGPIO:
		dev, err := openGPIO(cfg.Device.Pins)
		if err != nil {
			return nil, nil, nil, err
		}
		render := func(protocol.Packet) {
			if err := dev.Err(); err != nil {
				log.Error().Err(err).Msg("gpio write failed")
			}
		}
		halt := func() {
			if err := dev.Halt(); err != nil {
				log.Error().Err(err).Msg("display halt failed")
			}
		}
		return dev, render, halt, nil

	default:
		screen := core.NewScreen()
		render := func(p protocol.Packet) { drawScreen(os.Stdout, screen, p) }
		return screen, render, func() {}, nil
	}
}

func openGPIO(names config.PinConfig) (*lcd.Dev, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}

	lookup := func(name string) (gpio.PinOut, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio pin %q not found", name)
		}
		return p, nil
	}

	var pins lcd.Pins
	var err error
	if pins.RS, err = lookup(names.RS); err != nil {
		return nil, err
	}
	if pins.E, err = lookup(names.E); err != nil {
		return nil, err
	}
	for i, name := range []string{names.D4, names.D5, names.D6, names.D7} {
		if pins.D[i], err = lookup(name); err != nil {
			return nil, err
		}
	}
	return lcd.New(pins)
}

// drawScreen prints the visible rows, and the new bitmap after a CreateGlyph
func drawScreen(w io.Writer, s *core.Screen, p protocol.Packet) {
	if cg, ok := p.(protocol.CreateGlyph); ok {
		fmt.Fprintf(w, "glyph %d\n", cg.Index&protocol.GlyphMaxIndex)
		for _, row := range s.RenderGlyph(cg.Index) {
			fmt.Fprintf(w, "  %s\n", row)
		}
	}

	row, col := s.Cursor()
	fmt.Fprintln(w, "+----------------+")
	for _, line := range s.Render() {
		fmt.Fprintf(w, "|%s|\n", line)
	}
	fmt.Fprintf(w, "+----------------+ cursor %d,%d\n", row, col)
}
