package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/matrix"
	"github.com/BeatGlow/matrix/framebuffer"
	"github.com/BeatGlow/matrix/internal/config"
	"github.com/BeatGlow/matrix/pattern"
	"github.com/BeatGlow/matrix/text"
)

func main() {
	var (
		configFlag     = flag.String("config", "", "path to a YAML configuration file")
		driverFlag     = flag.String("driver", "", "driver: gpio | cdev | fb | sim (default from config)")
		brightnessFlag = flag.Int("brightness", -1, "brightness 0..255 (default from config)")
		speedFlag      = flag.Duration("speed", 0, "frame delay (default from config)")
		patternFlag    = flag.String("pattern", "", "comma separated patterns to run (default from config)")
		textFlag       = flag.String("text", "", "marquee text (default from config)")
		loopFlag       = flag.Bool("loop", false, "repeat the patterns until interrupted")
		saveFlag       = flag.String("save", "", "write the effective configuration to a file and exit")
		debugFlag      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if *debugFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		matrix.SetLogger(log.Logger.With().Str("module", "matrix").Logger())
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			fatal(err)
		}
	}
	if *driverFlag != "" {
		cfg.Driver = *driverFlag
	}
	if *brightnessFlag >= 0 {
		if *brightnessFlag > 255 {
			fatal(fmt.Errorf("brightness %d out of range", *brightnessFlag))
		}
		cfg.Brightness = uint8(*brightnessFlag)
	}
	if *speedFlag > 0 {
		cfg.Speed = *speedFlag
	}
	if *patternFlag != "" {
		cfg.Patterns = strings.Split(*patternFlag, ",")
	}
	if *textFlag != "" {
		cfg.Text.Message = *textFlag
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if *saveFlag != "" {
		if err := config.Save(*saveFlag, cfg); err != nil {
			fatal(err)
		}
		log.Info().Str("path", *saveFlag).Msg("configuration saved")
		return
	}

	patterns, err := buildPatterns(cfg)
	if err != nil {
		fatal(err)
	}

	drv, err := openDriver(cfg)
	if err != nil {
		fatal(err)
	}
	log.Info().Str("driver", cfg.Driver).Str("output", fmt.Sprint(drv)).Msg("using driver")

	m := matrix.New(drv, cfg.Matrix())
	if err = m.Begin(); err != nil {
		_ = drv.Close()
		fatal(err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error().Err(err).Msg("close failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, m, cfg.Patterns, patterns, *loopFlag); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("pattern failed")
	}
}

func openDriver(cfg *config.Config) (matrix.Driver, error) {
	switch cfg.Driver {
	case config.DriverGPIO:
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		return matrix.OpenGPIO(cfg.GPIOConfig())
	case config.DriverCdev:
		return matrix.OpenCdev(cfg.CdevConfig())
	case config.DriverFB:
		return framebuffer.Open(cfg.Framebuffer.Device, cfg.Framebuffer.Scale)
	case config.DriverSim:
		return newPreview(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

func buildPatterns(cfg *config.Config) (map[string]pattern.Pattern, error) {
	color, err := cfg.Text.RGB()
	if err != nil {
		return nil, err
	}

	var renderer text.Renderer
	switch cfg.Text.Font {
	case "vector":
		if renderer, err = text.NewVector(nil, cfg.Text.Size); err != nil {
			return nil, err
		}
	default:
		renderer = text.NewBitmap(nil)
	}

	speed := cfg.Speed
	patterns := map[string]pattern.Pattern{
		"rainbow":      pattern.Rainbow(speed),
		"pulse":        pattern.BrightnessPulse(speed / 2),
		"dots":         pattern.BouncingDots(5, speed, rand.New(rand.NewSource(time.Now().UnixNano()))),
		"checkerboard": pattern.Checkerboard(3 * time.Second),
		"wave":         pattern.Wave(40, speed),
		"fill":         pattern.FillAnimation(speed),
		"hue":          pattern.Hue(5, speed/2),
		"marquee":      pattern.Marquee(renderer, cfg.Text.Message, color, speed),
	}
	for _, name := range cfg.Patterns {
		if _, ok := patterns[name]; !ok {
			return nil, fmt.Errorf("unknown pattern %q", name)
		}
	}
	return patterns, nil
}

func run(ctx context.Context, m *matrix.Matrix, names []string, patterns map[string]pattern.Pattern, loop bool) error {
	delay := pattern.Sleep(ctx)
	for {
		for _, name := range names {
			log.Debug().Str("pattern", name).Msg("running")
			start := time.Now()
			if err := patterns[name](m, delay); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			log.Info().Str("pattern", name).Dur("took", time.Since(start)).Msg("done")
		}
		if !loop {
			return nil
		}
	}
}

func fatal(err error) {
	log.Fatal().Err(err).Msg("fatal")
}
