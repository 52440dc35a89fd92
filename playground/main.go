package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fuwjin/wheatgrass"
	"github.com/fuwjin/wheatgrass/config"
	"github.com/fuwjin/wheatgrass/runner"
	"github.com/rs/zerolog"
)

// -------------------------------------- PLAYGROUND CODE --------------------------------------
// small demo application wiring a logger and a greeter through the injector

type AppConfig struct {
	Greeting string `mapstructure:"greeting"`
	LogLevel string `mapstructure:"log_level"`
}

func (c *AppConfig) ApplyDefault() {
	if c.Greeting == "" {
		c.Greeting = "hello"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoggingModule exposes the application logger through member scanning.
type LoggingModule struct {
	cfg *AppConfig
}

func (m *LoggingModule) ProvideLogger() (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(m.cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", m.cfg.LogLevel, err)
	}

	var writer io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &logger, nil
}

type Greeter struct {
	Logger   *zerolog.Logger
	Greeting string
}

func (g *Greeter) Run(_ context.Context) error {
	g.Logger.Info().Msgf("%s from wheatgrass", g.Greeting)
	return nil
}

// GreeterModule builds the greeter from the logger and the configured
// greeting.
type GreeterModule struct{}

func (m *GreeterModule) ProvideGreeter(logger *zerolog.Logger, cfg *AppConfig) (*Greeter, error) {
	return &Greeter{Logger: logger, Greeting: cfg.Greeting}, nil
}

func main() {
	cfg, err := config.Load[AppConfig](config.WithEnvPrefix("playground"))
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	injector, err := wheatgrass.NewInjector().
		WithConstants(cfg).
		WithContext(wheatgrass.EnvContext()).
		WithMembers(&LoggingModule{cfg: cfg}, &GreeterModule{}).
		Build()
	if err != nil {
		fmt.Printf("Error building injector: %v\n", err)
		return
	}
	defer func() {
		_ = injector.Close()
	}()

	greeter, err := wheatgrass.Resolve[*Greeter](injector)
	if err != nil {
		fmt.Printf("Error resolving greeter: %v\n", err)
		fmt.Println(injector.Describe())
		return
	}

	if err := runner.RunAll(context.Background(), greeter); err != nil {
		fmt.Printf("Error running: %v\n", err)
	}
}
