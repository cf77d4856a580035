package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/sandbox/event"
)

// Config holds process settings. Environment variables set the defaults and
// command-line flags override them.
type Config struct {
	Debug       bool   `env:"SANDBOX_DEBUG"`
	Scene       string `env:"SANDBOX_SCENE"        envDefault:"scene.yaml"`
	Watch       bool   `env:"SANDBOX_WATCH"`
	TPS         int    `env:"SANDBOX_TPS"          envDefault:"60"`
	DrainEvents bool   `env:"SANDBOX_DRAIN_EVENTS"`
	BaseMonitor bool   `env:"SANDBOX_BASE_MONITOR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load parses the environment and then args. name is used in flag usage output.
func Load(name string, args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging and overlay")
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "scene file in prefabs/")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload the scene when prefabs/ changes")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "fixed updates per second")
	fs.BoolVar(&cfg.DrainEvents, "drain", cfg.DrainEvents, "deliver events queued during dispatch in the same frame")
	fs.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.TPS <= 0 {
		return Config{}, fmt.Errorf("config: tps must be positive, got %d", cfg.TPS)
	}
	if cfg.Scene == "" {
		return Config{}, fmt.Errorf("config: scene is empty")
	}
	return cfg, nil
}

// EventPolicy maps DrainEvents onto a dispatch policy.
func (c Config) EventPolicy() event.Policy {
	if c.DrainEvents {
		return event.PolicyDrain
	}
	return event.PolicyDefer
}
