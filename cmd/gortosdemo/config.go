//go:build !tinygo

package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// scenarioConfig tunes the run subcommand.
type scenarioConfig struct {
	TickPeriod     time.Duration
	QueueCapacity  int
	ProduceEvery   time.Duration
	HeartbeatEvery time.Duration
	Events         int
	CounterMax     int
	Trace          bool
}

func defaultScenarioConfig() scenarioConfig {
	return scenarioConfig{
		TickPeriod:     time.Millisecond,
		QueueCapacity:  8,
		ProduceEvery:   50 * time.Millisecond,
		HeartbeatEvery: 250 * time.Millisecond,
		Events:         20,
		CounterMax:     4,
		Trace:          false,
	}
}

// scenario.toml key mapping to run settings.
type fileConfig struct {
	TickPeriodMS     int  `toml:"tick_period_ms"`
	QueueCapacity    int  `toml:"queue_capacity"`
	ProduceEveryMS   int  `toml:"produce_every_ms"`
	HeartbeatEveryMS int  `toml:"heartbeat_every_ms"`
	Events           int  `toml:"events"`
	CounterMax       int  `toml:"counter_max"`
	Trace            bool `toml:"trace"`
}

// loadScenarioConfig overlays the TOML file onto the defaults; keys the
// file does not define keep their default values.
func loadScenarioConfig(path string) (scenarioConfig, error) {
	cfg := defaultScenarioConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return scenarioConfig{}, fmt.Errorf("load scenario config: %w", err)
	}

	if meta.IsDefined("tick_period_ms") {
		cfg.TickPeriod = time.Duration(raw.TickPeriodMS) * time.Millisecond
	}
	if meta.IsDefined("queue_capacity") {
		cfg.QueueCapacity = raw.QueueCapacity
	}
	if meta.IsDefined("produce_every_ms") {
		cfg.ProduceEvery = time.Duration(raw.ProduceEveryMS) * time.Millisecond
	}
	if meta.IsDefined("heartbeat_every_ms") {
		cfg.HeartbeatEvery = time.Duration(raw.HeartbeatEveryMS) * time.Millisecond
	}
	if meta.IsDefined("events") {
		cfg.Events = raw.Events
	}
	if meta.IsDefined("counter_max") {
		cfg.CounterMax = raw.CounterMax
	}
	if meta.IsDefined("trace") {
		cfg.Trace = raw.Trace
	}

	if cfg.TickPeriod <= 0 {
		return scenarioConfig{}, fmt.Errorf("load scenario config: tick_period_ms must be positive")
	}
	if cfg.QueueCapacity <= 0 {
		return scenarioConfig{}, fmt.Errorf("load scenario config: queue_capacity must be positive")
	}
	if cfg.CounterMax <= 0 {
		return scenarioConfig{}, fmt.Errorf("load scenario config: counter_max must be positive")
	}
	return cfg, nil
}
