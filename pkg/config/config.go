// Package config reads generation settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/philipparndt/meshgraph/pkg/generator"
	"github.com/philipparndt/meshgraph/pkg/persist"
	"github.com/philipparndt/meshgraph/pkg/skeleton"
	"github.com/philipparndt/meshgraph/pkg/voxel"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid")

// Duration is a time.Duration written as a string such as "250ms"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Voxel holds the [voxel] table
type Voxel struct {
	Resolution   int     `toml:"resolution"`
	MaxVoxelSize float64 `toml:"max_voxel_size"`
	KeepEvery    int     `toml:"keep_every"`
}

// Watch holds the [watch] table
type Watch struct {
	Debounce Duration `toml:"debounce"`
}

// Config is the full settings file
type Config struct {
	Strategy string `toml:"strategy"`
	Format   string `toml:"format"`
	Workers  int    `toml:"workers"`
	Voxel    Voxel  `toml:"voxel"`
	Watch    Watch  `toml:"watch"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		Strategy: string(generator.StrategyVoxel),
		Format:   string(persist.FormatXML),
		Workers:  runtime.NumCPU(),
		Voxel: Voxel{
			Resolution: voxel.DefaultResolution,
			KeepEvery:  skeleton.DefaultKeepEvery,
		},
		Watch: Watch{Debounce: Duration{500 * time.Millisecond}},
	}
}

// Load reads path on top of Default and validates the result. Keys that
// are not part of Config are reported as errors.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q in %s: %w", undecoded[0].String(), path, ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and names
func (c Config) Validate() error {
	if _, err := generator.ParseStrategy(c.Strategy); err != nil {
		return errors.Join(err, ErrInvalid)
	}
	if _, err := persist.ParseFormat(c.Format); err != nil {
		return errors.Join(err, ErrInvalid)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalid)
	}
	if c.Voxel.Resolution < 0 {
		return fmt.Errorf("voxel resolution %d: %w", c.Voxel.Resolution, ErrInvalid)
	}
	if c.Voxel.MaxVoxelSize < 0 {
		return fmt.Errorf("voxel max_voxel_size %v: %w", c.Voxel.MaxVoxelSize, ErrInvalid)
	}
	if c.Voxel.KeepEvery < 0 {
		return fmt.Errorf("voxel keep_every %d: %w", c.Voxel.KeepEvery, ErrInvalid)
	}
	if c.Watch.Debounce.Duration < 0 {
		return fmt.Errorf("watch debounce %s: %w", c.Watch.Debounce, ErrInvalid)
	}
	return nil
}

// GeneratorOptions converts the settings into generator options
func (c Config) GeneratorOptions() (generator.Options, error) {
	strategy, err := generator.ParseStrategy(c.Strategy)
	if err != nil {
		return generator.Options{}, err
	}
	return generator.Options{
		Strategy: strategy,
		Workers:  c.Workers,
		Voxel:    voxel.Options{Resolution: c.Voxel.Resolution, MaxVoxelSize: c.Voxel.MaxVoxelSize},
		Skeleton: skeleton.Options{Workers: c.Workers, KeepEvery: c.Voxel.KeepEvery},
	}, nil
}

// OutputFormat returns the configured persistence format
func (c Config) OutputFormat() (persist.Format, error) {
	return persist.ParseFormat(c.Format)
}
