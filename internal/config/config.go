// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads compositor settings from an optional YAML file and
// COMPOSITOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/compositor"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COMPOSITOR"

// Default viewport size when neither the file nor the environment sets one.
const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// ErrInvalidColor is returned for colors not written as #rrggbb or
// #rrggbbaa.
var ErrInvalidColor = errors.New("config: invalid color")

// File is the YAML settings file. Unset fields keep their defaults.
type File struct {
	PartialSwap            *bool  `yaml:"partial_swap,omitempty"`
	BufferCount            *int   `yaml:"buffer_count,omitempty"`
	MaxDamageRects         *int   `yaml:"max_damage_rects,omitempty"`
	ShowSurfaceDamageRects *bool  `yaml:"show_surface_damage_rects,omitempty"`
	Background             string `yaml:"background,omitempty"`
	Width                  *int   `yaml:"width,omitempty"`
	Height                 *int   `yaml:"height,omitempty"`
}

// Env holds the environment overrides, read with the COMPOSITOR_ prefix.
type Env struct {
	PartialSwap            *bool   `envconfig:"PARTIAL_SWAP"`
	BufferCount            *int    `envconfig:"BUFFER_COUNT"`
	MaxDamageRects         *int    `envconfig:"MAX_DAMAGE_RECTS"`
	ShowSurfaceDamageRects *bool   `envconfig:"SHOW_SURFACE_DAMAGE_RECTS"`
	Background             *string `envconfig:"BACKGROUND"`
	Width                  *int    `envconfig:"WIDTH"`
	Height                 *int    `envconfig:"HEIGHT"`
}

// Config is the resolved configuration.
type Config struct {
	Settings compositor.Settings
	Width    int
	Height   int
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Settings: compositor.DefaultSettings(),
		Width:    DefaultWidth,
		Height:   DefaultHeight,
	}
}

// Load reads the settings file at path if present, then applies
// environment overrides. An empty path or a missing file leaves the
// defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if f != nil {
		if err := cfg.applyFile(f); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	if err := cfg.applyEnv(&env); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: viewport %dx%d", compositor.ErrInvalidSettings, cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// LoadOptional reads the YAML file at path. It returns nil without an
// error when path is empty or the file does not exist.
func LoadOptional(path string) (*File, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &f, nil
}

func (c *Config) applyFile(f *File) error {
	setBool(&c.Settings.PartialSwapEnabled, f.PartialSwap)
	setInt(&c.Settings.BufferCount, f.BufferCount)
	setInt(&c.Settings.MaxDamageRects, f.MaxDamageRects)
	setBool(&c.Settings.ShowSurfaceDamageRects, f.ShowSurfaceDamageRects)
	setInt(&c.Width, f.Width)
	setInt(&c.Height, f.Height)
	if f.Background != "" {
		bg, err := ParseColor(f.Background)
		if err != nil {
			return err
		}
		c.Settings.BackgroundColor = bg
	}
	return nil
}

func (c *Config) applyEnv(e *Env) error {
	setBool(&c.Settings.PartialSwapEnabled, e.PartialSwap)
	setInt(&c.Settings.BufferCount, e.BufferCount)
	setInt(&c.Settings.MaxDamageRects, e.MaxDamageRects)
	setBool(&c.Settings.ShowSurfaceDamageRects, e.ShowSurfaceDamageRects)
	setInt(&c.Width, e.Width)
	setInt(&c.Height, e.Height)
	if e.Background != nil {
		bg, err := ParseColor(*e.Background)
		if err != nil {
			return err
		}
		c.Settings.BackgroundColor = bg
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// ParseColor parses #rrggbb or #rrggbbaa, straight alpha, into a
// premultiplied color.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	nrgba := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nrgba).(color.RGBA), nil
}
