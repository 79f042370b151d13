package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/rstate/state"
)

// Scene describes the synthetic scene the demo builds.
type Scene struct {
	Atoms     int    `yaml:"atoms"`
	Shaders   int    `yaml:"shaders"`
	Materials int    `yaml:"materials"`
	Textures  int    `yaml:"textures"`
	Seed      uint64 `yaml:"seed"`
	Workers   int    `yaml:"workers"`

	// Palette lists sRGB hex colors materials pick their diffuse from.
	Palette []string `yaml:"palette"`
	// Fog is the sRGB hex fog color.
	Fog string `yaml:"fog"`
}

func defaultScene() Scene {
	return Scene{
		Atoms:     10000,
		Shaders:   8,
		Materials: 32,
		Textures:  64,
		Seed:      1,
		Workers:   4,
		Palette:   []string{"#b0b0b0", "#8a5a3c", "#4f7942", "#c2b280"},
		Fog:       "#9fb4c7",
	}
}

// LoadScene reads a YAML scene description over s. Fields missing from the
// file keep their value in s; unknown fields are rejected. The result is not
// validated, since command-line flags may still override it.
func LoadScene(path string, s *Scene) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read scene file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return fmt.Errorf("failed to parse scene %s: %w", path, err)
	}
	return nil
}

func (s *Scene) validate() error {
	var errs []error
	if s.Atoms < 0 {
		errs = append(errs, fmt.Errorf("atoms must be >= 0, got %d", s.Atoms))
	}
	if s.Shaders < 1 || s.Materials < 1 || s.Textures < 1 {
		errs = append(errs, errors.New("shaders, materials and textures must be >= 1"))
	}
	if s.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", s.Workers))
	}
	if len(s.Palette) == 0 {
		errs = append(errs, errors.New("palette must not be empty"))
	}
	for _, hex := range s.Palette {
		if _, err := state.ParseColor(hex); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := state.ParseColor(s.Fog); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// colors parses the palette and fog color. Call after validate.
func (s *Scene) colors() (palette []state.RGBA, fog state.RGBA) {
	palette = make([]state.RGBA, len(s.Palette))
	for i, hex := range s.Palette {
		palette[i] = state.MustParseColor(hex)
	}
	return palette, state.MustParseColor(s.Fog)
}
