package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// File is the on-disk form of a system definition.
type File struct {
	Name    string       `toml:"name"`
	Seed    uint64       `toml:"seed"`
	Scale   *Scale       `toml:"scale"`
	Bodies  []BodyFile   `toml:"bodies"`
	Cameras []CameraFile `toml:"cameras"`
}

// Scale is the single scaling law shared by every body that gives its orbit
// in astronomical units or its speed as a period.
type Scale struct {
	Unit                float64 `toml:"unit"`                  // scene units per AU
	BaseAngularVelocity float64 `toml:"base_angular_velocity"` // radians per frame for period 1
}

// BodyFile declares one body. Radius and speed may be given literally or
// through the scale.
type BodyFile struct {
	Name            string      `toml:"name"`
	Parent          string      `toml:"parent"`
	OrbitRadius     *float64    `toml:"orbit_radius"`
	OrbitAU         *float64    `toml:"orbit_au"`
	AngularVelocity *float64    `toml:"angular_velocity"`
	Period          *float64    `toml:"period"`
	RotationSpeed   float64     `toml:"rotation_speed"`
	InitialTheta    *float64    `toml:"initial_theta"`
	RandomTheta     bool        `toml:"random_theta"`
	Anchor          *[3]float64 `toml:"anchor"`
	Radius          float64     `toml:"radius"`
	Texture         string      `toml:"texture"`
	Color           string      `toml:"color"`
}

// CameraFile declares one camera. A camera with a target follows it.
type CameraFile struct {
	Name      string      `toml:"name"`
	Target    string      `toml:"target"`
	Offset    [3]float64  `toml:"offset"`
	Smoothing *float64    `toml:"smoothing"`
	Position  *[3]float64 `toml:"position"`
	LookAt    [3]float64  `toml:"look_at"`
	Fov       *float64    `toml:"fov"`
	Near      *float64    `toml:"near"`
	Far       *float64    `toml:"far"`
}

// Parse decodes a system definition. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing system: %w", err)
	}
	return &f, nil
}

// ParseFile reads and decodes the system definition at path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadSystem resolves ref as a preset name first and a file path second, and
// returns the validated system.
func LoadSystem(ref string) (*System, error) {
	f, err := Preset(ref)
	if err != nil {
		f, err = ParseFile(ref)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w and no such file: %q", ErrUnknownPreset, ref)
		}
		if err != nil {
			return nil, err
		}
	}
	return Validate(f)
}
