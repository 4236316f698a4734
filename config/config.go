// Package config loads the TOML-encoded options that parameterize a
// solar and thermal model run, following the teacher's ConfigData
// pattern: plain structs decoded in one pass with
// github.com/BurntSushi/toml, with any path fields subject to
// environment-variable expansion after decoding.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// SolarOptions parameterizes SolarModel construction: the site's
// geographic position, the Reinhart sky discretization factor, ground
// albedo, ray counts for the Monte-Carlo solar passes, and where the
// rendered OpticalInfo is cached on disk.
type SolarOptions struct {
	Latitude         float64 `toml:"latitude"`
	Longitude        float64 `toml:"longitude"`
	StandardMeridian float64 `toml:"standard_meridian"`

	// SkyDiscretization is the Reinhart MF factor requested by the
	// caller. If OpticalDataPath already holds a rendered OpticalInfo,
	// its on-disk MF wins (§3's "disk wins" re-read rule) and this
	// field is advisory only.
	SkyDiscretization int `toml:"sky_discretization"`

	GroundAlbedo float64 `toml:"ground_albedo"`

	NRays    int `toml:"n_rays"`
	NAmbient int `toml:"n_ambient"`

	AddSky bool `toml:"add_sky"`
	AddSun bool `toml:"add_sun"`

	// Units selects radiance ("solar") or illuminance ("visible") sky
	// vectors; see sky.Units.
	Units string `toml:"units"`

	OpticalDataPath string `toml:"optical_data_path"`
}

// ThermalOptions parameterizes the top-level thermal driver: the number
// of main (hourly) steps per simulated hour, and a node-spacing value
// that is decoded but not consulted (see MaxNodeSpacing).
type ThermalOptions struct {
	// MainStepsPerHour is n_main in §4.8; 1 means one main step per
	// simulated hour.
	MainStepsPerHour int `toml:"main_steps_per_hour"`

	// MaxNodeSpacing is decoded from the document but not consulted:
	// construct.Discretize takes no spacing parameter and always caps node
	// spacing at its fixed 0.05 m.
	MaxNodeSpacing float64 `toml:"max_node_spacing"`
}

// Options is the top-level decoded configuration document.
type Options struct {
	Solar   SolarOptions   `toml:"solar"`
	Thermal ThermalOptions `toml:"thermal"`
}

// Load reads and decodes the TOML configuration at path, expanding
// environment variables in OpticalDataPath afterward.
func Load(path string) (*Options, error) {
	var opts Options
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	opts.Solar.OpticalDataPath = os.ExpandEnv(opts.Solar.OpticalDataPath)
	return &opts, nil
}
