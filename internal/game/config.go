package game

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Configuration holds the forced-bet and timing parameters for a hand.
type Configuration struct {
	SmallBlind int `hcl:"small_blind"`
	BigBlind   int `hcl:"big_blind"`
	Antes      int `hcl:"antes,optional"`
	TimeLimit  int `hcl:"time_limit,optional"` // seconds; 0 disables the per-actor timer
}

// LoadConfiguration decodes a Configuration from an HCL file, the same
// format the teacher's table setup uses for static settings.
func LoadConfiguration(path string) (Configuration, error) {
	var cfg Configuration
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("game: loading configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration's internal consistency.
func (c Configuration) Validate() error {
	if c.SmallBlind <= 0 || c.BigBlind <= 0 {
		return fmt.Errorf("game: small_blind and big_blind must be positive")
	}
	if c.SmallBlind > c.BigBlind {
		return fmt.Errorf("game: small_blind must not exceed big_blind")
	}
	if c.Antes < 0 {
		return fmt.Errorf("game: antes must not be negative")
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("game: time_limit must not be negative")
	}
	return nil
}
