package main

// In this file: API limits configuration file support.

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sfdc-tools/datacloud/internal/network"
)

// loadLimits reads the API limits from a TOML file.  Values that the
// file does not set keep their defaults.
func loadLimits(filename string) (network.Limits, error) {
	limits := network.DefLimits
	f, err := os.Open(filename)
	if err != nil {
		return limits, err
	}
	defer f.Close()

	md, err := toml.NewDecoder(f).Decode(&limits)
	if err != nil {
		return limits, fmt.Errorf("parsing %q: %w", filename, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return limits, fmt.Errorf("unknown keys in %q: %v", filename, undecoded)
	}
	return limits, nil
}
