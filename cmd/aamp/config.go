package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// defaultConfigPath is looked up in the working directory when no --config
// flag is given; a missing default config is not an error.
const defaultConfigPath = "aamp.toml"

// config is the optional TOML configuration of the converter:
//
//	[names]
//	extra = ["my_mod_names.txt"]
//
//	[output]
//	compression = "zstd"
type config struct {
	Names struct {
		// Extra lists newline-delimited dictionary files merged into the
		// name-recovery table at start-up.
		Extra []string `toml:"extra"`
	} `toml:"names"`
	Output struct {
		// Compression is the default output compression (none/zstd/s2/lz4),
		// overridden by the --compress flag.
		Compression string `toml:"compression"`
	} `toml:"output"`
}

func loadConfig(path string) (config, error) {
	var cfg config

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}

		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}
