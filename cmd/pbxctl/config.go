package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/pbxkit/pkg/types"
)

const defaultConfigName = ".pbxctl.toml"

// Config is the contents of a .pbxctl.toml file.
//
//	strict = true        # convention warnings become errors
//	limits = "strict"    # default, strict or relaxed
//	seed   = "my-repo"   # deterministic identifiers for new objects
//	backup = true        # keep project.pbxproj.bak on every write
//	indent = "  "        # indentation of JSON dumps
type Config struct {
	Strict bool   `toml:"strict"`
	Limits string `toml:"limits"`
	Seed   string `toml:"seed"`
	Backup bool   `toml:"backup"`
	Indent string `toml:"indent"`
}

func defaultConfig() Config {
	return Config{Limits: "default", Indent: "  "}
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file is not an error; unknown keys are.
func loadConfig(path string) (Config, error) {
	c := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigName
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return c, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if _, err := limitsPreset(c.Limits); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func limitsPreset(name string) (types.Limits, error) {
	switch name {
	case "", "default":
		return types.DefaultLimits(), nil
	case "strict":
		return types.StrictLimits(), nil
	case "relaxed":
		return types.RelaxedLimits(), nil
	default:
		return types.Limits{}, fmt.Errorf("unknown limits preset: %s (must be default, strict, or relaxed)", name)
	}
}
