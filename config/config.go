package config

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigBoardSize       = "board-size"
	ConfigPreviewPlies    = "preview-plies"
	ConfigDebug           = "debug"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigAutoplayGames   = "autoplay-games"
	ConfigProviderRetries = "provider-retries"
	ConfigDataPath        = "data-path"
	ConfigBlackName       = "black-name"
	ConfigWhiteName       = "white-name"
	ConfigBlackPlayer     = "black-player"
	ConfigWhitePlayer     = "white-player"
	ConfigSeedFile        = "autoplay-seed-file"
	ConfigCPUProfile      = "cpu-profile"
	ConfigConfigFile      = "config-file"
)

type Config struct {
	viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigBoardSize, 8)
	c.SetDefault(ConfigPreviewPlies, 24)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigAutoplayThreads, runtime.NumCPU())
	c.SetDefault(ConfigAutoplayGames, 100)
	c.SetDefault(ConfigProviderRetries, 2)
	c.SetDefault(ConfigDataPath, "./data")
	c.SetDefault(ConfigBlackName, "")
	c.SetDefault(ConfigWhiteName, "")
	c.SetDefault(ConfigBlackPlayer, "greedy")
	c.SetDefault(ConfigWhitePlayer, "random")
	c.SetDefault(ConfigSeedFile, "")
}

// Load parses flags from args, reads REVERC_* environment variables and an
// optional YAML file named by --config-file. Flags beat the environment,
// the environment beats the file, and the file beats the defaults.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("reverc", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Int(ConfigBoardSize, c.GetInt(ConfigBoardSize), "board side length (even, 4 to 26)")
	fs.Int(ConfigPreviewPlies, c.GetInt(ConfigPreviewPlies), "random plies for preview positions")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigAutoplayThreads, c.GetInt(ConfigAutoplayThreads), "worker threads for autoplay")
	fs.Int(ConfigAutoplayGames, c.GetInt(ConfigAutoplayGames), "games per autoplay batch")
	fs.Int(ConfigProviderRetries, c.GetInt(ConfigProviderRetries), "retries before a failing provider is replaced by a random move")
	fs.String(ConfigDataPath, c.GetString(ConfigDataPath), "data directory")
	fs.String(ConfigBlackName, "", "black player's name")
	fs.String(ConfigWhiteName, "", "white player's name")
	fs.String(ConfigBlackPlayer, c.GetString(ConfigBlackPlayer), "black provider for autoplay (random, greedy, script:...)")
	fs.String(ConfigWhitePlayer, c.GetString(ConfigWhitePlayer), "white provider for autoplay")
	fs.String(ConfigSeedFile, "", "seed file for repeatable autoplay")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	cfgFile := fs.String(ConfigConfigFile, "", "YAML config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	c.SetEnvPrefix("REVERC")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	file := *cfgFile
	if file == "" {
		file = c.GetString(ConfigConfigFile)
	}
	if file != "" {
		c.SetConfigFile(file)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", file, err)
		}
	}
	return nil
}

// SanitizedSettings is AllSettings with nothing secret in it; fine for logs.
func (c *Config) SanitizedSettings() map[string]any {
	out := map[string]any{}
	for k, v := range c.AllSettings() {
		if strings.Contains(k, "key") || strings.Contains(k, "secret") || strings.Contains(k, "token") {
			continue
		}
		out[k] = v
	}
	return out
}

// AdjustRelativePaths makes the data path absolute relative to basepath
// when it was given as a relative path.
func (c *Config) AdjustRelativePaths(basepath string) {
	p := c.GetString(ConfigDataPath)
	if p == "" || filepath.IsAbs(p) {
		return
	}
	c.Set(ConfigDataPath, filepath.Join(basepath, p))
}
