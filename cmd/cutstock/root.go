package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/heavybullets8/cutstock/pkg/cutting"
)

// Version, Commit, and BuildTime can be set at build time with
// -ldflags "-X main.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

var (
	cfgFile  string
	logLevel string
	log      zerolog.Logger
)

var (
	knobsMu sync.RWMutex
	knobs   knobConfig
)

var rootCmd = &cobra.Command{
	Use:   "cutstock",
	Short: "One-dimensional cutting stock optimizer",
	Long:  "cutstock computes cutting plans for linear stock material given item demand, kerf, and safety margin constraints.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.cutstock.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".cutstock")
	}

	viper.SetEnvPrefix("CUTSTOCK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		loadKnobs()
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			loadKnobs()
			log.Info().Str("file", e.Name).Msg("config reloaded")
		})
	}
}

// loadKnobs unmarshals viper's current view (config file + CUTSTOCK_* env
// vars) into knobConfig and swaps it in under lock, so a job running
// concurrently with a fsnotify-triggered reload always sees a consistent
// snapshot rather than a partially-written struct.
func loadKnobs() {
	var k knobConfig
	if err := viper.Unmarshal(&k); err != nil {
		log.Warn().Err(err).Msg("ignoring malformed knob overrides, keeping previous values")
		return
	}
	knobsMu.Lock()
	knobs = k
	knobsMu.Unlock()
}

// currentConfig resolves the knob overrides loaded so far into a full
// cutting.Config, leaving every field the knob file never set at its zero
// value for Config.normalize() to fill with the documented default.
func currentConfig() cutting.Config {
	knobsMu.RLock()
	k := knobs
	knobsMu.RUnlock()
	return k.toConfig()
}

func initLogger() error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}
