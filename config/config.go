// Package config holds Corvid's process-wide configuration, loaded from
// a TOML file at startup with hard-coded defaults standing in for
// anything the file omits.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/corvidchess/corvid/util"
)

// LogLevel and SearchLogLevel are read by package logging when building
// its standard and search loggers; both default to "notice" and can be
// overridden by the config file or promoted to "debug" by a command-line
// flag in cmd/corvid.
var (
	LogLevel       = LogLevels["notice"]
	SearchLogLevel = LogLevels["notice"]
)

// LogLevels maps the textual levels accepted in config.toml to
// op/go-logging's numeric Level values.
var LogLevels = map[string]int{
	"off":      -1,
	"critical": 0,
	"error":    1,
	"warning":  2,
	"notice":   3,
	"info":     4,
	"debug":    5,
}

// Settings is the global configuration, populated by Setup.
var Settings conf

// ConfFile names the TOML file Setup loads; cmd/corvid overwrites it
// from a command-line flag before calling Setup.
var ConfFile = "config.toml"

var initialized = false

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
	Eval   evalConfiguration
}

// Setup loads config.toml (first match of util.ResolveFile's search
// path) over the compiled-in defaults. Safe to call more than once; only
// the first call has effect.
func Setup() {
	if initialized {
		return
	}
	initialized = true

	path, err := util.ResolveFile(ConfFile)
	if err != nil {
		fmt.Println("config: no config.toml found, using defaults:", err)
	} else if _, err := toml.DecodeFile(path, &Settings); err != nil {
		fmt.Println("config: could not parse config.toml, using defaults:", err)
	}

	setupLogLvl()
}
