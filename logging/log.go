// Package logging wraps "github.com/op/go-logging" with Corvid's four
// standard loggers (general, search, UCI, test) so the rest of the
// codebase gets a one-line Get call instead of repeating backend and
// formatter setup.
package logging

import (
	"log"
	"os"

	golog "github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/config"
)

// Logger is an alias for the underlying op/go-logging type so callers
// never need to import that package directly.
type Logger = golog.Logger

// Printer formats numbers with English thousands separators (e.g.
// "1,234,567"). Packages search, tt, testsuite and cmd/corvid each build
// their own printer and do not use this one.
var Printer = message.NewPrinter(language.English)

var (
	standardLog *golog.Logger
	searchLog   *golog.Logger
	testLog     *golog.Logger
	uciLog      *golog.Logger

	standardFormat = golog.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)
	uciFormat = golog.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)
)

func init() {
	standardLog = golog.MustGetLogger("standard")
	searchLog = golog.MustGetLogger("search")
	testLog = golog.MustGetLogger("test")
	uciLog = golog.MustGetLogger("uci")
}

func backendWithLevel(w *os.File, format golog.Formatter, level int) golog.Backend {
	backend := golog.NewLogBackend(w, "", log.Lmsgprefix)
	formatted := golog.NewBackendFormatter(backend, format)
	leveled := golog.AddModuleLevel(formatted)
	leveled.SetLevel(golog.Level(level), "")
	return leveled
}

// Get returns the standard logger, configured at config.LogLevel.
func Get() *golog.Logger {
	standardLog.SetBackend(backendWithLevel(os.Stdout, standardFormat, config.LogLevel))
	return standardLog
}

// GetSearch returns the search-internal debug logger, configured at
// config.SearchLogLevel — kept separate from the standard logger so
// search tracing can be dialed up without flooding UCI/engine-lifecycle
// logs.
func GetSearch() *golog.Logger {
	searchLog.SetBackend(backendWithLevel(os.Stdout, standardFormat, config.SearchLogLevel))
	return searchLog
}

// GetTest returns a logger for use from _test.go files, always at debug
// level regardless of config.toml.
func GetTest() *golog.Logger {
	testLog.SetBackend(backendWithLevel(os.Stdout, standardFormat, config.LogLevels["debug"]))
	return testLog
}

// GetUCI returns the logger used to trace raw UCI protocol I/O.
func GetUCI() *golog.Logger {
	uciLog.SetBackend(backendWithLevel(os.Stdout, uciFormat, config.LogLevels["debug"]))
	return uciLog
}
