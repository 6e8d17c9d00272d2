package uci

import (
	"fmt"
	"strconv"

	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/tt"
)

// optionType mirrors the UCI "option" types a GUI renders a control for.
type optionType int

const (
	optionCheck optionType = iota
	optionSpin
	optionButton
	optionString
)

// uciOption is one entry in the engine's advertised option set; handle
// is called with the raw value string from "setoption ... value ...".
type uciOption struct {
	name    string
	kind    optionType
	def     string
	min     string
	max     string
	handle  func(u *Handler, value string)
}

// uciOptions is keyed by name for setOptionCommand's lookup, limited to
// the options search actually consumes (no opening book, no pondering,
// no Threads — search.Searcher is single-threaded).
var uciOptions = map[string]*uciOption{
	"Hash": {
		name: "Hash", kind: optionSpin,
		def: strconv.Itoa(config.Settings.Search.TTSizeMB),
		min: "0", max: strconv.Itoa(tt.MaxSizeMB),
		handle: func(u *Handler, value string) {
			mb, err := strconv.Atoi(value)
			if err != nil {
				u.infoString(fmt.Sprintf("Hash: %q is not a number", value))
				return
			}
			config.Settings.Search.TTSizeMB = mb
			u.searcher.ResizeHash(mb)
		},
	},
	"Clear Hash": {
		name: "Clear Hash", kind: optionButton,
		handle: func(u *Handler, value string) {
			u.searcher.NewGame()
		},
	},
	"SyzygyPath": {
		name: "SyzygyPath", kind: optionString, def: "",
		handle: func(u *Handler, value string) {
			if err := u.searcher.LoadTablebase(value); err != nil {
				u.infoString(fmt.Sprintf("SyzygyPath: %v", err))
				return
			}
			config.Settings.Search.UseTablebase = value != ""
		},
	},
}

// optionLines renders every option in the form the "uci" command sends
// during initialization.
func optionLines() []string {
	lines := make([]string, 0, len(uciOptions))
	for _, o := range uciOptions {
		lines = append(lines, o.String())
	}
	return lines
}

func (o *uciOption) String() string {
	switch o.kind {
	case optionCheck:
		return fmt.Sprintf("option name %s type check default %s", o.name, o.def)
	case optionSpin:
		return fmt.Sprintf("option name %s type spin default %s min %s max %s", o.name, o.def, o.min, o.max)
	case optionButton:
		return fmt.Sprintf("option name %s type button", o.name)
	case optionString:
		return fmt.Sprintf("option name %s type string default %s", o.name, o.def)
	default:
		return fmt.Sprintf("option name %s", o.name)
	}
}
