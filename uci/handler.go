// Package uci implements the UCI protocol handler: reading commands from
// a GUI, driving a search.Searcher, and writing "id"/"option"/"info"/
// "bestmove" responses. search.Reporter is implemented directly by
// Handler.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/corvidchess/corvid/logging"
	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/moveslice"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/search"
	"github.com/corvidchess/corvid/types"
	"github.com/corvidchess/corvid/zobrist"
)

const (
	engineName   = "Corvid"
	engineAuthor = "Corvid Contributors"
)

var regexWhiteSpace = regexp.MustCompile(`\s+`)

// Handler owns the engine-side state of one UCI session: the current
// position, its move history (for repetition detection) and the
// searcher the "go" command drives. Perft is exposed as its own command
// here rather than a dedicated struct field, since package movegen is
// stateless.
type Handler struct {
	in *bufio.Scanner

	outMu sync.Mutex
	out   *bufio.Writer

	pos     *position.Position
	history []zobrist.Key

	searcher *search.Searcher

	log *logging.Logger
}

// NewHandler creates a Handler reading from stdin and writing to stdout.
func NewHandler() *Handler {
	p := position.New()
	return &Handler{
		in:       bufio.NewScanner(os.Stdin),
		out:      bufio.NewWriter(os.Stdout),
		pos:      p,
		history:  []zobrist.Key{p.Hash()},
		searcher: search.NewSearcher(0),
		log:      logging.GetUCI(),
	}
}

// Loop reads commands until "quit" is received or the input stream ends.
func (u *Handler) Loop() {
	for u.in.Scan() {
		if u.handle(u.in.Text()) {
			return
		}
	}
}

// Command runs a single line through the handler and returns whatever it
// wrote, useful for tests that don't want to wire up real stdin/stdout.
func (u *Handler) Command(cmd string) string {
	buf := new(bytes.Buffer)

	u.outMu.Lock()
	saved := u.out
	u.out = bufio.NewWriter(buf)
	u.outMu.Unlock()

	u.handle(cmd)

	u.outMu.Lock()
	_ = u.out.Flush()
	u.out = saved
	u.outMu.Unlock()

	return buf.String()
}

// handle dispatches a single line; it returns true iff the engine should
// shut down ("quit").
func (u *Handler) handle(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}
	u.log.Infof("<< %s", cmd)
	tokens := regexWhiteSpace.Split(cmd, -1)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "isready":
		u.searcher.Join()
		u.send("readyok")
	case "ucinewgame":
		u.pos = position.New()
		u.history = []zobrist.Key{u.pos.Hash()}
		u.searcher.NewGame()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.searcher.Stop()
	case "setoption":
		u.setOptionCommand(tokens)
	case "perft":
		u.perftCommand(tokens)
	case "ponderhit":
		u.log.Warning("ponderhit received but pondering is not implemented")
	case "register", "debug":
		// accepted and ignored; neither affects engine behavior here.
	default:
		u.log.Warningf("unknown command: %s", cmd)
	}
	return false
}

func (u *Handler) uciCommand() {
	u.send(fmt.Sprintf("id name %s", engineName))
	u.send(fmt.Sprintf("id author %s", engineAuthor))
	for _, line := range optionLines() {
		u.send(line)
	}
	u.send("uciok")
}

// positionCommand rebuilds u.pos and u.history from scratch, since a GUI
// always resends the full game from "startpos"/"fen" rather than
// incrementally updating it.
func (u *Handler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		u.infoString(fmt.Sprintf("malformed position command: %q", tokens))
		return
	}
	i := 1
	var p *position.Position
	switch tokens[i] {
	case "startpos":
		p = position.New()
		i++
	case "fen":
		i++
		var b strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			b.WriteString(tokens[i])
			b.WriteByte(' ')
			i++
		}
		fen := strings.TrimSpace(b.String())
		parsed, err := position.FromFEN(fen)
		if err != nil {
			u.infoString(fmt.Sprintf("malformed fen %q: %v", fen, err))
			return
		}
		p = parsed
	default:
		u.infoString(fmt.Sprintf("malformed position command: %q", tokens))
		return
	}

	history := []zobrist.Key{p.Hash()}
	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			m, ok := types.MoveFromUCI(tokens[i])
			if !ok || !p.Legal(m) {
				u.infoString(fmt.Sprintf("illegal move in position command: %q", tokens[i]))
				return
			}
			p = p.MakeMove(m)
			history = append(history, p.Hash())
		}
	}

	u.pos = p
	u.history = history
}

// perftCommand runs a node-count-only perft on the current position and
// reports the result as an info string, a debugging aid outside the
// formal UCI command set.
func (u *Handler) perftCommand(tokens []string) {
	depth := 4
	if len(tokens) > 1 {
		d, err := strconv.Atoi(tokens[1])
		if err != nil {
			u.infoString(fmt.Sprintf("perft: %q is not a number", tokens[1]))
			return
		}
		depth = d
	}
	start := time.Now()
	nodes := movegen.Perft(u.pos, depth)
	elapsed := time.Since(start)
	u.send(fmt.Sprintf("info string perft depth %d nodes %d time %d", depth, nodes, elapsed.Milliseconds()))
}

// goCommand parses search limits and runs the search in its own
// goroutine so the UCI loop stays responsive to "stop".
func (u *Handler) goCommand(tokens []string) {
	limits, ok := u.readLimits(tokens)
	if !ok {
		return
	}
	p := u.pos
	history := u.history
	go u.searcher.SearchPosition(p, limits, history, u)
}

func (u *Handler) readLimits(tokens []string) (search.Limits, bool) {
	var l search.Limits
	i := 1
	for i < len(tokens) {
		tok := tokens[i]
		i++
		var err error
		switch tok {
		case "infinite":
			l.Infinite = true
		case "ponder":
			u.log.Warning("go ponder received but pondering is not implemented; searching normally")
		case "searchmoves":
			// Consumed but not applied: search.Limits carries no root
			// move restriction, so the engine still searches every
			// legal move at the root.
			for i < len(tokens) {
				if _, ok := types.MoveFromUCI(tokens[i]); !ok {
					break
				}
				i++
			}
		case "depth":
			i, err = u.readInt(tokens, i, &l.Depth)
		case "nodes":
			var n int
			i, err = u.readInt(tokens, i, &n)
			l.Nodes = int64(n)
		case "mate":
			// Consumed but not applied: negamax has no dedicated
			// mate-search mode distinct from a normal search.
			var ignored int
			i, err = u.readInt(tokens, i, &ignored)
		case "movetime":
			var ms int
			i, err = u.readInt(tokens, i, &ms)
			l.MoveTime = time.Duration(ms) * time.Millisecond
		case "wtime":
			var ms int
			i, err = u.readInt(tokens, i, &ms)
			l.WhiteTime = time.Duration(ms) * time.Millisecond
		case "btime":
			var ms int
			i, err = u.readInt(tokens, i, &ms)
			l.BlackTime = time.Duration(ms) * time.Millisecond
		case "winc":
			var ms int
			i, err = u.readInt(tokens, i, &ms)
			l.WhiteInc = time.Duration(ms) * time.Millisecond
		case "binc":
			var ms int
			i, err = u.readInt(tokens, i, &ms)
			l.BlackInc = time.Duration(ms) * time.Millisecond
		case "movestogo":
			i, err = u.readInt(tokens, i, &l.MovesToGo)
		default:
			u.infoString(fmt.Sprintf("go: unknown subcommand %q", tok))
			return search.Limits{}, false
		}
		if err != nil {
			u.infoString(fmt.Sprintf("go: %v", err))
			return search.Limits{}, false
		}
	}
	return l, true
}

func (u *Handler) readInt(tokens []string, i int, dst *int) (int, error) {
	if i >= len(tokens) {
		return i, fmt.Errorf("missing value after %q", tokens[i-1])
	}
	v, err := strconv.Atoi(tokens[i])
	if err != nil {
		return i, fmt.Errorf("%q is not a number", tokens[i])
	}
	*dst = v
	return i + 1, nil
}

func (u *Handler) setOptionCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		u.infoString(fmt.Sprintf("malformed setoption command: %q", tokens))
		return
	}
	i := 2
	var name strings.Builder
	for i < len(tokens) && tokens[i] != "value" {
		if name.Len() > 0 {
			name.WriteByte(' ')
		}
		name.WriteString(tokens[i])
		i++
	}
	value := ""
	if i < len(tokens) && tokens[i] == "value" && i+1 < len(tokens) {
		value = strings.Join(tokens[i+1:], " ")
	}
	opt, found := uciOptions[name.String()]
	if !found {
		u.infoString(fmt.Sprintf("setoption: no such option %q", name.String()))
		return
	}
	opt.handle(u, value)
}

func (u *Handler) infoString(s string) {
	u.log.Warning(s)
	u.send("info string " + s)
}

func (u *Handler) send(s string) {
	u.log.Infof(">> %s", s)
	u.outMu.Lock()
	defer u.outMu.Unlock()
	_, _ = u.out.WriteString(s + "\n")
	_ = u.out.Flush()
}

// Info implements search.Reporter: one "info" line per completed
// iterative-deepening iteration.
func (u *Handler) Info(depth, nodes int, score int, elapsed time.Duration, pv []types.Move) {
	var nps int64
	if ns := elapsed.Nanoseconds(); ns > 0 {
		nps = int64(nodes) * time.Second.Nanoseconds() / ns
	}
	u.send(fmt.Sprintf("info depth %d score %s nodes %d nps %d time %d pv %s",
		depth, search.FormatScore(score), nodes, nps, elapsed.Milliseconds(), moveslice.MoveSlice(pv).String()))
}

// BestMove implements search.Reporter: the single terminal response to a
// "go" command.
func (u *Handler) BestMove(best, ponder types.Move) {
	if ponder != types.MoveNone {
		u.send(fmt.Sprintf("bestmove %s ponder %s", best.String(), ponder.String()))
		return
	}
	u.send(fmt.Sprintf("bestmove %s", best.String()))
}
