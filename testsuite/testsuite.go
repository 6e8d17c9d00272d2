// Package testsuite runs EPD (Extended Position Description) test files
// against a search.Searcher: each line is a FEN plus one of the "bm" (best
// move), "am" (avoid move) or "dm" (direct mate) opcodes, and a test
// passes when the engine's search agrees.
package testsuite

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/logging"
	"github.com/corvidchess/corvid/moveslice"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/search"
	"github.com/corvidchess/corvid/types"
)

var out = message.NewPrinter(language.English)

// opcode identifies which EPD test operator a line carries.
type opcode uint8

const (
	opNone opcode = iota
	opBestMove
	opAvoidMove
	opDirectMate
)

// verdict is the outcome of running one Test.
type verdict uint8

const (
	NotRun verdict = iota
	Passed
	Failed
)

func (v verdict) String() string {
	switch v {
	case Passed:
		return "pass"
	case Failed:
		return "fail"
	default:
		return "not run"
	}
}

// Test is one EPD line after parsing, plus the result of running it.
type Test struct {
	ID          string
	FEN         string
	Line        string
	op          opcode
	targetMoves moveslice.MoveSlice
	mateDepth   int

	Actual  types.Move
	Score   int
	Verdict verdict
}

// SuiteResult totals the outcome of a Suite run.
type SuiteResult struct {
	Total  int
	Passed int
	Failed int
}

// Suite is a parsed EPD file ready to run with Run.
type Suite struct {
	Tests    []*Test
	FilePath string
	Depth    int
	MoveTime time.Duration
	Result   SuiteResult
}

// Load reads filePath and parses each non-blank, non-comment line as an
// EPD test. depth bounds each test's search by ply; moveTime additionally
// bounds it by wall-clock time (zero means depth alone governs).
func Load(filePath string, depth int, moveTime time.Duration) (*Suite, error) {
	f, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("testsuite: %w", err)
	}
	defer f.Close()

	s := &Suite{FilePath: filePath, Depth: depth, MoveTime: moveTime}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		t, err := parseLine(line)
		if err != nil {
			logging.GetTest().Warningf("testsuite: skipping line %q: %v", line, err)
			continue
		}
		if t == nil {
			continue
		}
		s.Tests = append(s.Tests, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("testsuite: %w", err)
	}
	return s, nil
}

// trailingComment strips a '#' comment that starts the line or follows
// whitespace, so a SAN mate suffix such as "Qxf7#" is left intact.
var trailingComment = regexp.MustCompile(`^(.*?)(?:^|\s)#.*$`)
var epdLine = regexp.MustCompile(`^\s*(.*?)\s+(bm|am|dm)\s+(.*?);(?:.*\bid\s+"(.*?)";)?.*$`)

// parseLine turns one EPD line into a Test. A nil Test with a nil error
// means the line was blank or pure comment; not an error.
func parseLine(line string) (*Test, error) {
	line = trailingComment.ReplaceAllString(line, "$1")
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	m := epdLine.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("no bm/am/dm opcode found")
	}
	fen, op, operand, id := m[1], m[2], strings.TrimSpace(m[3]), m[4]

	p, err := position.FromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", fen, err)
	}

	t := &Test{ID: id, FEN: fen, Line: line}

	switch op {
	case "dm":
		depth, err := strconv.Atoi(operand)
		if err != nil {
			return nil, fmt.Errorf("invalid dm depth %q: %w", operand, err)
		}
		t.op = opDirectMate
		t.mateDepth = depth
	case "bm", "am":
		if op == "bm" {
			t.op = opBestMove
		} else {
			t.op = opAvoidMove
		}
		for _, san := range strings.Fields(operand) {
			mv, ok := resolveSAN(p, san)
			if !ok {
				return nil, fmt.Errorf("unresolvable SAN move %q on %q", san, fen)
			}
			t.targetMoves = append(t.targetMoves, mv)
		}
		if len(t.targetMoves) == 0 {
			return nil, fmt.Errorf("no target moves resolved from %q", operand)
		}
	}
	return t, nil
}

// Run executes every test in s against a freshly created Searcher,
// updating each Test's Verdict and s.Result.
func (s *Suite) Run() {
	searcher := search.NewSearcher(32)
	s.Result = SuiteResult{}

	for i, t := range s.Tests {
		searcher.NewGame()
		p, err := position.FromFEN(t.FEN)
		if err != nil {
			t.Verdict = Failed
			s.Result.Total++
			s.Result.Failed++
			continue
		}

		limits := search.Limits{Depth: s.Depth, MoveTime: s.MoveTime}
		result := searcher.SearchPosition(p, limits, nil, nil)
		t.Actual = result.BestMove
		t.Score = result.Score

		switch t.op {
		case opDirectMate:
			if search.FormatScore(result.Score) == fmt.Sprintf("mate %d", t.mateDepth) {
				t.Verdict = Passed
			} else {
				t.Verdict = Failed
			}
		case opBestMove:
			if t.targetMoves.Has(result.BestMove) {
				t.Verdict = Passed
			} else {
				t.Verdict = Failed
			}
		case opAvoidMove:
			if t.targetMoves.Has(result.BestMove) {
				t.Verdict = Failed
			} else {
				t.Verdict = Passed
			}
		default:
			t.Verdict = Failed
		}

		s.Result.Total++
		if t.Verdict == Passed {
			s.Result.Passed++
		} else {
			s.Result.Failed++
		}
		out.Printf("test %d/%d %-4s id=%s best=%s score=%s\n",
			i+1, len(s.Tests), t.Verdict, t.ID, t.Actual.String(), search.FormatScore(t.Score))
	}

	out.Printf("testsuite %s: %d/%d passed\n", s.FilePath, s.Result.Passed, s.Result.Total)
}
