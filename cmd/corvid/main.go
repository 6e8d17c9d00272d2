package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/logging"
	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/search"
	"github.com/corvidchess/corvid/testsuite"
	"github.com/corvidchess/corvid/uci"
	"github.com/corvidchess/corvid/util"
)

var out = message.NewPrinter(language.English)

// version is overwritten at build time via -ldflags, e.g.
// -ldflags "-X main.version=1.2.3".
var version = "dev"

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(off|critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(off|critical|error|warning|notice|info|debug)")
	testSuite := flag.String("testsuite", "", "path to an EPD test file")
	testMoveTime := flag.Int("testtime", 2000, "search time for each test position in milliseconds")
	testDepth := flag.Int("testdepth", 0, "search depth limit for each test position (0: time-limited only)")
	perftDepth := flag.Int("perft", 0, "runs perft on the start position (or -fen) to the given depth and exits")
	fen := flag.String("fen", position.StartFEN, "fen for -perft and -nps")
	nps := flag.Int("nps", 0, "runs a nodes-per-second test for the given number of seconds and exits")
	cpuProfile := flag.Bool("cpuprofile", false, "writes a CPU profile to ./cpu.pprof for the duration of -nps/-perft/-testsuite")
	hashMB := flag.Int("hash", 0, "transposition table size in MB (0: use config.toml's value)")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()

	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchLogLvl]; found {
		config.SearchLogLevel = lvl
	}
	if *hashMB > 0 {
		config.Settings.Search.TTSizeMB = *hashMB
	}

	log := logging.Get()

	switch {
	case *nps != 0:
		runNpsTest(*fen, time.Duration(*nps)*time.Second)
	case *perftDepth != 0:
		runPerft(*fen, *perftDepth)
	case *testSuite != "":
		runTestSuite(*testSuite, *testDepth, time.Duration(*testMoveTime)*time.Millisecond)
	default:
		log.Info("corvid: entering UCI loop")
		u := uci.NewHandler()
		u.Loop()
	}
}

func runNpsTest(fen string, duration time.Duration) {
	p, err := position.FromFEN(fen)
	if err != nil {
		fmt.Println("corvid: invalid fen:", err)
		return
	}
	s := search.NewSearcher(config.Settings.Search.TTSizeMB)
	limits := search.Limits{MoveTime: duration}
	start := time.Now()
	result := s.SearchPosition(p, limits, nil, nil)
	elapsed := time.Since(start)
	out.Printf("nodes %s, time %s, nps %s\n",
		out.Sprintf("%d", result.Nodes),
		elapsed.Round(time.Millisecond),
		out.Sprintf("%d", util.Nps(result.Nodes, elapsed)))
}

func runPerft(fen string, depth int) {
	p, err := position.FromFEN(fen)
	if err != nil {
		fmt.Println("corvid: invalid fen:", err)
		return
	}
	for d := 1; d <= depth; d++ {
		start := time.Now()
		nodes := movegen.Perft(p, d)
		elapsed := time.Since(start)
		out.Printf("perft %d: %s nodes in %s (%s nps)\n",
			d, out.Sprintf("%d", nodes), elapsed.Round(time.Millisecond),
			out.Sprintf("%d", util.Nps(int64(nodes), elapsed)))
	}
}

func runTestSuite(path string, depth int, moveTime time.Duration) {
	suite, err := testsuite.Load(path, depth, moveTime)
	if err != nil {
		fmt.Println("corvid:", err)
		return
	}
	suite.Run()
}

func printVersionInfo() {
	out.Printf("Corvid %s\n", version)
	out.Println("Environment:")
	out.Printf("  Go version: %s\n", runtime.Version())
	out.Printf("  Arch: %s, compiler: %s\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  CPUs: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
