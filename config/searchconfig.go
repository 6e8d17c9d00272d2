package config

// searchConfiguration holds the tuning knobs for the search itself:
// null-move pruning, late-move reductions, quiescence, the transposition
// table, and killer/history move ordering. Opening-book, pondering, SEE,
// internal-iterative-deepening and search-extension fields are not
// carried — see DESIGN.md.
type searchConfiguration struct {
	UseQuiescence bool
	UseQSStandpat bool

	UseKiller   bool
	KillerSlots int

	UseTT  bool
	TTSizeMB int

	UseNullMove  bool
	NmpMinDepth  int
	NmpReduction int

	UseLmr           bool
	LmrMinDepth      int
	LmrMinMoveNumber int

	// UseTablebase gates the endgame-table probe inside negamax; off by
	// default since no tables are loaded until "setoption SyzygyPath".
	UseTablebase bool

	// DefaultDepth is the iterative-deepening ceiling when "go" carries
	// no depth/time limit at all.
	DefaultDepth int

	// CheckEveryNodes is how often the search polls its stop flag and
	// time budget — too often wastes cycles on atomic loads, too rarely
	// overshoots the allotted time.
	CheckEveryNodes int64
}

func init() {
	Settings.Search.UseQuiescence = true
	Settings.Search.UseQSStandpat = true

	Settings.Search.UseKiller = true
	Settings.Search.KillerSlots = 2

	Settings.Search.UseTT = true
	Settings.Search.TTSizeMB = 64

	Settings.Search.UseNullMove = true
	Settings.Search.NmpMinDepth = 3
	Settings.Search.NmpReduction = 2

	Settings.Search.UseLmr = true
	Settings.Search.LmrMinDepth = 3
	Settings.Search.LmrMinMoveNumber = 3

	Settings.Search.UseTablebase = false
	Settings.Search.DefaultDepth = 5

	Settings.Search.CheckEveryNodes = 2048
}
