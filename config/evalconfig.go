package config

// evalConfiguration holds the evaluation's tunable constants: tapered
// material/PSQT weighting plus a pawn-structure cache. Mobility,
// king-safety and advanced piece-eval bonuses are not carried since
// nothing in eval implements them; see DESIGN.md.
type evalConfiguration struct {
	UsePawnCache  bool
	PawnCacheSize int

	// Tempo is loaded from config.toml but not read by package eval:
	// Evaluate adds no side-to-move bonus.
	Tempo int
}

func init() {
	Settings.Eval.UsePawnCache = true
	Settings.Eval.PawnCacheSize = 16384

	Settings.Eval.Tempo = 20
}
