package search

import "github.com/corvidchess/corvid/logging"

// Statistics accumulates search-internal counters across one
// SearchPosition call: total nodes, quiescence nodes, transposition-table
// hits, null-move cutoffs and late-move-reduction re-searches. None of
// these feed back into search decisions; they exist purely so the search
// logger can report what a given iteration actually did.
type Statistics struct {
	Nodes         int64
	QNodes        int64
	TTHits        int64
	NmpCutoffs    int64
	LmrResearches int64
}

func (st *Statistics) reset() {
	*st = Statistics{}
}

// Log emits the accumulated counters at DEBUG level through the search
// logger. Cheap enough to call once per iterative-deepening iteration:
// go-logging drops the call entirely when the search logger isn't at
// debug level.
func (st *Statistics) Log(log *logging.Logger, depth int) {
	log.Debugf("stats: depth %d, nodes %d, qnodes %d, tt hits %d, nmp cutoffs %d, lmr researches %d",
		depth, st.Nodes, st.QNodes, st.TTHits, st.NmpCutoffs, st.LmrResearches)
}
