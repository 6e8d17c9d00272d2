package types

// MaxPly bounds search depth and every ply-indexed array (killer table,
// PV array, repetition history).
const MaxPly = 128
