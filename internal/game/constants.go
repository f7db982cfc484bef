package game

// ============================================================================
// Archetype Roll Thresholds
// ============================================================================

// A single uniform roll picks the archetype: above BillerThreshold is a
// biller, then aggressor, then pedant, everything else is a staller.
const (
	BillerThreshold    = 0.85
	AggressorThreshold = 0.60
	PedantThreshold    = 0.35
)

// ============================================================================
// Particle Offsets
// ============================================================================

// Offsets in pixels from the click point
const (
	KillTextOffsetY  = -40
	ArmorTextOffsetY = -20
	LootSpreadX      = 20
)
