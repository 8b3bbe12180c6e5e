// Package swgoh provides a client for the swgoh.gg API: unit and gear
// catalogs, single-player rosters, and guild profiles. Responses are cached
// on disk and decoded into the subset of fields the analyzers consume.
package swgoh

// CombatType values used by the units API.
const (
	CombatTypeCharacter = 1
	CombatTypeShip      = 2
)

// Alignment values used by the units API.
const (
	AlignmentLight   = 1
	AlignmentDark    = 2
	AlignmentNeutral = 3
)

// GearTier is one rung of a unit's gear ladder: the tier number and the gear
// ids required to complete it. Duplicate ids are meaningful (a tier can need
// two copies of the same piece).
type GearTier struct {
	Tier int      `json:"tier"`
	Gear []string `json:"gear"`
}

// Unit is a game unit definition from /api/units/.
type Unit struct {
	Name       string     `json:"name"`
	BaseID     string     `json:"base_id"`
	CombatType int        `json:"combat_type"`
	Alignment  int        `json:"alignment"`
	Categories []string   `json:"categories"`
	GearLevels []GearTier `json:"gear_levels"`
}

// UnitsResponse is the root payload of /api/units/.
type UnitsResponse struct {
	Data []Unit `json:"data"`
}

// GearIngredient is one crafting input of a gear piece. Gear may be another
// gear base_id or the currency sentinel "GRIND", which carries no material.
type GearIngredient struct {
	Amount int    `json:"amount"`
	Gear   string `json:"gear"`
}

// GearPiece is a craftable equipment definition from /api/gear/. A piece
// with no ingredients is itself a raw salvage material.
type GearPiece struct {
	BaseID      string           `json:"base_id"`
	Name        string           `json:"name"`
	Tier        int              `json:"tier"`
	Ingredients []GearIngredient `json:"ingredients"`
}

// GearSlot is one of the six equipment slots on a rostered unit.
type GearSlot struct {
	Slot       int    `json:"slot"`
	IsObtained bool   `json:"is_obtained"`
	BaseID     string `json:"base_id"`
}

// UnitData is a unit as it exists on a player's roster. RelicTier uses the
// API encoding: nil means below gear 13, 1-2 mean no relic, and values >= 3
// encode relic level value-2.
type UnitData struct {
	BaseID     string     `json:"base_id"`
	Name       string     `json:"name"`
	GearLevel  int        `json:"gear_level"`
	Rarity     int        `json:"rarity"`
	CombatType int        `json:"combat_type"`
	RelicTier  *int       `json:"relic_tier"`
	Gear       []GearSlot `json:"gear"`
}

// PlayerUnit wraps a rostered unit in the player payload.
type PlayerUnit struct {
	Data UnitData `json:"data"`
}

// PlayerData is the player profile block of /api/player/{ally}/.
type PlayerData struct {
	AllyCode  int64  `json:"ally_code"`
	Name      string `json:"name"`
	GuildID   string `json:"guild_id"`
	GuildName string `json:"guild_name"`
}

// PlayerResponse is the root payload of /api/player/{ally}/.
type PlayerResponse struct {
	Data  PlayerData   `json:"data"`
	Units []PlayerUnit `json:"units"`
}

// GuildMember is one roster entry in a guild profile.
type GuildMember struct {
	PlayerName string `json:"player_name"`
	AllyCode   int64  `json:"ally_code"`
}

// GuildProfile is the guild block of /api/guild-profile/{id}/.
type GuildProfile struct {
	GuildID     string        `json:"guild_id"`
	Name        string        `json:"name"`
	MemberCount int           `json:"member_count"`
	Members     []GuildMember `json:"members"`
}

// GuildResponse is the root payload of /api/guild-profile/{id}/.
type GuildResponse struct {
	Data GuildProfile `json:"data"`
}

// BuildGearLookup indexes gear pieces by base_id.
func BuildGearLookup(pieces []GearPiece) map[string]GearPiece {
	lookup := make(map[string]GearPiece, len(pieces))
	for _, p := range pieces {
		lookup[p.BaseID] = p
	}
	return lookup
}

// BuildUnitLookup indexes unit definitions by base_id.
func BuildUnitLookup(units []Unit) map[string]Unit {
	lookup := make(map[string]Unit, len(units))
	for _, u := range units {
		lookup[u.BaseID] = u
	}
	return lookup
}
