package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Archetype identifies one of the four lawyer categories that pop out of the board
type Archetype string

const (
	ArchetypeBiller    Archetype = "BILLER"
	ArchetypePedant    Archetype = "PEDANT"
	ArchetypeStaller   Archetype = "STALLER"
	ArchetypeAggressor Archetype = "AGGRESSOR"
)

// Archetypes lists every archetype in roster order
var Archetypes = []Archetype{
	ArchetypeBiller,
	ArchetypePedant,
	ArchetypeAggressor,
	ArchetypeStaller,
}

// Loot particle glyphs dropped on kills
const (
	LootMoneyBag = "💰"
	LootRulebook = "📕"
)

// ArchetypeProfile holds the static tuning of an archetype
type ArchetypeProfile struct {
	Archetype   Archetype `json:"archetype"`
	DisplayName string    `json:"display_name"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Weakness    string    `json:"weakness"`
	MaxHealth   int       `json:"max_health"`
	KillMessage string    `json:"kill_message"`
	KillPoints  int       `json:"kill_points"`
	KillSaved   int       `json:"kill_saved"`
	Loot        []string  `json:"loot,omitempty"`
	BillRate    int       `json:"bill_rate"` // fees billed per BillInterval while up
}

// profiles is the archetype tuning table
var profiles = map[Archetype]ArchetypeProfile{
	ArchetypeBiller: {
		Subtitle:    "高级合伙人",
		Description: "按秒计费的吸血鬼。",
		Weakness:    "退费",
		MaxHealth:   2,
		KillMessage: "全额退款!",
		KillPoints:  500,
		KillSaved:   1000,
		Loot:        []string{LootMoneyBag, LootMoneyBag},
		BillRate:    100,
	},
	ArchetypePedant: {
		Subtitle:    "法条怪",
		Description: "死抠字眼的条文狂。",
		Weakness:    "驳回",
		MaxHealth:   1,
		KillMessage: "反对无效!",
		KillPoints:  200,
		KillSaved:   200,
		Loot:        []string{LootRulebook},
		BillRate:    20,
	},
	ArchetypeAggressor: {
		Subtitle:    "诉讼狂人",
		Description: "动不动就起诉。",
		Weakness:    "吊销执照",
		MaxHealth:   1,
		KillMessage: "吊销执照!",
		KillPoints:  200,
		KillSaved:   200,
		BillRate:    20,
	},
	ArchetypeStaller: {
		Subtitle:    "资深顾问",
		Description: "什么都要走流程。",
		Weakness:    "立刻执行",
		MaxHealth:   1,
		KillMessage: "立刻执行!",
		KillPoints:  200,
		KillSaved:   200,
		BillRate:    20,
	},
}

// Profile returns the tuning for an archetype. Unknown archetypes get the staller profile.
func (a Archetype) Profile() ArchetypeProfile {
	p, ok := profiles[a]
	if !ok {
		p = profiles[ArchetypeStaller]
		a = ArchetypeStaller
	}
	p.Archetype = a
	p.DisplayName = a.DisplayName()
	return p
}

// DisplayName returns the title-cased archetype name (e.g. "Biller")
func (a Archetype) DisplayName() string {
	return cases.Title(language.English).String(strings.ToLower(string(a)))
}

// Valid reports whether a is one of the known archetypes
func (a Archetype) Valid() bool {
	_, ok := profiles[a]
	return ok
}

// Roster returns the profiles of all archetypes in roster order
func Roster() []ArchetypeProfile {
	out := make([]ArchetypeProfile, 0, len(Archetypes))
	for _, a := range Archetypes {
		out = append(out, a.Profile())
	}
	return out
}
