package domain

import "unicode/utf8"

// TauntTable maps an archetype to its pool of short taunts
type TauntTable map[Archetype][]string

// DefaultTaunt is used when an archetype's pool is empty
const DefaultTaunt = "我反对！"

// MaxTauntLength is the longest taunt, in characters, that fits a speech bubble
const MaxTauntLength = 64

// FallbackTaunts returns a fresh copy of the built-in taunt table
func FallbackTaunts() TauntTable {
	return TauntTable{
		ArchetypeBiller:    {"按秒计费", "加上税点", "咨询费结一下", "这算加班", "没钱免谈"},
		ArchetypePedant:    {"根据第X条", "逻辑不通", "格式错误", "定义不准", "有歧义"},
		ArchetypeStaller:   {"走流程", "还得研究", "等签字", "下周再说", "再议"},
		ArchetypeAggressor: {"起诉你！", "法庭见！", "后果自负", "发律师函", "绝不和解"},
	}
}

// Pool returns the taunts for an archetype (nil when absent)
func (t TauntTable) Pool(a Archetype) []string {
	if t == nil {
		return nil
	}
	return t[a]
}

// WithFallback returns a copy where every missing or empty pool is replaced by the built-in one.
// Blank and over-long taunts are dropped first, so one bad entry only affects its own pool.
func (t TauntTable) WithFallback() TauntTable {
	fallback := FallbackTaunts()
	out := make(TauntTable, len(Archetypes))
	for _, a := range Archetypes {
		pool := make([]string, 0, len(t[a]))
		for _, s := range t[a] {
			if s != "" && utf8.RuneCountInString(s) <= MaxTauntLength {
				pool = append(pool, s)
			}
		}
		if len(pool) == 0 {
			pool = fallback[a]
		}
		out[a] = pool
	}
	return out
}
