package domain

import "strings"

// EffectKind - что делает способность при попадании
type EffectKind uint8

const (
	EffectUnknown EffectKind = iota
	EffectDamage
	EffectBuff
	EffectDebuff
	EffectHeal
	EffectUtility
)

var effectKindToString = map[EffectKind]string{
	EffectDamage:  "damage",
	EffectBuff:    "buff",
	EffectDebuff:  "debuff",
	EffectHeal:    "heal",
	EffectUtility: "utility",
}

var effectKindStringToKind = map[string]EffectKind{
	"damage":  EffectDamage,
	"buff":    EffectBuff,
	"debuff":  EffectDebuff,
	"heal":    EffectHeal,
	"utility": EffectUtility,
}

func (e EffectKind) String() string {
	if val, ok := effectKindToString[e]; ok {
		return val
	}
	return "unknown"
}

func ParseEffectKind(s string) EffectKind {
	if val, ok := effectKindStringToKind[strings.ToLower(s)]; ok {
		return val
	}
	return EffectUnknown
}

// Ability - запись из базы способностей. Это конфигурация, не код:
// каталог загружается из YAML и по id персонажа выдает список таких записей.
type Ability struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Cost        int        `json:"cost"` // объявлено, но не списывается (см. systems.ExecuteAbility)
	CooldownMs  int64      `json:"cooldownMs"`
	EffectType  EffectKind `json:"effectType"`
	EffectValue int        `json:"effectValue"`
}
