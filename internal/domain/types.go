package domain

import "strings"

// EntityKind - класс сущности в мире стейджа.
// Это НЕ иерархия наследования: поведение определяется набором компонентов,
// Kind нужен только для спавна, логов и клиентской раскраски.
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindPlayer
	EntityKindAlly
	EntityKindEnemy
	EntityKindObstacle
	EntityKindCollectible
)

var entityKindToString = map[EntityKind]string{
	EntityKindPlayer:      "PLAYER",
	EntityKindAlly:        "ALLY",
	EntityKindEnemy:       "ENEMY",
	EntityKindObstacle:    "OBSTACLE",
	EntityKindCollectible: "COLLECTIBLE",
}

var entityKindStringToKind = map[string]EntityKind{
	"PLAYER":      EntityKindPlayer,
	"ALLY":        EntityKindAlly,
	"ENEMY":       EntityKindEnemy,
	"OBSTACLE":    EntityKindObstacle,
	"COLLECTIBLE": EntityKindCollectible,
}

// String возвращает строковое представление (для логов и дебага)
func (e EntityKind) String() string {
	if val, ok := entityKindToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityKind конвертирует строку в Enum (нужно для загрузки шаблонов стейджей)
func ParseEntityKind(s string) EntityKind {
	upper := strings.ToUpper(s)
	if val, ok := entityKindStringToKind[upper]; ok {
		return val
	}
	return EntityKindUnknown
}

// AttackType - тип атаки. От него зависит, какой стат питает урон.
type AttackType uint8

const (
	AttackUnknown AttackType = iota
	AttackMelee              // Ближний бой: Ignition
	AttackRanged             // Дальний бой: Logic
	AttackTech               // Техно-приемы: Logic
)

var attackTypeToString = map[AttackType]string{
	AttackMelee:  "melee",
	AttackRanged: "ranged",
	AttackTech:   "tech",
}

var attackTypeStringToType = map[string]AttackType{
	"melee":  AttackMelee,
	"ranged": AttackRanged,
	"tech":   AttackTech,
}

func (a AttackType) String() string {
	if val, ok := attackTypeToString[a]; ok {
		return val
	}
	return "unknown"
}

func ParseAttackType(s string) AttackType {
	if val, ok := attackTypeStringToType[strings.ToLower(s)]; ok {
		return val
	}
	return AttackUnknown
}

// RoleType - боевая роль для авто-распределения очков (Recommend)
type RoleType string

const (
	RoleTank      RoleType = "tank"
	RoleMeleeDPS  RoleType = "melee_dps"
	RoleRangedDPS RoleType = "ranged_dps"
	RoleBalanced  RoleType = "balanced"
)

// FactionID - идентификатор фракции (академии)
type FactionID string

// ContactPair - пара сущностей, которые внешний проксимити-чек посчитал соприкоснувшимися.
// Ядро НЕ занимается коллизиями: пары приходят готовыми от рендера клиента.
type ContactPair struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}
