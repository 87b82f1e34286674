package systems

import (
	"rival-server/internal/domain"
	"rival-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Трекер репутации: стендинг по фракциям-академиям в [0,100],
// пороговая таблица уровней, множитель агрессии, гейтинг диалогов и квестов.

// ReputationLevel - качественный уровень отношения фракции
type ReputationLevel uint8

const (
	RepHated ReputationLevel = iota
	RepHostile
	RepUnfriendly
	RepNeutral
	RepFriendly
	RepHonored
	RepRevered
)

var repLevelToString = map[ReputationLevel]string{
	RepHated:      "Hated",
	RepHostile:    "Hostile",
	RepUnfriendly: "Unfriendly",
	RepNeutral:    "Neutral",
	RepFriendly:   "Friendly",
	RepHonored:    "Honored",
	RepRevered:    "Revered",
}

func (r ReputationLevel) String() string {
	if val, ok := repLevelToString[r]; ok {
		return val
	}
	return "Unknown"
}

// Упорядоченная пороговая таблица: первый порог, под который попало
// значение, и дает уровень. Выше последнего порога - Revered.
var repThresholds = []struct {
	max   int
	level ReputationLevel
}{
	{10, RepHated},
	{25, RepHostile},
	{40, RepUnfriendly},
	{60, RepNeutral},
	{75, RepFriendly},
	{90, RepHonored},
}

// NewReputation создает компонент со всеми известными фракциями на нейтрале
func NewReputation() *domain.ReputationComponent {
	values := make(map[domain.FactionID]int, len(domain.DefaultFactions))
	for _, f := range domain.DefaultFactions {
		values[f] = domain.ReputationNeutral
	}
	return &domain.ReputationComponent{Values: values}
}

// ReputationChange - одно изменение стендинга
type ReputationChange struct {
	Faction domain.FactionID `json:"faction"`
	Amount  int              `json:"amount"`
}

// ApplyChange применяет изменение с насыщением в [0,100].
// Неизвестная фракция - warn и no-op: битый контент не роняет ядро.
// Возвращает новое значение стендинга.
func ApplyChange(rep *domain.ReputationComponent, change ReputationChange) int {
	if rep == nil || rep.Values == nil {
		return domain.ReputationNeutral
	}

	current, known := rep.Values[change.Faction]
	if !known {
		logger.System("reputation").WithFields(logrus.Fields{
			"faction": change.Faction,
			"amount":  change.Amount,
		}).Warn("Reputation change for unknown faction ignored")
		return domain.ReputationNeutral
	}

	value := current + change.Amount
	if value < domain.ReputationMin {
		value = domain.ReputationMin
	}
	if value > domain.ReputationMax {
		value = domain.ReputationMax
	}
	rep.Values[change.Faction] = value
	return value
}

// LevelFor переводит числовой стендинг в качественный уровень
func LevelFor(value int) ReputationLevel {
	for _, t := range repThresholds {
		if value <= t.max {
			return t.level
		}
	}
	return RepRevered
}

// FactionLevel возвращает уровень отношения конкретной фракции.
// Неизвестная фракция считается нейтральной.
func FactionLevel(rep *domain.ReputationComponent, faction domain.FactionID) ReputationLevel {
	if rep == nil || rep.Values == nil {
		return RepNeutral
	}
	value, ok := rep.Values[faction]
	if !ok {
		return RepNeutral
	}
	return LevelFor(value)
}

// AggressionMultiplier - насколько злее враги фракции относятся к игроку.
// Выводится из той же пороговой таблицы, что и уровни.
func AggressionMultiplier(level ReputationLevel) float64 {
	switch level {
	case RepHated, RepHostile:
		return 2.0
	case RepUnfriendly:
		return 1.5
	case RepFriendly:
		return 0.75
	case RepHonored, RepRevered:
		return 0.5
	default:
		return 1.0
	}
}

// Идентификаторы реплик диалога. Лейблы рисует клиент.
const (
	DialogueTalk    = "talk"
	DialogueLeave   = "leave"
	DialogueThreat  = "threaten"
	DialogueAskHelp = "ask_help"
	DialogueTrade   = "trade"
)

// DialogueOptions возвращает доступные реплики для уровня отношения.
// Hated/Hostile открывают "Угрожать"; от Friendly и выше -
// "Попросить помощи" и "Торговать".
func DialogueOptions(level ReputationLevel) []string {
	options := []string{DialogueTalk, DialogueLeave}

	switch {
	case level <= RepHostile:
		options = append(options, DialogueThreat)
	case level >= RepFriendly:
		options = append(options, DialogueAskHelp, DialogueTrade)
	}

	return options
}

// QuestRequirement - минимальный стендинг фракции для квеста
type QuestRequirement struct {
	Faction domain.FactionID `json:"faction" yaml:"faction"`
	MinRep  int              `json:"minRep" yaml:"min_rep"`
}

// IsQuestUnlocked - квест доступен, если КАЖДАЯ требуемая фракция
// дает стендинг не ниже минимума
func IsQuestUnlocked(rep *domain.ReputationComponent, requirements []QuestRequirement) bool {
	for _, req := range requirements {
		if rep == nil || rep.Values == nil {
			return false
		}
		value, ok := rep.Values[req.Faction]
		if !ok || value < req.MinRep {
			return false
		}
	}
	return true
}
