package domain

import "strings"

// ActionType - внутренний числовой идентификатор команды клиента
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionLoad       // Возобновление прогресса по stageId
	ActionContacts   // Пакет контактов кадра от рендера
	ActionAllocate   // Трата очков характеристик
	ActionAbility    // Применение способности
	ActionDialogue   // Запрос реплик у NPC фракции
	ActionResetStats // Сброс статов к базе с возвратом очков
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":        ActionInit,
	"LOAD":        ActionLoad,
	"CONTACTS":    ActionContacts,
	"ALLOCATE":    ActionAllocate,
	"ABILITY":     ActionAbility,
	"DIALOGUE":    ActionDialogue,
	"RESET_STATS": ActionResetStats,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:       "INIT",
	ActionLoad:       "LOAD",
	ActionContacts:   "CONTACTS",
	ActionAllocate:   "ALLOCATE",
	ActionAbility:    "ABILITY",
	ActionDialogue:   "DIALOGUE",
	ActionResetStats: "RESET_STATS",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
