package domain

// EventType - внутренний числовой идентификатор исходящего события.
// Оркестратор пишет события в sink, наружу они уходят как нотификации
// (всплывающий текст, счет, тряска камеры) - ядро не знает, как их рисуют.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventCombatText
	EventScoreUpdate
	EventCameraShake
	EventGameOver
	EventDialogue
	EventLevelUp
	EventPickup
	EventStageCleared
)

// Маппинг для логов Domain -> String
var eventCmdToString = map[EventType]string{
	EventCombatText:   "COMBAT_TEXT",
	EventScoreUpdate:  "SCORE_UPDATE",
	EventCameraShake:  "CAMERA_SHAKE",
	EventGameOver:     "GAME_OVER",
	EventDialogue:     "DIALOGUE",
	EventLevelUp:      "LEVEL_UP",
	EventPickup:       "PICKUP",
	EventStageCleared: "STAGE_CLEARED",
}

// String реализует интерфейс Stringer (для fmt.Printf и JSON наружу)
func (e EventType) String() string {
	if val, ok := eventCmdToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// Цветовые теги всплывающего боевого текста.
// Клиент сам решает, каким цветом это нарисовать.
const (
	TextColorDamage   = "damage"
	TextColorCritical = "critical"
	TextColorHeal     = "heal"
	TextColorBreak    = "break"
	TextColorXP       = "xp"
	TextColorInfo     = "info"
)

// Event - одно исходящее событие ядра. Fire-and-forget: ядро пишет
// в sink и забывает, подтверждений и обратной связи нет.
type Event struct {
	Type     EventType
	EntityID EntityID // якорь события (над кем рисовать текст)
	Text     string
	Color    string
	Value    int
	Options  []string // реплики для EventDialogue
	AtMs     WallTime
}

// EventSink принимает исходящие события ядра.
// Реализация решает, буферизовать их, слать в сокет или ронять.
type EventSink interface {
	Emit(e Event)
}
