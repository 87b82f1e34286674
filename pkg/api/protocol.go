package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он несет снимок боевого состояния сущностей и пачку событий,
// накопившихся с прошлого кадра. Рендер и физика живут на клиенте,
// сервер - источник правды по правилам боя и прогрессии.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE", "EVENTS", "ERROR", "GAME_OVER".
	Type string `json:"type"`

	// Frame порядковый номер кадра симуляции на сервере.
	Frame uint64 `json:"frame,omitempty"`

	// MyEntityID ID сущности, которой управляет данный клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	// StageID идентификатор текущей арены.
	StageID string `json:"stageId,omitempty"`

	// Score текущий счет забега.
	Score int `json:"score,omitempty"`

	// Entities снимок боевого состояния видимых сущностей.
	Entities []EntityView `json:"entities,omitempty"`

	// Events события, сгенерированные с прошлой отправки (всплывающий
	// урон, тряска камеры, левелапы). Клиент проигрывает их и забывает.
	Events []EventView `json:"events,omitempty"`

	// Error текст ошибки для Type="ERROR".
	Error string `json:"error,omitempty"`
}

// EntityView это DTO игровой сущности. Необязательные блоки опущены,
// если у сущности нет соответствующего компонента.
type EntityView struct {
	ID   string `json:"id"`
	Kind string `json:"kind"` // player, ally, enemy, obstacle, collectible
	Name string `json:"name,omitempty"`

	// Health здоровье. Отсутствует у неуязвимых декораций.
	Health *HealthView `json:"health,omitempty"`

	// Stats характеристики. Сервер отдает их только для своих сущностей клиента.
	Stats *StatsView `json:"stats,omitempty"`

	// Level прогрессия (только у игроков).
	Level *LevelView `json:"level,omitempty"`

	// Stability шкала стойкости и break-состояние.
	Stability *StabilityView `json:"stability,omitempty"`

	// Reputation стендинги по фракциям (только у игроков).
	Reputation map[string]int `json:"reputation,omitempty"`

	// Cooldowns остатки кулдаунов способностей в миллисекундах.
	Cooldowns map[string]int64 `json:"cooldowns,omitempty"`

	// Render подсказка клиенту, какой моделью рисовать.
	Render *RenderView `json:"render,omitempty"`

	// IsInvincible окно i-frames активно прямо сейчас.
	IsInvincible bool `json:"isInvincible,omitempty"`
}

type HealthView struct {
	Current int  `json:"current"`
	IsDead  bool `json:"isDead"`
}

type StatsView struct {
	Structure int `json:"structure"`
	Ignition  int `json:"ignition"`
	Logic     int `json:"logic"`
	Flow      int `json:"flow"`
}

type LevelView struct {
	Current     int `json:"current"`
	XP          int `json:"xp"`
	NextLevelXP int `json:"nextLevelXp"`
	StatPoints  int `json:"statPoints"`
}

type StabilityView struct {
	Current  float64 `json:"current"`
	Max      float64 `json:"max"`
	IsBroken bool    `json:"isBroken"`
}

type RenderView struct {
	Model string `json:"model"`
	Tint  string `json:"tint,omitempty"`
}

// EventView представляет одно событие для клиента.
type EventView struct {
	// Type тип события: COMBAT_TEXT, SCORE_UPDATE, CAMERA_SHAKE, GAME_OVER,
	// DIALOGUE, LEVEL_UP, PICKUP, STAGE_CLEARED.
	Type string `json:"type"`

	// EntityID сущность, к которой событие привязано (якорь для рендера).
	EntityID string `json:"entityId,omitempty"`

	// Text всплывающий текст (для COMBAT_TEXT - число урона).
	Text string `json:"text,omitempty"`

	// Color цветовой код текста: damage, critical, heal, break, xp, info.
	Color string `json:"color,omitempty"`

	// Value числовой довесок события (урон, очки, новый уровень).
	Value int `json:"value,omitempty"`

	// Options реплики для DIALOGUE.
	Options []string `json:"options,omitempty"`

	// Timestamp настенное время события в Unix-миллисекундах.
	Timestamp int64 `json:"timestamp"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID персонажа, от имени которого выполняется действие.
	// Обязателен только для первого сообщения "INIT".
	Token string `json:"token,omitempty"`

	// Action название действия.
	Action string `json:"action"`

	// Payload JSON-объект с данными. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// InitPayload открывает сессию: кто играет и на какой арене.
type InitPayload struct {
	CharacterID string `json:"characterId"`
	StageID     string `json:"stageId,omitempty"`
}

// LoadPayload запрашивает переход на другую арену.
type LoadPayload struct {
	StageID string `json:"stageId"`
}

// ContactView - одна пара соприкоснувшихся сущностей, как ее увидела
// физика клиента. A - инициатор (атакующий), B - принимающий.
type ContactView struct {
	A string `json:"a"`
	B string `json:"b"`
}

// ContactsPayload - пакет контактов за один кадр клиента.
type ContactsPayload struct {
	// DeltaTime время кадра в секундах. Сервер клампит его сам.
	DeltaTime float64 `json:"deltaTime"`

	// Contacts пары контактов кадра. Пустой список - валидный "тихий" кадр.
	Contacts []ContactView `json:"contacts"`
}

// AllocatePayload - заявка на трату очков характеристик.
type AllocatePayload struct {
	Structure int `json:"structure"`
	Ignition  int `json:"ignition"`
	Logic     int `json:"logic"`
	Flow      int `json:"flow"`

	// Role вместо явной разбивки: сервер сам рекомендует и проводит
	// распределение под роль (tank, melee_dps, ranged_dps, balanced).
	Role string `json:"role,omitempty"`
}

// AbilityPayload - применение способности по цели.
type AbilityPayload struct {
	AbilityID string `json:"abilityId"`
	TargetID  string `json:"targetId,omitempty"` // пусто - применить на себя
}

// DialoguePayload - обращение к NPC и выбранная реплика.
type DialoguePayload struct {
	TargetID string `json:"targetId"`
	OptionID string `json:"optionId,omitempty"` // пусто - запросить список реплик
}
