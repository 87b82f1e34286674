package domain

// --- КОМПОНЕНТЫ ---
//
// Сущность - разреженная запись: nil-компонент означает
// "это правило к сущности не относится". Системы проверяют наличие
// компонента и молча пропускают сущность, если его нет.

// StatsComponent - четыре базовых характеристики персонажа.
// Structure заодно служит базой максимального здоровья.
type StatsComponent struct {
	Structure int `json:"structure"` // Прочность: защита и потолок HP
	Ignition  int `json:"ignition"`  // Запал: ближний урон и крит
	Logic     int `json:"logic"`     // Логика: дальний/техно урон
	Flow      int `json:"flow"`      // Поток: зарезервирован (ядро его не использует)
}

// HealthComponent - текущее здоровье. Потолок задается Stats.Structure.
type HealthComponent struct {
	Current int `json:"current"`
}

// LevelComponent - прогрессия персонажа
type LevelComponent struct {
	Current     int `json:"current"`     // >= 1
	XP          int `json:"xp"`          // >= 0
	NextLevelXP int `json:"nextLevelXp"` // > 0 (инвариант самовосстанавливается при порче)
	StatPoints  int `json:"statPoints"`  // >= 0
}

// StabilityComponent - шкала стойкости (stagger).
// Обнуление уводит сущность в break-состояние.
type StabilityComponent struct {
	Current   float64  `json:"current"`
	Max       float64  `json:"max"`
	RegenRate float64  `json:"regenRate"` // единиц в секунду
	LastHitMs WallTime `json:"lastHitMs"` // для паузы регена после удара
}

// BreakStateComponent - эфемерный компонент "сломленности".
// Создается менеджером стойкости, истекает лениво по настенным часам.
type BreakStateComponent struct {
	IsBroken bool     `json:"isBroken"`
	EndsAtMs WallTime `json:"endsAtMs"`
}

// InvincibilityComponent - эфемерное окно неуязвимости после удара (i-frames)
type InvincibilityComponent struct {
	IsInvincible bool     `json:"isInvincible"`
	EndsAtMs     WallTime `json:"endsAtMs"`
}

// ReputationComponent - стендинг по фракциям. Живет только у игрока.
type ReputationComponent struct {
	Values map[FactionID]int `json:"values"` // каждое значение в [0,100]
}

// CooldownEntry - один активный кулдаун способности
type CooldownEntry struct {
	AbilityID string   `json:"abilityId"`
	EndsAtMs  WallTime `json:"endsAtMs"`
}

// CooldownsComponent - список активных кулдаунов. Истекшие записи
// вычищаются лениво при следующем обращении, таймеров нет.
type CooldownsComponent struct {
	Entries []CooldownEntry `json:"entries"`
}

// RenderComponent - подсказка клиенту, чем рисовать сущность.
// Ядро внутрь не заглядывает.
type RenderComponent struct {
	Model string `json:"model"` // id меша/спрайта на клиенте
	Tint  string `json:"tint"`
}

// ObstacleComponent - препятствие: бьет игрока при контакте и исчезает
type ObstacleComponent struct {
	ContactDamage int `json:"contactDamage"`
}

// CollectibleComponent - подбираемый предмет
type CollectibleComponent struct {
	Effect string `json:"effect"` // "score", "heal", "xp"
	Value  int    `json:"value"`
}
