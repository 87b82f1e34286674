package domain

// ComponentKey - имя атрибута для запросов к хранилищу.
// Контракт стора: "дай все сущности, у которых есть такие-то атрибуты".
type ComponentKey string

const (
	CompStats         ComponentKey = "stats"
	CompHealth        ComponentKey = "health"
	CompLevel         ComponentKey = "level"
	CompStability     ComponentKey = "stability"
	CompBreakState    ComponentKey = "breakState"
	CompInvincibility ComponentKey = "invincibility"
	CompReputation    ComponentKey = "reputation"
	CompCooldowns     ComponentKey = "cooldowns"
	CompRender        ComponentKey = "render"
	CompObstacle      ComponentKey = "obstacle"
	CompCollectible   ComponentKey = "collectible"
)

type Entity struct {
	// Идентификация
	ID   EntityID   `json:"id"`
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`

	// CharacterID - ключ в базе способностей (контент, не код)
	CharacterID string `json:"characterId,omitempty"`

	// ControllerID - ID сессии, которая управляет этой сущностью.
	// Если пусто - сущностью управляет движок.
	ControllerID string `json:"controllerId,omitempty"`

	// Faction - академия, за которую выступает сущность.
	// Через нее репутация игрока влияет на агрессию врагов.
	Faction FactionID `json:"faction,omitempty"`

	// Компоненты (Если nil - значит свойство отсутствует)
	Stats         *StatsComponent         `json:"stats,omitempty"`
	Health        *HealthComponent        `json:"health,omitempty"`
	Level         *LevelComponent         `json:"level,omitempty"`
	Stability     *StabilityComponent     `json:"stability,omitempty"`
	BreakState    *BreakStateComponent    `json:"breakState,omitempty"`
	Invincibility *InvincibilityComponent `json:"invincibility,omitempty"`
	Reputation    *ReputationComponent    `json:"reputation,omitempty"`
	Cooldowns     *CooldownsComponent     `json:"cooldowns,omitempty"`
	Render        *RenderComponent        `json:"render,omitempty"`
	Obstacle      *ObstacleComponent      `json:"obstacle,omitempty"`
	Collectible   *CollectibleComponent   `json:"collectible,omitempty"`
}

// Has проверяет наличие атрибута по имени
func (e *Entity) Has(key ComponentKey) bool {
	switch key {
	case CompStats:
		return e.Stats != nil
	case CompHealth:
		return e.Health != nil
	case CompLevel:
		return e.Level != nil
	case CompStability:
		return e.Stability != nil
	case CompBreakState:
		return e.BreakState != nil
	case CompInvincibility:
		return e.Invincibility != nil
	case CompReputation:
		return e.Reputation != nil
	case CompCooldowns:
		return e.Cooldowns != nil
	case CompRender:
		return e.Render != nil
	case CompObstacle:
		return e.Obstacle != nil
	case CompCollectible:
		return e.Collectible != nil
	}
	return false
}

// HasAll проверяет наличие всех перечисленных атрибутов
func (e *Entity) HasAll(keys ...ComponentKey) bool {
	for _, k := range keys {
		if !e.Has(k) {
			return false
		}
	}
	return true
}

// IsAlive - жива ли сущность. Сущности без здоровья (препятствия,
// коллектиблы) считаются "живыми", пока их не удалили из мира.
func (e *Entity) IsAlive() bool {
	if e.Health == nil {
		return true
	}
	return e.Health.Current > 0
}
