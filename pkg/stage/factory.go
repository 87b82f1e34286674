package stage

import (
	"fmt"

	"rival-server/internal/domain"
	"rival-server/internal/systems"
)

// Фабрика арен: превращает шаблон в заселенный мир.
// Владелец сущностей - мир; боевое ядро их только мутирует.

// Build создает мир по шаблону. Одинаковый stageID всегда дает
// одинаковый состав - шаблон и порядок спавна детерминированы.
func (l *Library) Build(stageID string) (*domain.World, error) {
	tpl, ok := l.stages[stageID]
	if !ok {
		return nil, fmt.Errorf("unknown stage %q", stageID)
	}

	world := domain.NewWorld(stageID, tpl.Stage)
	for _, spec := range tpl.Spawns {
		count := spec.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			world.Add(spawn(spec, i))
		}
	}
	return world, nil
}

// spawn собирает одну сущность из спека группы
func spawn(spec SpawnSpec, ordinal int) *domain.Entity {
	kind := domain.ParseEntityKind(spec.Kind)

	e := &domain.Entity{
		Kind:        kind,
		Name:        spec.Name,
		CharacterID: spec.Character,
		Faction:     domain.FactionID(spec.Faction),
	}
	if spec.Count > 1 {
		e.Name = fmt.Sprintf("%s %d", spec.Name, ordinal+1)
	}
	if spec.Model != "" {
		e.Render = &domain.RenderComponent{Model: spec.Model, Tint: spec.Tint}
	}

	switch kind {
	case domain.EntityKindEnemy, domain.EntityKindAlly:
		stats := &domain.StatsComponent{
			Structure: domain.DefaultStatValue,
			Ignition:  domain.DefaultStatValue,
			Logic:     domain.DefaultStatValue,
			Flow:      domain.DefaultStatValue,
		}
		if spec.Stats != nil {
			stats.Structure = spec.Stats.Structure
			stats.Ignition = spec.Stats.Ignition
			stats.Logic = spec.Stats.Logic
			stats.Flow = spec.Stats.Flow
		}
		e.Stats = stats
		e.Health = &domain.HealthComponent{Current: stats.Structure}
		e.Stability = systems.NewStability(spec.Character)

	case domain.EntityKindObstacle:
		damage := spec.ContactDamage
		if damage <= 0 {
			damage = domain.ObstacleContactDamage
		}
		e.Obstacle = &domain.ObstacleComponent{ContactDamage: damage}

	case domain.EntityKindCollectible:
		e.Collectible = &domain.CollectibleComponent{Effect: spec.Effect, Value: spec.Value}
	}

	return e
}

// NewPlayer создает свежего персонажа игрока. Статы стартуют на базе,
// прогрессия - с первого уровня, репутация - с нейтрала обеих академий.
func NewPlayer(characterID, controllerID string) *domain.Entity {
	stats := &domain.StatsComponent{
		Structure: domain.DefaultStatValue,
		Ignition:  domain.DefaultStatValue,
		Logic:     domain.DefaultStatValue,
		Flow:      domain.DefaultStatValue,
	}

	return &domain.Entity{
		Kind:         domain.EntityKindPlayer,
		Name:         characterID,
		CharacterID:  characterID,
		ControllerID: controllerID,
		Faction:      domain.FactionSeiran,
		Stats:        stats,
		Health:       &domain.HealthComponent{Current: stats.Structure},
		Level: &domain.LevelComponent{
			Current:     1,
			NextLevelXP: systems.XpRequired(1),
		},
		Stability:  systems.NewStability("player"),
		Reputation: systems.NewReputation(),
		Cooldowns:  &domain.CooldownsComponent{},
		Render:     &domain.RenderComponent{Model: "player_" + characterID},
	}
}

// NextStage возвращает арену, открывающуюся после зачистки.
// Пустая строка - кампания пройдена.
func (l *Library) NextStage(stageID string) string {
	tpl, ok := l.stages[stageID]
	if !ok {
		return ""
	}
	return tpl.Next
}
