package engine

import (
	"rival-server/internal/domain"
	"rival-server/internal/systems"
	"rival-server/pkg/api"
)

// Сборка персональных снапшотов мира. Наблюдатель видит боевое
// состояние всех, но статы, прогрессию и репутацию - только свои.

// BuildStateFor создает слепок мира для observer
func (s *GameService) BuildStateFor(observer *domain.Entity, events []domain.Event, now domain.WallTime) *api.ServerResponse {
	viewEntities := make([]api.EntityView, 0, s.World.Count())
	for _, e := range s.World.All() {
		viewEntities = append(viewEntities, s.toEntityView(e, observer, now))
	}

	return &api.ServerResponse{
		Type:       "UPDATE",
		Frame:      s.frame,
		MyEntityID: observer.ID.Token(),
		StageID:    s.World.StageID,
		Score:      s.orch.Score(),
		Entities:   viewEntities,
		Events:     toEventViews(events),
	}
}

// toEntityView конвертирует доменную сущность в DTO с учетом прав
// доступа (observer)
func (s *GameService) toEntityView(target, observer *domain.Entity, now domain.WallTime) api.EntityView {
	view := api.EntityView{
		ID:   target.ID.Token(),
		Kind: target.Kind.String(),
		Name: target.Name,
	}

	if target.Health != nil {
		view.Health = &api.HealthView{
			Current: target.Health.Current,
			IsDead:  !target.IsAlive(),
		}
	}
	if target.Stability != nil {
		view.Stability = &api.StabilityView{
			Current:  target.Stability.Current,
			Max:      target.Stability.Max,
			IsBroken: systems.IsBroken(target, now),
		}
	}
	if target.Render != nil {
		view.Render = &api.RenderView{Model: target.Render.Model, Tint: target.Render.Tint}
	}
	view.IsInvincible = systems.IsInvincible(target.Invincibility, now)

	// Владелец видит всё, чужаки - только боевую поверхность
	if target.ID != observer.ID {
		return view
	}

	if target.Stats != nil {
		view.Stats = &api.StatsView{
			Structure: target.Stats.Structure,
			Ignition:  target.Stats.Ignition,
			Logic:     target.Stats.Logic,
			Flow:      target.Stats.Flow,
		}
	}
	if target.Level != nil {
		view.Level = &api.LevelView{
			Current:     target.Level.Current,
			XP:          target.Level.XP,
			NextLevelXP: target.Level.NextLevelXP,
			StatPoints:  target.Level.StatPoints,
		}
	}
	if target.Reputation != nil {
		rep := make(map[string]int, len(target.Reputation.Values))
		for faction, value := range target.Reputation.Values {
			rep[string(faction)] = value
		}
		view.Reputation = rep
	}
	if target.Cooldowns != nil {
		cds := make(map[string]int64)
		for _, entry := range target.Cooldowns.Entries {
			if remaining := systems.CooldownRemaining(target.Cooldowns, entry.AbilityID, now); remaining > 0 {
				cds[entry.AbilityID] = remaining
			}
		}
		if len(cds) > 0 {
			view.Cooldowns = cds
		}
	}

	return view
}

func toEventViews(events []domain.Event) []api.EventView {
	if len(events) == 0 {
		return nil
	}
	out := make([]api.EventView, 0, len(events))
	for _, e := range events {
		view := api.EventView{
			Type:      e.Type.String(),
			Text:      e.Text,
			Color:     e.Color,
			Value:     e.Value,
			Options:   e.Options,
			Timestamp: int64(e.AtMs),
		}
		if e.EntityID != 0 {
			view.EntityID = e.EntityID.Token()
		}
		out = append(out, view)
	}
	return out
}
