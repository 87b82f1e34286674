package actions

import (
	"errors"
	"fmt"

	"rival-server/internal/domain"
	"rival-server/internal/engine/handlers"
	"rival-server/internal/systems"
	"rival-server/pkg/api"
)

var (
	ErrUnknownAbility  = errors.New("unknown ability")
	ErrAbilityNotKnown = errors.New("character does not know this ability")
	ErrTargetNotFound  = errors.New("target not found")
)

// HandleAbility применяет способность кастера по цели.
// Пустой targetId - каст на себя. Отказ по кулдауну - не ошибка,
// а штатный исход: клиент получает остаток кулдауна текстом.
func HandleAbility(ctx handlers.Context, p api.AbilityPayload) (handlers.Result, error) {
	actor := ctx.Actor

	ability, ok := ctx.Catalog.Ability(p.AbilityID)
	if !ok {
		return handlers.Result{}, fmt.Errorf("%w: %s", ErrUnknownAbility, p.AbilityID)
	}
	if !ctx.Catalog.Knows(actor.CharacterID, p.AbilityID) {
		return handlers.Result{}, fmt.Errorf("%w: %s", ErrAbilityNotKnown, p.AbilityID)
	}

	target := actor
	if p.TargetID != "" {
		id, err := domain.ParseEntityID(p.TargetID)
		if err != nil {
			return handlers.Result{}, fmt.Errorf("%w: %s", ErrTargetNotFound, p.TargetID)
		}
		target = ctx.World.Get(id)
		if target == nil {
			return handlers.Result{}, fmt.Errorf("%w: %s", ErrTargetNotFound, p.TargetID)
		}
	}

	outcome := systems.ExecuteAbility(actor, target, ability, ctx.Now)
	if !outcome.Applied {
		remaining := systems.CooldownRemaining(actor.Cooldowns, ability.ID, ctx.Now)
		return handlers.Result{
			Events: []domain.Event{{
				Type:     domain.EventCombatText,
				EntityID: actor.ID,
				Text:     fmt.Sprintf("%s %.1fs", ability.Name, float64(remaining)/1000),
				Color:    domain.TextColorInfo,
				AtMs:     ctx.Now,
			}},
		}, nil
	}

	// Применение состоялось - фиксируем кулдаун
	if actor.Cooldowns == nil {
		actor.Cooldowns = &domain.CooldownsComponent{}
	}
	systems.StartCooldown(actor.Cooldowns, ability, ctx.Now)

	var events []domain.Event
	if outcome.Damage > 0 {
		events = append(events, domain.Event{
			Type:     domain.EventCombatText,
			EntityID: target.ID,
			Text:     fmt.Sprintf("%d", outcome.Damage),
			Color:    domain.TextColorDamage,
			Value:    outcome.Damage,
			AtMs:     ctx.Now,
		})
	}
	if outcome.Healed > 0 {
		events = append(events, domain.Event{
			Type:     domain.EventCombatText,
			EntityID: target.ID,
			Text:     fmt.Sprintf("+%d", outcome.Healed),
			Color:    domain.TextColorHeal,
			Value:    outcome.Healed,
			AtMs:     ctx.Now,
		})
	}

	return handlers.Result{Events: events}, nil
}
