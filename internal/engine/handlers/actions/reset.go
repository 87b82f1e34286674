package actions

import (
	"fmt"

	"rival-server/internal/domain"
	"rival-server/internal/engine/handlers"
	"rival-server/internal/systems"
)

// HandleResetStats откатывает статы к базовым значениям и возвращает
// разницу очками. Респек бесплатный и не требует данных.
func HandleResetStats(ctx handlers.Context) (handlers.Result, error) {
	actor := ctx.Actor
	if actor.Level == nil {
		return handlers.Result{}, systems.ErrNoLevelComponent
	}
	if actor.Stats == nil {
		return handlers.Result{}, systems.ErrNoStatsComponent
	}

	base := domain.StatsComponent{
		Structure: domain.DefaultStatValue,
		Ignition:  domain.DefaultStatValue,
		Logic:     domain.DefaultStatValue,
		Flow:      domain.DefaultStatValue,
	}
	refund := systems.ResetStats(actor, base)

	return handlers.Result{
		Events: []domain.Event{{
			Type:     domain.EventCombatText,
			EntityID: actor.ID,
			Text:     fmt.Sprintf("RESPEC +%d", refund),
			Color:    domain.TextColorInfo,
			Value:    refund,
			AtMs:     ctx.Now,
		}},
	}, nil
}
