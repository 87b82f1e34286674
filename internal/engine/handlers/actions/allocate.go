package actions

import (
	"fmt"

	"rival-server/internal/domain"
	"rival-server/internal/engine/handlers"
	"rival-server/internal/systems"
	"rival-server/pkg/api"
)

// HandleAllocate проводит трату очков характеристик.
// Клиент шлет либо явную разбивку, либо роль - тогда сервер сам
// рекомендует разбивку под нее и тратит ВСЕ доступные очки.
func HandleAllocate(ctx handlers.Context, p api.AllocatePayload) (handlers.Result, error) {
	actor := ctx.Actor
	if actor.Level == nil {
		return handlers.Result{}, systems.ErrNoLevelComponent
	}

	var alloc systems.Allocation
	if p.Role != "" {
		alloc = systems.RecommendAllocation(domain.RoleType(p.Role), actor.Level.StatPoints)
	} else {
		alloc = systems.Allocation{
			Structure: p.Structure,
			Ignition:  p.Ignition,
			Logic:     p.Logic,
			Flow:      p.Flow,
		}
	}

	if err := systems.ApplyAllocation(actor, alloc); err != nil {
		return handlers.Result{}, err
	}

	return handlers.Result{
		Events: []domain.Event{{
			Type:     domain.EventCombatText,
			EntityID: actor.ID,
			Text:     fmt.Sprintf("+%d STATS", alloc.Total()),
			Color:    domain.TextColorInfo,
			Value:    alloc.Total(),
			AtMs:     ctx.Now,
		}},
	}, nil
}
