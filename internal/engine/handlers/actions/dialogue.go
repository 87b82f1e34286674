package actions

import (
	"fmt"

	"rival-server/internal/domain"
	"rival-server/internal/engine/handlers"
	"rival-server/internal/systems"
	"rival-server/pkg/api"
)

// Сдвиги репутации за реплики. Разговор чуть греет отношение,
// угроза заметно портит его, торговля и уход нейтральны.
const (
	repDeltaTalk     = 2
	repDeltaThreaten = -10
	repDeltaAskHelp  = 5
)

// HandleDialogue обслуживает разговор с NPC.
//
// Пустой optionId - запрос списка реплик: сервер отвечает событием
// DIALOGUE с набором, открытым текущим уровнем отношения фракции NPC.
// Выбранная реплика применяет сдвиг репутации и возвращает обновленный
// набор (отношение могло смениться прямо в разговоре).
func HandleDialogue(ctx handlers.Context, p api.DialoguePayload) (handlers.Result, error) {
	actor := ctx.Actor

	id, err := domain.ParseEntityID(p.TargetID)
	if err != nil {
		return handlers.Result{}, fmt.Errorf("%w: %s", ErrTargetNotFound, p.TargetID)
	}
	target := ctx.World.Get(id)
	if target == nil {
		return handlers.Result{}, fmt.Errorf("%w: %s", ErrTargetNotFound, p.TargetID)
	}

	if p.OptionID != "" {
		applyDialogueOption(actor, target, p.OptionID)
	}

	level := systems.FactionLevel(actor.Reputation, target.Faction)
	return handlers.Result{
		Events: []domain.Event{{
			Type:     domain.EventDialogue,
			EntityID: target.ID,
			Text:     target.Name,
			Color:    level.String(),
			Options:  systems.DialogueOptions(level),
			AtMs:     ctx.Now,
		}},
	}, nil
}

func applyDialogueOption(actor, target *domain.Entity, optionID string) {
	var amount int
	switch optionID {
	case systems.DialogueTalk:
		amount = repDeltaTalk
	case systems.DialogueThreat:
		amount = repDeltaThreaten
	case systems.DialogueAskHelp:
		amount = repDeltaAskHelp
	case systems.DialogueLeave, systems.DialogueTrade:
		return
	default:
		// Неизвестная реплика - no-op, ApplyChange сюда даже не идет
		return
	}

	systems.ApplyChange(actor.Reputation, systems.ReputationChange{
		Faction: target.Faction,
		Amount:  amount,
	})
}
