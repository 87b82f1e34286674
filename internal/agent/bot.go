package agent

import (
	"encoding/json"
	"time"

	"rival-server/internal/domain"
	"rival-server/internal/engine"
	"rival-server/pkg/api"
	"rival-server/pkg/logger"
	"rival-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Bot - безголовый спарринг-клиент. Подключается к движку тем же путем,
// что и обычный игрок (Attach + подписка в Hub), но вместо рендера у него
// тикер: бот сам гонит кадры CONTACTS, изображая физику клиента.
//
// Жизненный цикл:
//  1. NewBot -> Attach в мире, регистрация в хабе, личный канал (Inbox).
//  2. Run -> Запуск в отдельной горутине: тикер шлет кадры, Inbox
//     обновляет локальный снимок мира.
//  3. На каждом кадре бот "прижимается" к выбранной цели: репортует
//     контакт себя с ней. Сервер сам решит, что из этого выйдет.
//  4. Stop -> Detach, профиль сохранен, подписка снята.
type Bot struct {
	CharacterID string
	EntityID    domain.EntityID
	Service     *engine.GameService // Прямая ссылка на движок (для простоты в этом проекте)
	Inbox       chan api.ServerResponse

	frameEvery time.Duration
	quit       chan struct{}
	log        *logrus.Entry

	// Последний снимок мира от сервера. Трогается только горутиной Run.
	state api.ServerResponse
}

// NewBot поднимает персонажа бота в мире сервиса
func NewBot(service *engine.GameService, characterID string) (*Bot, error) {
	controllerID := "bot_" + utils.GenerateID()[:8]
	entityID, err := service.Attach(characterID, controllerID, "")
	if err != nil {
		return nil, err
	}

	log := logger.System("bot").WithField("character_id", characterID)
	log.WithField("entity_id", entityID).Info("Sparring bot attached")

	return &Bot{
		CharacterID: characterID,
		EntityID:    entityID,
		Service:     service,
		Inbox:       service.Hub.Register(entityID),
		frameEvery:  50 * time.Millisecond, // ~20 FPS, хватит для спарринга
		quit:        make(chan struct{}),
		log:         log,
	}, nil
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run() {
	ticker := time.NewTicker(b.frameEvery)
	defer ticker.Stop()

	lastFrame := time.Now()
	for {
		select {
		case resp, ok := <-b.Inbox:
			if !ok {
				b.log.Info("Sparring bot inbox closed")
				return
			}
			b.state = resp
			if resp.Type == "GAME_OVER" {
				b.log.Info("Sparring bot run ended")
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(lastFrame).Seconds()
			lastFrame = now
			b.makeMove(dt)

		case <-b.quit:
			return
		}
	}
}

// Stop снимает бота с арены
func (b *Bot) Stop() {
	close(b.quit)
	b.Service.Detach(b.EntityID)
}

// makeMove - мозг бота: один кадр "физики" и, при случае, команда
func (b *Bot) makeMove(dt float64) {
	// 1. Есть нераспределенные очки - тратим сразу, ролью
	if me := b.findSelf(); me != nil && me.Level != nil && me.Level.StatPoints > 0 {
		b.sendAllocate("balanced")
		return
	}

	// 2. Выбираем цель и репортуем контакт с ней
	target := b.pickTarget()
	contacts := []api.ContactView{}
	if target != "" {
		contacts = append(contacts, api.ContactView{
			A: b.EntityID.Token(),
			B: target,
		})
	}
	b.sendContacts(dt, contacts)
}

// pickTarget выбирает врага с наименьшим здоровьем из последнего снимка.
// Сломленные цели приоритетнее: по ним удары проходят как обычно,
// а ответки не будет.
func (b *Bot) pickTarget() string {
	var best string
	bestHP := int(^uint(0) >> 1)
	for _, ev := range b.state.Entities {
		if ev.Kind != "enemy" {
			continue
		}
		hp := 0
		if ev.Health != nil {
			if ev.Health.IsDead {
				continue
			}
			hp = ev.Health.Current
		}
		if ev.Stability != nil && ev.Stability.IsBroken {
			return ev.ID
		}
		if best == "" || hp < bestHP {
			best, bestHP = ev.ID, hp
		}
	}
	return best
}

func (b *Bot) findSelf() *api.EntityView {
	for i := range b.state.Entities {
		if b.state.Entities[i].ID == b.state.MyEntityID {
			return &b.state.Entities[i]
		}
	}
	return nil
}

// --- Хелперы для отправки команд на сервер ---

func (b *Bot) sendCommand(action domain.ActionType, payload interface{}) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		b.log.WithError(err).Error("Bot payload marshalling failed")
		return
	}

	b.Service.ProcessCommand(b.EntityID, api.ClientCommand{
		Action:  action.String(),
		Payload: payloadBytes,
	})
}

func (b *Bot) sendContacts(dt float64, contacts []api.ContactView) {
	b.sendCommand(domain.ActionContacts, api.ContactsPayload{
		DeltaTime: dt,
		Contacts:  contacts,
	})
}

func (b *Bot) sendAllocate(role string) {
	b.sendCommand(domain.ActionAllocate, api.AllocatePayload{Role: role})
}
