package engine

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"rival-server/internal/content"
	"rival-server/internal/domain"
	"rival-server/internal/engine/handlers"
	"rival-server/internal/engine/handlers/actions"
	"rival-server/internal/infrastructure/storage"
	"rival-server/internal/network"
	"rival-server/internal/systems"
	"rival-server/pkg/api"
	"rival-server/pkg/logger"
	"rival-server/pkg/stage"
	"rival-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// GameService - владелец мира и единственный поток, который его мутирует.
// Все снаружи (websocket-клиенты, бот) общаются с ним через каналы:
// команды через CommandChan, подключение через attachCh. Кадры симуляции
// двигает клиентский рендер пакетами CONTACTS - своего тикера у сервиса нет.
type GameService struct {
	World *domain.World

	Hub         *network.Broadcaster
	CommandChan chan domain.InternalCommand

	library *stage.Library
	catalog *content.Catalog
	store   *storage.Store // nil - без персистентности

	orch  *Orchestrator
	sink  *BufferedSink
	frame uint64

	handlers map[domain.ActionType]handlers.HandlerFunc

	attachCh chan attachRequest
	detachCh chan domain.EntityID
	quitCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once

	autosave time.Duration
	log      *logrus.Entry
}

type attachRequest struct {
	characterID  string
	controllerID string
	stageID      string
	reply        chan attachResult
}

type attachResult struct {
	entityID domain.EntityID
	err      error
}

// NewService собирает сервис на стартовой арене
func NewService(cfg Config, catalog *content.Catalog, library *stage.Library, store *storage.Store) (*GameService, error) {
	world, err := library.Build(stage.DefaultStageID)
	if err != nil {
		return nil, err
	}

	seed := cfg.CombatSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sink := NewBufferedSink()
	s := &GameService{
		World:       world,
		Hub:         network.NewBroadcaster(),
		CommandChan: make(chan domain.InternalCommand, 100),
		library:     library,
		catalog:     catalog,
		store:       store,
		sink:        sink,
		orch:        NewOrchestrator(world, sink, utils.NewUnitRand(seed)),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		attachCh:    make(chan attachRequest),
		detachCh:    make(chan domain.EntityID, 16),
		quitCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		autosave:    time.Duration(cfg.AutosaveSec) * time.Second,
		log:         logger.System("service"),
	}

	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	// INIT, LOAD и CONTACTS сервис обрабатывает сам: они трогают
	// жизненный цикл мира, а не одну сущность
	s.handlers[domain.ActionAllocate] = handlers.WithPayload(actions.HandleAllocate)
	s.handlers[domain.ActionAbility] = handlers.WithPayload(actions.HandleAbility)
	s.handlers[domain.ActionDialogue] = handlers.WithPayload(actions.HandleDialogue)
	s.handlers[domain.ActionResetStats] = handlers.WithEmptyPayload(actions.HandleResetStats)
}

func (s *GameService) Start() {
	go s.runLoop()
}

// Stop останавливает цикл и возвращается только после того, как тот
// досохранил профили. Иначе вызывающая сторона закроет хранилище
// раньше финального сброса.
func (s *GameService) Stop() {
	s.stopOnce.Do(func() { close(s.quitCh) })
	<-s.doneCh
}

// ProcessCommand принимает команду от внешнего мира (WebSocket)
func (s *GameService) ProcessCommand(token domain.EntityID, externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		s.log.WithField("action", externalCmd.Action).Warn("Unknown action ignored")
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   token,
		Payload: externalCmd.Payload,
	}
}

// Attach синхронно заводит персонажа в мир: профиль поднимается
// из хранилища (если есть), сущность попадает в арену, ID уходит
// вызывающему. Сам мир при этом мутирует только цикл сервиса.
func (s *GameService) Attach(characterID, controllerID, stageID string) (domain.EntityID, error) {
	req := attachRequest{
		characterID:  characterID,
		controllerID: controllerID,
		stageID:      stageID,
		reply:        make(chan attachResult, 1),
	}

	select {
	case s.attachCh <- req:
	case <-s.quitCh:
		return 0, errors.New("service is stopping")
	}

	res := <-req.reply
	return res.entityID, res.err
}

// Detach выводит персонажа из мира с сохранением профиля
func (s *GameService) Detach(id domain.EntityID) {
	select {
	case s.detachCh <- id:
	case <-s.quitCh:
	}
}

// --- ЦИКЛ СЕРВИСА ---

func (s *GameService) runLoop() {
	defer close(s.doneCh)
	s.log.Info("Game service loop started")

	// Нулевой период уронил бы NewTicker
	period := s.autosave
	if period <= 0 {
		period = 30 * time.Second
	}
	autosave := time.NewTicker(period)
	defer autosave.Stop()

	for {
		select {
		case cmd := <-s.CommandChan:
			s.dispatch(cmd)

		case req := <-s.attachCh:
			id, err := s.attachPlayer(req)
			req.reply <- attachResult{entityID: id, err: err}

		case id := <-s.detachCh:
			s.detachPlayer(id)

		case <-autosave.C:
			s.saveAllProfiles()

		case <-s.quitCh:
			s.saveAllProfiles()
			s.log.Info("Game service loop stopped")
			return
		}
	}
}

func (s *GameService) dispatch(cmd domain.InternalCommand) {
	actor := s.World.Get(cmd.Token)
	if actor == nil {
		s.log.WithField("token", cmd.Token).Warn("Command from entity not in world")
		return
	}

	switch cmd.Action {
	case domain.ActionContacts:
		s.processFrame(actor, cmd.Payload)
		return
	case domain.ActionInit:
		// Сессия уже поднята через Attach, INIT просто возвращает снапшот
		s.sendSnapshot(actor, nil)
		return
	case domain.ActionLoad:
		s.processLoad(actor, cmd.Payload)
		return
	}

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	now := domain.NowMs()
	result, err := handler(handlers.Context{
		World:   s.World,
		Actor:   actor,
		Catalog: s.catalog,
		Now:     now,
	}, cmd.Payload)

	if err != nil {
		s.Hub.SendTo(actor.ID, api.ServerResponse{Type: "ERROR", Error: err.Error()})
		return
	}

	s.sendSnapshot(actor, result.Events)
}

// processFrame - один кадр симуляции, который привез пакет CONTACTS
func (s *GameService) processFrame(driver *domain.Entity, raw json.RawMessage) {
	var p api.ContactsPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		s.Hub.SendTo(driver.ID, api.ServerResponse{Type: "ERROR", Error: "invalid contacts payload"})
		return
	}
	if err := p.Validate(); err != nil {
		s.Hub.SendTo(driver.ID, api.ServerResponse{Type: "ERROR", Error: err.Error()})
		return
	}

	contacts := make([]domain.ContactPair, 0, len(p.Contacts))
	for _, c := range p.Contacts {
		a, errA := domain.ParseEntityID(c.A)
		b, errB := domain.ParseEntityID(c.B)
		if errA != nil || errB != nil {
			continue
		}
		contacts = append(contacts, domain.ContactPair{A: a, B: b})
	}

	s.frame++
	now := domain.NowMs()
	s.orch.ProcessFrame(contacts, domain.FrameDelta(p.DeltaTime).Clamped(), now)

	// Кадровые события уходят всем подписчикам вместе со снапшотом
	events := s.sink.Drain()
	for i := range events {
		// Зачистка арены несет подсказку, что грузить следующим
		if events[i].Type == domain.EventStageCleared {
			events[i].Text = s.library.NextStage(s.World.StageID)
		}
	}
	for _, e := range s.World.All() {
		if !s.Hub.HasSubscriber(e.ID) {
			continue
		}
		resp := s.BuildStateFor(e, events, now)
		if s.orch.IsGameOver() {
			resp.Type = "GAME_OVER"
		}
		s.Hub.SendTo(e.ID, *resp)
	}
}

// processLoad - переход на другую арену с сохранением персонажа
func (s *GameService) processLoad(actor *domain.Entity, raw json.RawMessage) {
	var p api.LoadPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		s.Hub.SendTo(actor.ID, api.ServerResponse{Type: "ERROR", Error: "invalid load payload"})
		return
	}
	if err := p.Validate(); err != nil {
		s.Hub.SendTo(actor.ID, api.ServerResponse{Type: "ERROR", Error: err.Error()})
		return
	}

	world, err := s.library.Build(p.StageID)
	if err != nil {
		s.Hub.SendTo(actor.ID, api.ServerResponse{Type: "ERROR", Error: err.Error()})
		return
	}

	// Переносим управляемых персонажей в новый мир как есть.
	// ID сохраняется: подписка в Hub и клиентская сессия привязаны к нему.
	for _, e := range s.World.All() {
		if e.ControllerID != "" {
			world.Add(e)
		}
	}

	s.World = world
	s.orch.SwapWorld(world)
	s.frame = 0

	s.log.WithFields(logrus.Fields{
		"stage_id": p.StageID,
		"entities": world.Count(),
	}).Info("Stage loaded")

	now := domain.NowMs()
	for _, e := range world.All() {
		if s.Hub.HasSubscriber(e.ID) {
			s.Hub.SendTo(e.ID, *s.BuildStateFor(e, nil, now))
		}
	}
}

// attachPlayer поднимает персонажа из профиля или создает нового
func (s *GameService) attachPlayer(req attachRequest) (domain.EntityID, error) {
	player := stage.NewPlayer(req.characterID, req.controllerID)

	desiredStage := req.stageID
	if s.store != nil {
		profile, err := s.store.Get(req.characterID)
		switch {
		case err == nil:
			s.restoreFromProfile(player, profile)
			if desiredStage == "" {
				desiredStage = profile.StageID
			}
		case errors.Is(err, storage.ErrNotFound):
			// Новый персонаж
		default:
			return 0, err
		}
	}

	// Возобновление прогресса: пока арена никем не занята,
	// первый вошедший решает, на каком стейдже продолжать
	if desiredStage != "" && desiredStage != s.World.StageID && !s.hasControlledEntities() {
		if world, err := s.library.Build(desiredStage); err == nil {
			s.World = world
			s.orch.SwapWorld(world)
			s.frame = 0
		} else {
			s.log.WithError(err).WithField("stage_id", desiredStage).Warn("Resume stage unknown, keeping current")
		}
	}

	s.World.Add(player)
	s.log.WithFields(logrus.Fields{
		"character_id": req.characterID,
		"entity_id":    player.ID,
		"level":        player.Level.Current,
	}).Info("Player attached")

	return player.ID, nil
}

// hasControlledEntities сообщает, есть ли на арене живые клиентские сессии
func (s *GameService) hasControlledEntities() bool {
	for _, e := range s.World.All() {
		if e.ControllerID != "" {
			return true
		}
	}
	return false
}

func (s *GameService) restoreFromProfile(player *domain.Entity, profile storage.Profile) {
	*player.Level = profile.Level
	*player.Stats = profile.Stats
	player.Health.Current = profile.Stats.Structure
	if len(profile.Reputation) > 0 {
		player.Reputation.Values = profile.Reputation
	}
	// Битые сейвы чинит покадровая прогрессия, здесь не проверяем
}

func (s *GameService) detachPlayer(id domain.EntityID) {
	player := s.World.Get(id)
	if player == nil {
		return
	}
	s.saveProfile(player)
	s.World.Remove(id)
	s.Hub.Unregister(id)
	s.log.WithField("entity_id", id).Info("Player detached")
}

func (s *GameService) saveProfile(player *domain.Entity) {
	if s.store == nil || player.Level == nil || player.Stats == nil {
		return
	}

	profile := storage.Profile{
		CharacterID: player.CharacterID,
		StageID:     s.World.StageID,
		Score:       s.orch.Score(),
		Level:       *player.Level,
		Stats:       *player.Stats,
		UpdatedAtMs: domain.NowMs(),
	}
	if player.Reputation != nil {
		profile.Reputation = player.Reputation.Values
	}

	if err := s.store.Put(profile); err != nil {
		s.log.WithError(err).WithField("character_id", player.CharacterID).Error("Profile save failed")
	}
}

func (s *GameService) saveAllProfiles() {
	for _, e := range s.World.ByKind(domain.EntityKindPlayer) {
		s.saveProfile(e)
	}
}

// sendSnapshot шлет актору его персональный слепок с событиями команды
func (s *GameService) sendSnapshot(actor *domain.Entity, events []domain.Event) {
	s.Hub.SendTo(actor.ID, *s.BuildStateFor(actor, events, domain.NowMs()))
}

// BrokenEntities нужен только дебаг-роуту: кто сейчас в break-состоянии
func (s *GameService) BrokenEntities(now domain.WallTime) []domain.EntityID {
	var out []domain.EntityID
	for _, e := range s.World.All() {
		if systems.IsBroken(e, now) {
			out = append(out, e.ID)
		}
	}
	return out
}
