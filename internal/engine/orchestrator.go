package engine

import (
	"fmt"
	"math"

	"rival-server/internal/domain"
	"rival-server/internal/systems"
	"rival-server/pkg/logger"
	"rival-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Orchestrator - покадровый дирижер боя. Получает от драйвера кадра
// пакет уже обнаруженных контактов (физика живет на клиенте) и дельту,
// прогоняет их через резолверы в фиксированном порядке фаз и превращает
// исходы в события наружу.
//
// Дисциплина удалений: внутри фазы сущности из арены не удаляются -
// убитые копятся в буфере и сбрасываются после прохода по фазе.
type Orchestrator struct {
	world *domain.World
	sink  domain.EventSink
	rng   utils.UnitRand
	log   *logrus.Entry

	score        int
	gameOver     bool
	stageCleared bool

	// Буфер отложенных удалений текущей фазы
	removeQueue []domain.EntityID
}

func NewOrchestrator(world *domain.World, sink domain.EventSink, rng utils.UnitRand) *Orchestrator {
	return &Orchestrator{
		world: world,
		sink:  sink,
		rng:   rng,
		log:   logger.System("orchestrator"),
	}
}

// Score возвращает текущий счет забега
func (o *Orchestrator) Score() int { return o.score }

// IsGameOver - забег окончен (игрок погиб)
func (o *Orchestrator) IsGameOver() bool { return o.gameOver }

// SwapWorld подменяет арену (переход на другой стейдж) и сбрасывает
// состояние забега
func (o *Orchestrator) SwapWorld(world *domain.World) {
	o.world = world
	o.score = 0
	o.gameOver = false
	o.stageCleared = false
	o.removeQueue = o.removeQueue[:0]
}

// ProcessFrame - один кадр симуляции.
//
// Порядок фаз фиксирован:
//  1. Союзник -> враг: урон и стойкость, убитые в буфер.
//  2. Игрок <-> враг: то же, плюс счет и опыт за килы,
//     game-over при гибели игрока.
//  3. Игрок <-> препятствие: фиксированный контактный урон, препятствие
//     уничтожается.
//  4. Игрок <-> коллектибл: эффект подбора, коллектибл исчезает.
//
// После фаз - покадровые развертки: уборка трупов, истечение
// break-состояний, регенерация стойкости, прогрессия.
func (o *Orchestrator) ProcessFrame(contacts []domain.ContactPair, dt domain.FrameDelta, now domain.WallTime) {
	if o.gameOver {
		return
	}

	// Раскладка контактов по фазам. Пары с уже удаленными сущностями
	// молча отбрасываются - клиент мог прислать контакт прошлого кадра.
	var allyStrikes, playerStrikes, enemyStrikes, obstacleHits, pickups [][2]*domain.Entity

	for _, pair := range contacts {
		a, b := o.world.Get(pair.A), o.world.Get(pair.B)
		if a == nil || b == nil {
			continue
		}

		switch {
		case a.Kind == domain.EntityKindAlly && b.Kind == domain.EntityKindEnemy:
			allyStrikes = append(allyStrikes, [2]*domain.Entity{a, b})
		case a.Kind == domain.EntityKindPlayer && b.Kind == domain.EntityKindEnemy:
			playerStrikes = append(playerStrikes, [2]*domain.Entity{a, b})
		case a.Kind == domain.EntityKindEnemy && b.Kind == domain.EntityKindPlayer:
			enemyStrikes = append(enemyStrikes, [2]*domain.Entity{a, b})
		case b.Kind == domain.EntityKindObstacle && a.Kind == domain.EntityKindPlayer:
			obstacleHits = append(obstacleHits, [2]*domain.Entity{a, b})
		case a.Kind == domain.EntityKindObstacle && b.Kind == domain.EntityKindPlayer:
			obstacleHits = append(obstacleHits, [2]*domain.Entity{b, a})
		case b.Kind == domain.EntityKindCollectible && a.Kind == domain.EntityKindPlayer:
			pickups = append(pickups, [2]*domain.Entity{a, b})
		case a.Kind == domain.EntityKindCollectible && b.Kind == domain.EntityKindPlayer:
			pickups = append(pickups, [2]*domain.Entity{b, a})
		}
	}

	// Фаза 1: удары союзников
	for _, pair := range allyStrikes {
		o.resolveStrike(pair[0], pair[1], now, false)
	}
	o.flushRemovals()

	// Фаза 2: игрок против врагов (обе стороны)
	for _, pair := range playerStrikes {
		o.resolveStrike(pair[0], pair[1], now, true)
	}
	for _, pair := range enemyStrikes {
		o.resolveEnemyStrike(pair[0], pair[1], now)
	}
	o.flushRemovals()

	// Фаза 3: препятствия
	for _, pair := range obstacleHits {
		o.resolveObstacleHit(pair[0], pair[1], now)
	}
	o.flushRemovals()

	// Фаза 4: коллектиблы
	for _, pair := range pickups {
		o.resolvePickup(pair[0], pair[1], now)
	}
	o.flushRemovals()

	// Покадровые развертки
	o.sweepDead(now)
	o.sweepTimers(dt, now)
	o.sweepProgression(now)
	o.checkStageCleared(now)
}

// sweepDead убирает трупы, погибшие вне фазовых ударов (например, от
// способности между кадрами). Килы врагов зачитываются игроку.
func (o *Orchestrator) sweepDead(now domain.WallTime) {
	for _, e := range o.world.All() {
		if e.Health == nil || e.IsAlive() {
			continue
		}
		switch e.Kind {
		case domain.EntityKindPlayer:
			o.triggerGameOver(e, now)
		case domain.EntityKindEnemy:
			if player := o.firstPlayer(); player != nil {
				o.grantKillRewards(player, e, now)
			}
			o.queueRemoval(e.ID)
		default:
			o.queueRemoval(e.ID)
		}
	}
	o.flushRemovals()
}

func (o *Orchestrator) firstPlayer() *domain.Entity {
	players := o.world.ByKind(domain.EntityKindPlayer)
	if len(players) == 0 {
		return nil
	}
	return players[0]
}

// resolveStrike - удар игрока или союзника по врагу.
// scoring=true включает счет и опыт (только для игрока).
func (o *Orchestrator) resolveStrike(attacker, defender *domain.Entity, now domain.WallTime, scoring bool) {
	if !attacker.IsAlive() || !defender.IsAlive() {
		return
	}

	outcome := systems.ResolveAttack(attacker, defender, domain.AttackMelee, o.rng)

	if !systems.RegisterHit(attacker, defender, outcome.Damage, domain.InvincibilityMs, now) {
		return
	}

	color := domain.TextColorDamage
	if outcome.IsCritical {
		color = domain.TextColorCritical
	}
	o.emit(domain.Event{
		Type:     domain.EventCombatText,
		EntityID: defender.ID,
		Text:     fmt.Sprintf("%d", outcome.Damage),
		Color:    color,
		Value:    outcome.Damage,
		AtMs:     now,
	})

	// Стойкость снимается тем же уроном
	if defender.Stability != nil {
		if systems.ReduceStability(defender.Stability, float64(outcome.Damage), now) {
			systems.ApplyBreakState(defender, domain.BreakDurationMs, now)
			o.emit(domain.Event{
				Type:     domain.EventCombatText,
				EntityID: defender.ID,
				Text:     "BREAK",
				Color:    domain.TextColorBreak,
				AtMs:     now,
			})
			o.emit(domain.Event{Type: domain.EventCameraShake, EntityID: defender.ID, AtMs: now})
		}
	}

	if !defender.IsAlive() {
		o.queueRemoval(defender.ID)
		if scoring {
			o.grantKillRewards(attacker, defender, now)
		}
	}
}

// grantKillRewards начисляет игроку счет и опыт за убитого врага
func (o *Orchestrator) grantKillRewards(player, victim *domain.Entity, now domain.WallTime) {
	o.score += domain.ScorePerEnemyKill
	o.emit(domain.Event{
		Type:     domain.EventScoreUpdate,
		EntityID: player.ID,
		Value:    domain.ScorePerEnemyKill,
		AtMs:     now,
	})

	xp := domain.XpPerEnemyKill
	if victim.CharacterID == "boss" {
		xp = domain.XpPerBossKill
	}
	gained := systems.AwardXP(player, xp, 1.0)
	if gained > 0 {
		o.emit(domain.Event{
			Type:     domain.EventCombatText,
			EntityID: player.ID,
			Text:     fmt.Sprintf("+%d XP", gained),
			Color:    domain.TextColorXP,
			Value:    gained,
			AtMs:     now,
		})
	}
}

// resolveEnemyStrike - удар врага по игроку. Урон масштабируется
// агрессией фракции врага к игроку, пропуск гейтится i-frames.
func (o *Orchestrator) resolveEnemyStrike(enemy, player *domain.Entity, now domain.WallTime) {
	if !enemy.IsAlive() || !player.IsAlive() {
		return
	}

	// Сломленный враг не атакует
	if systems.IsBroken(enemy, now) {
		return
	}

	outcome := systems.ResolveAttack(enemy, player, domain.AttackMelee, o.rng)

	level := systems.FactionLevel(player.Reputation, enemy.Faction)
	damage := int(math.Floor(float64(outcome.Damage) * systems.AggressionMultiplier(level)))

	if !systems.RegisterHit(enemy, player, damage, domain.InvincibilityMs, now) {
		return
	}

	o.emit(domain.Event{
		Type:     domain.EventCombatText,
		EntityID: player.ID,
		Text:     fmt.Sprintf("%d", damage),
		Color:    domain.TextColorDamage,
		Value:    damage,
		AtMs:     now,
	})

	if player.Stability != nil {
		if systems.ReduceStability(player.Stability, float64(damage), now) {
			systems.ApplyBreakState(player, domain.BreakDurationMs, now)
			o.emit(domain.Event{Type: domain.EventCameraShake, EntityID: player.ID, AtMs: now})
		}
	}

	if !player.IsAlive() {
		o.triggerGameOver(player, now)
	}
}

// resolveObstacleHit - контакт игрока с препятствием: фиксированный
// урон, препятствие уничтожается
func (o *Orchestrator) resolveObstacleHit(player, obstacle *domain.Entity, now domain.WallTime) {
	if !player.IsAlive() || obstacle.Obstacle == nil {
		return
	}

	damage := obstacle.Obstacle.ContactDamage
	if damage <= 0 {
		damage = domain.ObstacleContactDamage
	}

	if systems.RegisterHit(obstacle, player, damage, domain.InvincibilityMs, now) {
		o.emit(domain.Event{
			Type:     domain.EventCombatText,
			EntityID: player.ID,
			Text:     fmt.Sprintf("%d", damage),
			Color:    domain.TextColorDamage,
			Value:    damage,
			AtMs:     now,
		})
		if !player.IsAlive() {
			o.triggerGameOver(player, now)
		}
	}

	// Препятствие одноразовое и исчезает даже если удар съели i-frames
	o.queueRemoval(obstacle.ID)
}

// resolvePickup - подбор коллектибла
func (o *Orchestrator) resolvePickup(player, item *domain.Entity, now domain.WallTime) {
	if item.Collectible == nil {
		return
	}

	c := item.Collectible
	switch c.Effect {
	case "score":
		o.score += c.Value
		o.emit(domain.Event{Type: domain.EventScoreUpdate, EntityID: player.ID, Value: c.Value, AtMs: now})

	case "heal":
		if player.Health != nil {
			before := player.Health.Current
			player.Health.Heal(c.Value, player.Stats.StructureOrDefault())
			healed := player.Health.Current - before
			if healed > 0 {
				o.emit(domain.Event{
					Type:     domain.EventCombatText,
					EntityID: player.ID,
					Text:     fmt.Sprintf("+%d", healed),
					Color:    domain.TextColorHeal,
					Value:    healed,
					AtMs:     now,
				})
			}
		}

	case "xp":
		gained := systems.AwardXP(player, c.Value, 1.0)
		if gained > 0 {
			o.emit(domain.Event{
				Type:     domain.EventCombatText,
				EntityID: player.ID,
				Text:     fmt.Sprintf("+%d XP", gained),
				Color:    domain.TextColorXP,
				Value:    gained,
				AtMs:     now,
			})
		}

	default:
		o.log.WithFields(logrus.Fields{
			"entity_id": item.ID,
			"effect":    c.Effect,
		}).Warn("Unknown collectible effect, pickup discarded")
	}

	o.emit(domain.Event{Type: domain.EventPickup, EntityID: item.ID, Text: item.Name, AtMs: now})

	// Удаление отложено до конца фазы, поэтому потребление фиксируется
	// сразу: повторная пара с этим же коллектиблом в том же пакете
	// срежется гейтом наверху
	item.Collectible = nil
	o.queueRemoval(item.ID)
}

// sweepTimers - ленивые истечения и регенерация стойкости
func (o *Orchestrator) sweepTimers(dt domain.FrameDelta, now domain.WallTime) {
	for _, e := range o.world.All() {
		if e.BreakState != nil {
			systems.UpdateBreakState(e, now)
		}
		if e.Stability != nil {
			systems.RegenerateStability(e, dt, now)
		}
	}
}

// sweepProgression - левелапы накопленного за кадр опыта
func (o *Orchestrator) sweepProgression(now domain.WallTime) {
	for _, r := range systems.SweepProgression(o.world.All()) {
		o.emit(domain.Event{
			Type:     domain.EventLevelUp,
			EntityID: r.Entity.ID,
			Value:    r.To,
			AtMs:     now,
		})
		o.emit(domain.Event{
			Type:     domain.EventCombatText,
			EntityID: r.Entity.ID,
			Text:     fmt.Sprintf("LEVEL %d", r.To),
			Color:    domain.TextColorXP,
			AtMs:     now,
		})
	}
}

// checkStageCleared сигналит один раз, когда врагов не осталось
func (o *Orchestrator) checkStageCleared(now domain.WallTime) {
	if o.stageCleared || o.gameOver {
		return
	}
	if len(o.world.ByKind(domain.EntityKindEnemy)) == 0 {
		o.stageCleared = true
		o.emit(domain.Event{Type: domain.EventStageCleared, Value: o.score, AtMs: now})
	}
}

func (o *Orchestrator) triggerGameOver(player *domain.Entity, now domain.WallTime) {
	if o.gameOver {
		return
	}
	o.gameOver = true
	o.emit(domain.Event{Type: domain.EventGameOver, EntityID: player.ID, Value: o.score, AtMs: now})
	o.log.WithFields(logrus.Fields{
		"player_id": player.ID,
		"score":     o.score,
	}).Info("Run ended, player defeated")
}

func (o *Orchestrator) queueRemoval(id domain.EntityID) {
	o.removeQueue = append(o.removeQueue, id)
}

func (o *Orchestrator) flushRemovals() {
	for _, id := range o.removeQueue {
		o.world.Remove(id)
	}
	o.removeQueue = o.removeQueue[:0]
}

func (o *Orchestrator) emit(e domain.Event) {
	if o.sink != nil {
		o.sink.Emit(e)
	}
}
