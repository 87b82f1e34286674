package systems

import (
	"math"

	"rival-server/internal/domain"
	"rival-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Движок прогрессии: кривая опыта, левелапы, выдача очков характеристик.
// Философия обработки ошибок - тихое самовосстановление: битое состояние
// чинится и логируется, но никогда не валит процесс.

// XpRequired - кривая опыта: floor(100 * level^1.5)
func XpRequired(level int) int {
	return int(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// AwardXP начисляет опыт с множителем бонуса.
// Возвращает фактически начисленное количество.
// Сам левелап здесь НЕ происходит - его делает покадровый SweepProgression.
func AwardXP(e *domain.Entity, amount int, bonusMultiplier float64) int {
	if e.Level == nil || amount <= 0 {
		return 0
	}
	if bonusMultiplier <= 0 {
		bonusMultiplier = 1.0
	}

	gained := int(math.Floor(float64(amount) * bonusMultiplier))
	e.Level.XP += gained
	return gained
}

// LevelUpResult - итог одного прохода прогрессии по сущности
type LevelUpResult struct {
	Entity       *domain.Entity
	From         int
	To           int
	PointsGained int
}

// SweepProgression - покадровый проход по всем сущностям с {level, stats}.
//
// Порядок работы на каждой сущности:
//  1. Самолечение: NextLevelXP <= 0 (порча сейва/контента) сбрасывается
//     к XpRequired(current) с warn-логом, без паники.
//  2. Пока хватает опыта и не достигнут потолок уровня: переносим остаток
//     опыта (мульти-левелап за один тик поддерживается), растим уровень,
//     выдаем очки, полностью восстанавливаем здоровье до Structure.
//  3. Цикл огорожен предохранителем LevelLoopGuard: упереться в него -
//     это warn, а не зависший кадр.
//  4. На потолке (MaxLevel) опыт зажимается в NextLevelXP-1, дальнейшие
//     начисления поглощаются без левелапов.
func SweepProgression(entities []*domain.Entity) []LevelUpResult {
	var results []LevelUpResult
	log := logger.System("progression")

	for _, e := range entities {
		lvl := e.Level
		if lvl == nil || e.Stats == nil {
			continue
		}

		// Самолечение инвариантов
		if lvl.Current < 1 {
			log.WithFields(logrus.Fields{
				"entity_id": e.ID,
				"level":     lvl.Current,
			}).Warn("Corrupt level value, resetting to 1")
			lvl.Current = 1
		}
		if lvl.NextLevelXP <= 0 {
			lvl.NextLevelXP = XpRequired(lvl.Current)
			log.WithFields(logrus.Fields{
				"entity_id":     e.ID,
				"next_level_xp": lvl.NextLevelXP,
			}).Warn("Corrupt nextLevelXp, reset to curve value")
		}

		from := lvl.Current
		points := 0
		iterations := 0

		for lvl.XP >= lvl.NextLevelXP && lvl.Current < domain.MaxLevel {
			iterations++
			if iterations > domain.LevelLoopGuard {
				log.WithField("entity_id", e.ID).Warn("Level-up loop guard tripped, aborting sweep for entity")
				break
			}

			// Остаток опыта переносится на следующий уровень
			lvl.XP -= lvl.NextLevelXP
			lvl.Current++
			lvl.NextLevelXP = XpRequired(lvl.Current)
			lvl.StatPoints += domain.StatPointsPerXpUp
			points += domain.StatPointsPerXpUp

			// Левелап полностью лечит
			if e.Health != nil {
				e.Health.Current = e.Stats.Structure
			}
		}

		// Поглощение опыта на потолке
		if lvl.Current >= domain.MaxLevel && lvl.XP >= lvl.NextLevelXP {
			lvl.XP = lvl.NextLevelXP - 1
		}

		if lvl.Current != from {
			results = append(results, LevelUpResult{
				Entity:       e,
				From:         from,
				To:           lvl.Current,
				PointsGained: points,
			})
		}
	}

	return results
}
