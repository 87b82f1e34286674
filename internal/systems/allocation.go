package systems

import (
	"errors"
	"fmt"
	"math"

	"rival-server/internal/domain"
	"rival-server/pkg/logger"
)

// Валидатор трат очков характеристик. Правила простые:
// отрицательных полей не бывает, сумма не превышает бюджет,
// потраченные очки всегда равны списанным.

// Allocation - заявка на распределение очков по статам
type Allocation struct {
	Structure int `json:"structure"`
	Ignition  int `json:"ignition"`
	Logic     int `json:"logic"`
	Flow      int `json:"flow"`
}

// Total возвращает суммарную стоимость заявки
func (a Allocation) Total() int {
	return a.Structure + a.Ignition + a.Logic + a.Flow
}

var (
	ErrNegativeAllocation = errors.New("allocation contains negative amount")
	ErrNotEnoughPoints    = errors.New("allocation exceeds available stat points")
	ErrNoLevelComponent   = errors.New("entity has no level component")
	ErrNoStatsComponent   = errors.New("entity has no stats component")
)

// ValidateAllocation проверяет заявку против доступного бюджета
func ValidateAllocation(a Allocation, availablePoints int) error {
	if a.Structure < 0 || a.Ignition < 0 || a.Logic < 0 || a.Flow < 0 {
		return ErrNegativeAllocation
	}
	if a.Total() > availablePoints {
		return fmt.Errorf("%w: need %d, have %d", ErrNotEnoughPoints, a.Total(), availablePoints)
	}
	return nil
}

// ApplyAllocation перевалидирует заявку против очков сущности и проводит ее.
// Инварианты: статы от этой операции никогда не убывают;
// списанные очки в точности равны потраченным.
func ApplyAllocation(e *domain.Entity, a Allocation) error {
	if e.Level == nil {
		return ErrNoLevelComponent
	}
	if e.Stats == nil {
		return ErrNoStatsComponent
	}
	if err := ValidateAllocation(a, e.Level.StatPoints); err != nil {
		return err
	}

	e.Stats.Structure += a.Structure
	e.Stats.Ignition += a.Ignition
	e.Stats.Logic += a.Logic
	e.Stats.Flow += a.Flow
	e.Level.StatPoints -= a.Total()
	return nil
}

// Весовые векторы ролей. Остаток от округления уходит в главный стат роли.
var roleWeights = map[domain.RoleType]struct {
	structure, ignition, logic, flow float64
}{
	domain.RoleTank:      {0.55, 0.20, 0.15, 0.10},
	domain.RoleMeleeDPS:  {0.20, 0.55, 0.15, 0.10},
	domain.RoleRangedDPS: {0.15, 0.20, 0.55, 0.10},
	domain.RoleBalanced:  {0.25, 0.25, 0.25, 0.25},
}

// RecommendAllocation возвращает разбивку очков под роль.
// Каждая компонента округляется вниз, целочисленный остаток
// достается главному стату роли, поэтому сумма всегда равна points.
// Неизвестная роль - warn и сбалансированная разбивка.
func RecommendAllocation(role domain.RoleType, points int) Allocation {
	if points <= 0 {
		return Allocation{}
	}

	w, ok := roleWeights[role]
	if !ok {
		logger.System("allocation").WithField("role", role).Warn("Unknown role, recommending balanced split")
		role = domain.RoleBalanced
		w = roleWeights[role]
	}

	a := Allocation{
		Structure: int(math.Floor(float64(points) * w.structure)),
		Ignition:  int(math.Floor(float64(points) * w.ignition)),
		Logic:     int(math.Floor(float64(points) * w.logic)),
		Flow:      int(math.Floor(float64(points) * w.flow)),
	}

	remainder := points - a.Total()
	switch role {
	case domain.RoleTank:
		a.Structure += remainder
	case domain.RoleMeleeDPS:
		a.Ignition += remainder
	case domain.RoleRangedDPS:
		a.Logic += remainder
	default: // balanced
		a.Structure += remainder
	}

	return a
}

// ResetStats откатывает статы к базовым и возвращает разницу очками.
// Возвращает количество возвращенных очков.
func ResetStats(e *domain.Entity, base domain.StatsComponent) int {
	if e.Stats == nil || e.Level == nil {
		return 0
	}

	refund := (e.Stats.Structure - base.Structure) +
		(e.Stats.Ignition - base.Ignition) +
		(e.Stats.Logic - base.Logic) +
		(e.Stats.Flow - base.Flow)
	if refund < 0 {
		// Статы ниже базы - такого ApplyAllocation не производит,
		// но сейв мог быть порчен: чиним к базе без отрицательного возврата
		refund = 0
	}

	*e.Stats = base
	e.Level.StatPoints += refund
	return refund
}
