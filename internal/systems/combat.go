package systems

import (
	"math"

	"rival-server/internal/domain"
	"rival-server/pkg/utils"
)

// AttackOutcome - результат чистого расчета атаки.
// Урон никогда не отрицательный. Побочных эффектов нет:
// применяет урон вызывающая сторона (оркестратор или хит-гард).
type AttackOutcome struct {
	Damage     int  `json:"damage"`
	IsCritical bool `json:"isCritical"`
}

// ResolveAttack считает урон по формуле ядра.
//
// Ближний бой питается Ignition, дальний и техно - Logic.
// Отсутствующие статы подставляются как 10: сущность без компонента
// статов дерется "по среднему", а не роняет расчет.
//
// rng - внешний источник [0,1): бой воспроизводим в тестах и реплеях.
func ResolveAttack(attacker, defender *domain.Entity, attackType domain.AttackType, rng utils.UnitRand) AttackOutcome {
	driving := float64(attacker.Stats.Driving(attackType))

	attackPower := 10 + 0.5*driving
	statMultiplier := driving / 10
	defense := float64(defender.Stats.StructureOrDefault()) / 2

	rawDamage := attackPower*statMultiplier - defense/2
	damage := int(math.Floor(math.Max(0, rawDamage)))

	// Крит всегда завязан на Ignition, даже у дальних атак
	critChance := math.Min(float64(attacker.Stats.IgnitionOrDefault())*0.01, domain.MaxCritChance)

	isCritical := rng != nil && rng() < critChance
	if isCritical {
		damage = int(math.Floor(float64(damage) * domain.CritMultiplier))
	}

	return AttackOutcome{Damage: damage, IsCritical: isCritical}
}
