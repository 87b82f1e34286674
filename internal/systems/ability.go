package systems

import (
	"rival-server/internal/domain"
	"rival-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Менеджер способностей: доступность по кулдауну и применение эффекта.
// Кулдауны - ленивые отметки настенных часов в компоненте сущности,
// никакого планировщика нет.

// IsOnCooldown лениво проверяет, активен ли кулдаун способности
func IsOnCooldown(cd *domain.CooldownsComponent, abilityID string, now domain.WallTime) bool {
	if cd == nil {
		return false
	}
	for _, entry := range cd.Entries {
		if entry.AbilityID == abilityID && now.Before(entry.EndsAtMs) {
			return true
		}
	}
	return false
}

// CooldownRemaining возвращает остаток кулдауна в миллисекундах (0 - готова)
func CooldownRemaining(cd *domain.CooldownsComponent, abilityID string, now domain.WallTime) int64 {
	if cd == nil {
		return 0
	}
	for _, entry := range cd.Entries {
		if entry.AbilityID == abilityID && now.Before(entry.EndsAtMs) {
			return int64(entry.EndsAtMs - now)
		}
	}
	return 0
}

// StartCooldown записывает новый кулдаун, попутно вычищая истекшие записи.
// Чистка именно здесь: список не растет бесконечно, а фоновые таймеры не нужны.
func StartCooldown(cd *domain.CooldownsComponent, ability domain.Ability, now domain.WallTime) {
	if cd == nil {
		return
	}

	alive := cd.Entries[:0]
	for _, entry := range cd.Entries {
		if now.Before(entry.EndsAtMs) && entry.AbilityID != ability.ID {
			alive = append(alive, entry)
		}
	}
	cd.Entries = append(alive, domain.CooldownEntry{
		AbilityID: ability.ID,
		EndsAtMs:  now.Add(ability.CooldownMs),
	})
}

// AbilityOutcome - результат применения способности
type AbilityOutcome struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"` // "on cooldown" при отказе
	Damage  int    `json:"damage,omitempty"`
	Healed  int    `json:"healed,omitempty"`
}

// ReasonOnCooldown - единственная штатная причина отказа
const ReasonOnCooldown = "on cooldown"

// ExecuteAbility применяет способность кастера к цели.
//
// Отказ возможен только по кулдауну. Эффекты:
//   - damage: снимает здоровье цели с полом в ноль;
//   - heal: лечит цель с потолком в ее Structure;
//   - buff/debuff/utility: фиксируются как примененные - учет статус-эффектов
//     это точка расширения, а не скрытая логика.
//
// Списание ресурса (Cost) ОБЪЯВЛЕНО, но сознательно не реализовано:
// способности пока "всегда по карману". Это задокументированная точка
// расширения, не забытая проверка.
//
// Успешное применение НЕ записывает кулдаун - это делает вызывающая
// сторона через StartCooldown, когда решает, что применение состоялось.
func ExecuteAbility(caster, target *domain.Entity, ability domain.Ability, now domain.WallTime) AbilityOutcome {
	if IsOnCooldown(caster.Cooldowns, ability.ID, now) {
		return AbilityOutcome{Applied: false, Reason: ReasonOnCooldown}
	}

	outcome := AbilityOutcome{Applied: true}

	switch ability.EffectType {
	case domain.EffectDamage:
		if target.Health != nil {
			target.Health.TakeDamage(ability.EffectValue)
			outcome.Damage = ability.EffectValue
		}

	case domain.EffectHeal:
		if target.Health != nil {
			before := target.Health.Current
			target.Health.Heal(ability.EffectValue, target.Stats.StructureOrDefault())
			outcome.Healed = target.Health.Current - before
		}

	case domain.EffectBuff, domain.EffectDebuff, domain.EffectUtility:
		// Точка расширения: сам статус-эффект пока не ведется

	default:
		logger.System("ability").WithFields(logrus.Fields{
			"ability_id": ability.ID,
			"effect":     ability.EffectType,
		}).Warn("Unknown ability effect, applied as no-op")
	}

	return outcome
}
