package systems

import (
	"rival-server/internal/domain"
	"rival-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Гард регистрации ударов: после пропущенного удара цель получает
// окно неуязвимости (i-frames), внутри которого все повторные контакты
// игнорируются. Сколько бы контактов ни пришло за окно - пройдет максимум один.

// IsInvincible лениво проверяет окно неуязвимости
func IsInvincible(inv *domain.InvincibilityComponent, now domain.WallTime) bool {
	return inv != nil && inv.IsInvincible && now.Before(inv.EndsAtMs)
}

// RegisterHit пытается провести удар по цели.
//
// Если цель неуязвима - no-op и false: здоровье и состояние не трогаются.
// Иначе урон снимается с пола в ноль, цель получает свежее окно
// неуязвимости, и вызов возвращает true.
func RegisterHit(attacker, target *domain.Entity, damage int, invincibilityMs int64, now domain.WallTime) bool {
	if target.Health == nil {
		// Нет здоровья - правило не применяется
		return false
	}
	if IsInvincible(target.Invincibility, now) {
		return false
	}

	died := target.Health.TakeDamage(damage)

	// Свежее окно перекрывает любой осадок от старого компонента
	target.Invincibility = &domain.InvincibilityComponent{
		IsInvincible: true,
		EndsAtMs:     now.Add(invincibilityMs),
	}

	logger.System("hitguard").WithFields(logrus.Fields{
		"attacker_id": attacker.ID,
		"target_id":   target.ID,
		"damage":      damage,
		"hp_after":    target.Health.Current,
		"target_died": died,
	}).Debug("Hit registered")

	return true
}
