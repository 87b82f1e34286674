package systems

import (
	"rival-server/internal/domain"
	"rival-server/pkg/logger"
)

// Машина состояний стойкости: Stable -> Broken -> Stable.
// Обнуление шкалы уводит сущность в break на фиксированное время,
// истечение окна проверяется лениво по настенным часам - никаких таймеров.

// StabilityProfile - строка таблицы параметров стойкости
type StabilityProfile struct {
	Max       float64
	RegenRate float64 // единиц в секунду
}

var stabilityProfiles = map[string]StabilityProfile{
	"grunt":  {Max: 100, RegenRate: 10},
	"boss":   {Max: 500, RegenRate: 20},
	"player": {Max: 200, RegenRate: 15},
}

// NewStability создает компонент стойкости по виду бойца.
// Неизвестный вид - warn и параметры рядового (не падаем из-за контента).
func NewStability(kind string) *domain.StabilityComponent {
	profile, ok := stabilityProfiles[kind]
	if !ok {
		logger.System("stability").WithField("kind", kind).Warn("Unknown stability kind, falling back to grunt")
		profile = stabilityProfiles["grunt"]
	}
	return &domain.StabilityComponent{
		Current:   profile.Max,
		Max:       profile.Max,
		RegenRate: profile.RegenRate,
	}
}

// ReduceStability снимает урон со шкалы стойкости с полом в ноль.
// Возвращает true РОВНО на переходе >0 -> 0: повторные удары по уже
// пустой шкале (и нулевой урон) break не триггерят.
func ReduceStability(s *domain.StabilityComponent, damage float64, now domain.WallTime) bool {
	if s == nil {
		return false
	}
	if damage < 0 {
		damage = 0
	}

	wasPositive := s.Current > 0
	s.Current -= damage
	if s.Current < 0 {
		s.Current = 0
	}
	s.LastHitMs = now

	return wasPositive && s.Current == 0
}

// RegenerateStability восстанавливает шкалу со скоростью RegenRate.
// Правила:
//   - после удара действует грейс-пауза (StabilityRegenGraceMs);
//   - в break-состоянии реген полностью приостановлен;
//   - реген живет на дельте кадра, а не на настенных часах.
func RegenerateStability(e *domain.Entity, dt domain.FrameDelta, now domain.WallTime) {
	s := e.Stability
	if s == nil || s.Current >= s.Max {
		return
	}
	if IsBroken(e, now) {
		return
	}
	if now < s.LastHitMs.Add(domain.StabilityRegenGraceMs) {
		return
	}

	s.Current += s.RegenRate * dt.Clamped().Seconds()
	if s.Current > s.Max {
		s.Current = s.Max
	}
}

// ApplyBreakState переводит сущность в break на durationMs
func ApplyBreakState(e *domain.Entity, durationMs int64, now domain.WallTime) {
	e.BreakState = &domain.BreakStateComponent{
		IsBroken: true,
		EndsAtMs: now.Add(durationMs),
	}
}

// IsBroken лениво проверяет break-окно, ничего не меняя
func IsBroken(e *domain.Entity, now domain.WallTime) bool {
	b := e.BreakState
	return b != nil && b.IsBroken && now.Before(b.EndsAtMs)
}

// UpdateBreakState - ленивое обслуживание break-состояния.
// На истечении окна сущность встает: компонент снимается, стойкость
// восстанавливается до максимума (полное восстановление после break).
// Возвращает true, пока сущность сломлена.
func UpdateBreakState(e *domain.Entity, now domain.WallTime) bool {
	b := e.BreakState
	if b == nil || !b.IsBroken {
		return false
	}
	if now.Before(b.EndsAtMs) {
		return true
	}

	e.BreakState = nil
	if e.Stability != nil {
		e.Stability.Current = e.Stability.Max
	}
	return false
}
