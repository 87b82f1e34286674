package domain

// Driving возвращает стат, питающий атаку данного типа.
// Отсутствующий компонент или неизвестный тип дает DefaultStatValue -
// правило "нет атрибута - нет особого случая", а не ошибка.
func (s *StatsComponent) Driving(attack AttackType) int {
	if s == nil {
		return DefaultStatValue
	}
	switch attack {
	case AttackMelee:
		return s.Ignition
	case AttackRanged, AttackTech:
		return s.Logic
	}
	return DefaultStatValue
}

// IgnitionOrDefault нужен формуле крита: она всегда читает Ignition атакующего
func (s *StatsComponent) IgnitionOrDefault() int {
	if s == nil {
		return DefaultStatValue
	}
	return s.Ignition
}

// StructureOrDefault - защита и потолок HP цели
func (s *StatsComponent) StructureOrDefault() int {
	if s == nil {
		return DefaultStatValue
	}
	return s.Structure
}

// TakeDamage наносит урон здоровью с полом в ноль.
// Возвращает true, если сущность погибла этим ударом.
func (h *HealthComponent) TakeDamage(amount int) bool {
	if h == nil || h.Current <= 0 {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

// Heal лечит с потолком cap (обычно Stats.Structure)
func (h *HealthComponent) Heal(amount, cap int) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > cap {
		h.Current = cap
	}
}
