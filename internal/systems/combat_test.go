package systems

import (
	"testing"

	"rival-server/internal/domain"
	"rival-server/pkg/utils"
)

func fixedRng(v float64) utils.UnitRand {
	return func() float64 { return v }
}

func TestResolveAttackReferenceValues(t *testing.T) {
	attacker := &domain.Entity{
		Name:  "Rin",
		Stats: &domain.StatsComponent{Structure: 10, Ignition: 20, Logic: 10, Flow: 10},
	}
	defender := &domain.Entity{
		Name:  "Heavy",
		Stats: &domain.StatsComponent{Structure: 50, Ignition: 5, Logic: 5, Flow: 5},
	}

	// rng=0.99 > critChance(0.2): обычный удар
	outcome := ResolveAttack(attacker, defender, domain.AttackMelee, fixedRng(0.99))
	if outcome.IsCritical {
		t.Fatal("expected non-critical hit")
	}
	if outcome.Damage != 27 {
		t.Errorf("expected melee damage 27, got %d", outcome.Damage)
	}

	// rng=0.0 < critChance: крит ровно вдвое больше
	crit := ResolveAttack(attacker, defender, domain.AttackMelee, fixedRng(0.0))
	if !crit.IsCritical {
		t.Fatal("expected critical hit")
	}
	if crit.Damage != 54 {
		t.Errorf("expected critical damage 54, got %d", crit.Damage)
	}
}

func TestResolveAttackNeverNegative(t *testing.T) {
	attackTypes := []domain.AttackType{domain.AttackMelee, domain.AttackRanged, domain.AttackTech}

	for _, atkStat := range []int{0, 1, 5, 10, 50, 200} {
		for _, defStat := range []int{0, 10, 100, 500, 10000} {
			attacker := &domain.Entity{Stats: &domain.StatsComponent{Ignition: atkStat, Logic: atkStat}}
			defender := &domain.Entity{Stats: &domain.StatsComponent{Structure: defStat}}

			for _, at := range attackTypes {
				outcome := ResolveAttack(attacker, defender, at, fixedRng(0.99))
				if outcome.Damage < 0 {
					t.Fatalf("negative damage %d (atk=%d def=%d type=%s)", outcome.Damage, atkStat, defStat, at)
				}
			}
		}
	}
}

func TestResolveAttackCritStrictlyGreater(t *testing.T) {
	attacker := &domain.Entity{Stats: &domain.StatsComponent{Ignition: 30, Logic: 30}}

	for _, defStat := range []int{0, 20, 60, 120, 5000} {
		defender := &domain.Entity{Stats: &domain.StatsComponent{Structure: defStat}}

		base := ResolveAttack(attacker, defender, domain.AttackRanged, fixedRng(0.99))
		crit := ResolveAttack(attacker, defender, domain.AttackRanged, fixedRng(0.0))

		if base.Damage > 0 && crit.Damage <= base.Damage {
			t.Errorf("crit %d must exceed base %d", crit.Damage, base.Damage)
		}
		if base.Damage == 0 && crit.Damage != 0 {
			t.Errorf("crit on zero base must stay zero, got %d", crit.Damage)
		}
	}
}

func TestResolveAttackMissingStatsDefault(t *testing.T) {
	// Сущности без компонента статов дерутся "по среднему" (стат = 10)
	attacker := &domain.Entity{Name: "Drone"}
	defender := &domain.Entity{Name: "Crate"}

	outcome := ResolveAttack(attacker, defender, domain.AttackTech, fixedRng(0.99))

	// ap=15, mult=1.0, def=5 -> 15 - 2.5 = 12.5 -> 12
	if outcome.Damage != 12 {
		t.Errorf("expected default-stat damage 12, got %d", outcome.Damage)
	}
}

func TestResolveAttackCritChanceCapped(t *testing.T) {
	// Ignition 90 дал бы 90% крита, потолок - 50%
	attacker := &domain.Entity{Stats: &domain.StatsComponent{Ignition: 90}}
	defender := &domain.Entity{Stats: &domain.StatsComponent{Structure: 10}}

	above := ResolveAttack(attacker, defender, domain.AttackMelee, fixedRng(0.5))
	if above.IsCritical {
		t.Error("rng 0.5 must not crit with capped 0.5 chance")
	}
	below := ResolveAttack(attacker, defender, domain.AttackMelee, fixedRng(0.49))
	if !below.IsCritical {
		t.Error("rng 0.49 must crit with capped 0.5 chance")
	}
}
