package systems

import (
	"testing"

	"rival-server/internal/domain"
)

var testStrike = domain.Ability{
	ID:          "kinetic_strike",
	Name:        "Kinetic Strike",
	Cost:        10,
	CooldownMs:  3000,
	EffectType:  domain.EffectDamage,
	EffectValue: 25,
}

func TestExecuteAbilityDamageAndCooldown(t *testing.T) {
	now := domain.WallTime(200_000)
	caster := &domain.Entity{
		Name:      "Rin",
		Cooldowns: &domain.CooldownsComponent{},
	}
	target := &domain.Entity{
		Name:   "Heavy",
		Health: &domain.HealthComponent{Current: 60},
	}

	outcome := ExecuteAbility(caster, target, testStrike, now)
	if !outcome.Applied || outcome.Damage != 25 {
		t.Fatalf("expected applied damage 25, got %+v", outcome)
	}
	if target.Health.Current != 35 {
		t.Errorf("target hp must be 35, got %d", target.Health.Current)
	}

	StartCooldown(caster.Cooldowns, testStrike, now)

	// Повтор внутри кулдауна отклоняется и цель не трогает
	again := ExecuteAbility(caster, target, testStrike, now.Add(1500))
	if again.Applied || again.Reason != ReasonOnCooldown {
		t.Fatalf("expected cooldown rejection, got %+v", again)
	}
	if target.Health.Current != 35 {
		t.Error("rejected ability must not touch the target")
	}

	if remaining := CooldownRemaining(caster.Cooldowns, testStrike.ID, now.Add(1500)); remaining != 1500 {
		t.Errorf("expected 1500ms remaining, got %d", remaining)
	}

	// Ровно на границе окна способность снова готова
	ready := ExecuteAbility(caster, target, testStrike, now.Add(testStrike.CooldownMs))
	if !ready.Applied {
		t.Error("ability must be ready exactly at cooldown end")
	}
}

func TestExecuteAbilityHealCappedAtStructure(t *testing.T) {
	now := domain.WallTime(200_000)
	patch := domain.Ability{
		ID:          "nano_patch",
		CooldownMs:  5000,
		EffectType:  domain.EffectHeal,
		EffectValue: 40,
	}
	caster := &domain.Entity{Cooldowns: &domain.CooldownsComponent{}}
	target := &domain.Entity{
		Stats:  &domain.StatsComponent{Structure: 30},
		Health: &domain.HealthComponent{Current: 20},
	}

	outcome := ExecuteAbility(caster, target, patch, now)
	if !outcome.Applied {
		t.Fatal("heal must apply")
	}
	if target.Health.Current != 30 {
		t.Errorf("heal must cap at structure 30, got %d", target.Health.Current)
	}
	if outcome.Healed != 10 {
		t.Errorf("reported heal must be the effective amount 10, got %d", outcome.Healed)
	}
}

func TestExecuteAbilityBuffIsRecordedNoOp(t *testing.T) {
	now := domain.WallTime(200_000)
	surge := domain.Ability{
		ID:          "overclock",
		CooldownMs:  8000,
		EffectType:  domain.EffectBuff,
		EffectValue: 5,
	}
	caster := &domain.Entity{Cooldowns: &domain.CooldownsComponent{}}
	target := &domain.Entity{Health: &domain.HealthComponent{Current: 50}}

	outcome := ExecuteAbility(caster, target, surge, now)
	if !outcome.Applied {
		t.Error("buff must count as applied")
	}
	if target.Health.Current != 50 || outcome.Damage != 0 || outcome.Healed != 0 {
		t.Error("buff must not alter health")
	}
}

func TestStartCooldownPrunesExpiredEntries(t *testing.T) {
	now := domain.WallTime(200_000)
	cd := &domain.CooldownsComponent{
		Entries: []domain.CooldownEntry{
			{AbilityID: "old_one", EndsAtMs: now - 1},
			{AbilityID: "still_live", EndsAtMs: now.Add(9000)},
			{AbilityID: testStrike.ID, EndsAtMs: now - 500},
		},
	}

	StartCooldown(cd, testStrike, now)

	if len(cd.Entries) != 2 {
		t.Fatalf("expected expired entries pruned, got %d entries", len(cd.Entries))
	}
	if !IsOnCooldown(cd, "still_live", now) {
		t.Error("live foreign cooldown must survive the prune")
	}
	if !IsOnCooldown(cd, testStrike.ID, now) {
		t.Error("fresh cooldown must be recorded")
	}
	if IsOnCooldown(cd, "old_one", now) {
		t.Error("expired cooldown must be gone")
	}
}

func TestCooldownNilComponent(t *testing.T) {
	now := domain.WallTime(200_000)
	if IsOnCooldown(nil, testStrike.ID, now) {
		t.Error("nil cooldowns component means always ready")
	}
	if CooldownRemaining(nil, testStrike.ID, now) != 0 {
		t.Error("nil cooldowns component reports zero remaining")
	}
	StartCooldown(nil, testStrike, now) // не должен паниковать
}
