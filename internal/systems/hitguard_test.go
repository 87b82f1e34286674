package systems

import (
	"testing"

	"rival-server/internal/domain"
)

func TestRegisterHitSingleHitPerWindow(t *testing.T) {
	now := domain.WallTime(100_000)
	attacker := &domain.Entity{Name: "Grunt"}
	target := &domain.Entity{
		Name:   "Rin",
		Health: &domain.HealthComponent{Current: 100},
	}

	// Шквал контактов в одном окне: проходит ровно первый
	if !RegisterHit(attacker, target, 10, domain.InvincibilityMs, now) {
		t.Fatal("first hit must land")
	}
	for _, offset := range []int64{0, 100, 250, 499} {
		if RegisterHit(attacker, target, 10, domain.InvincibilityMs, now.Add(offset)) {
			t.Fatalf("hit at +%dms must be absorbed by i-frames", offset)
		}
	}
	if target.Health.Current != 90 {
		t.Errorf("exactly one hit must apply, hp=%d", target.Health.Current)
	}

	// Окно закрылось - следующий удар проходит
	if !RegisterHit(attacker, target, 10, domain.InvincibilityMs, now.Add(domain.InvincibilityMs)) {
		t.Fatal("hit after window must land")
	}
	if target.Health.Current != 80 {
		t.Errorf("expected hp 80 after second hit, got %d", target.Health.Current)
	}
}

func TestRegisterHitFloorsAtZero(t *testing.T) {
	now := domain.WallTime(100_000)
	target := &domain.Entity{Health: &domain.HealthComponent{Current: 3}}

	RegisterHit(&domain.Entity{}, target, 50, domain.InvincibilityMs, now)
	if target.Health.Current != 0 {
		t.Errorf("health must floor at 0, got %d", target.Health.Current)
	}
}

func TestRegisterHitNoHealthComponent(t *testing.T) {
	now := domain.WallTime(100_000)
	target := &domain.Entity{Name: "Crate"}

	if RegisterHit(&domain.Entity{}, target, 50, domain.InvincibilityMs, now) {
		t.Error("hit on entity without health must be a no-op")
	}
	if target.Invincibility != nil {
		t.Error("no-op hit must not grant i-frames")
	}
}

func TestIsInvincibleStaleComponent(t *testing.T) {
	now := domain.WallTime(100_000)
	inv := &domain.InvincibilityComponent{IsInvincible: true, EndsAtMs: now}

	if IsInvincible(inv, now) {
		t.Error("window ending exactly now must be expired")
	}
	if IsInvincible(nil, now) {
		t.Error("nil component must never be invincible")
	}
}
