package systems

import (
	"testing"

	"rival-server/internal/domain"
)

func TestNewStabilityTable(t *testing.T) {
	cases := []struct {
		kind  string
		max   float64
		regen float64
	}{
		{"grunt", 100, 10},
		{"boss", 500, 20},
		{"player", 200, 15},
		{"glitched_kind", 100, 10}, // неизвестный вид падает в grunt
	}

	for _, c := range cases {
		s := NewStability(c.kind)
		if s.Max != c.max || s.RegenRate != c.regen {
			t.Errorf("%s: got max=%.0f regen=%.0f, want %.0f/%.0f", c.kind, s.Max, s.RegenRate, c.max, c.regen)
		}
		if s.Current != s.Max {
			t.Errorf("%s: stability must start full", c.kind)
		}
	}
}

func TestReduceStabilityBreakTransition(t *testing.T) {
	now := domain.WallTime(1_000_000)
	s := &domain.StabilityComponent{Current: 30, Max: 100, RegenRate: 10}

	if ReduceStability(s, 20, now) {
		t.Error("partial reduction must not trigger break")
	}
	if s.Current != 10 {
		t.Errorf("expected 10 stability, got %.1f", s.Current)
	}

	// Переход >0 -> 0: ровно здесь break
	if !ReduceStability(s, 50, now) {
		t.Error("depleting hit must trigger break")
	}
	if s.Current != 0 {
		t.Errorf("stability must clamp at 0, got %.1f", s.Current)
	}

	// Повторные удары по пустой шкале break не дают
	if ReduceStability(s, 10, now) {
		t.Error("hit on empty gauge must not re-trigger break")
	}
	if ReduceStability(s, 0, now) {
		t.Error("zero-damage hit must not trigger break")
	}
	if s.Current < 0 {
		t.Errorf("stability went negative: %.1f", s.Current)
	}
}

func TestRegenerateStabilityGracePeriod(t *testing.T) {
	now := domain.WallTime(10_000)
	e := &domain.Entity{
		Stability: &domain.StabilityComponent{Current: 50, Max: 100, RegenRate: 10, LastHitMs: now},
	}

	// Внутри грейс-паузы после удара регена нет
	RegenerateStability(e, 0.5, now.Add(500))
	if e.Stability.Current != 50 {
		t.Errorf("regen inside grace period: %.1f", e.Stability.Current)
	}

	// Спустя секунду после удара - идет (10/с * 0.5с = +5)
	RegenerateStability(e, 0.5, now.Add(1500))
	if e.Stability.Current != 55 {
		t.Errorf("expected 55 after regen tick, got %.1f", e.Stability.Current)
	}
}

func TestRegenerateStabilityClampAndClampDelta(t *testing.T) {
	now := domain.WallTime(10_000)
	e := &domain.Entity{
		Stability: &domain.StabilityComponent{Current: 99, Max: 100, RegenRate: 10},
	}

	// Дельта лаг-спайка (10с) клампится до 0.25с: +2.5, но потолок 100
	RegenerateStability(e, 10.0, now.Add(5000))
	if e.Stability.Current != 100 {
		t.Errorf("regen must clamp at max, got %.1f", e.Stability.Current)
	}
}

func TestRegenerateStabilitySuspendedWhileBroken(t *testing.T) {
	now := domain.WallTime(10_000)
	e := &domain.Entity{
		Stability: &domain.StabilityComponent{Current: 0, Max: 100, RegenRate: 10},
	}
	ApplyBreakState(e, domain.BreakDurationMs, now)

	RegenerateStability(e, 1.0, now.Add(2000))
	if e.Stability.Current != 0 {
		t.Errorf("regen must be suspended while broken, got %.1f", e.Stability.Current)
	}
}

func TestBreakStateWindow(t *testing.T) {
	now := domain.WallTime(50_000)
	e := &domain.Entity{
		Stability: &domain.StabilityComponent{Current: 0, Max: 200, RegenRate: 15},
	}

	ApplyBreakState(e, 5000, now)

	if !IsBroken(e, now) {
		t.Fatal("entity must be broken immediately")
	}
	if !IsBroken(e, now.Add(4999)) {
		t.Error("entity must stay broken for the full window")
	}
	if IsBroken(e, now.Add(5000)) {
		t.Error("entity must not be broken after the window")
	}
}

func TestUpdateBreakStateRestoresStability(t *testing.T) {
	now := domain.WallTime(50_000)
	e := &domain.Entity{
		Stability: &domain.StabilityComponent{Current: 0, Max: 200, RegenRate: 15},
	}
	ApplyBreakState(e, 5000, now)

	if !UpdateBreakState(e, now.Add(1000)) {
		t.Fatal("break must still be active mid-window")
	}

	// На истечении: компонент снят, стойкость полная
	if UpdateBreakState(e, now.Add(5001)) {
		t.Fatal("break must expire after the window")
	}
	if e.BreakState != nil {
		t.Error("expired break component must be cleared")
	}
	if e.Stability.Current != e.Stability.Max {
		t.Errorf("stability must fully recover on break end, got %.1f", e.Stability.Current)
	}
}
