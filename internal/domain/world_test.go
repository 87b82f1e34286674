package domain

import "testing"

func makeEnemy(w *World, name string) *Entity {
	e := &Entity{
		Kind:      EntityKindEnemy,
		Name:      name,
		Stats:     &StatsComponent{Structure: 20, Ignition: 10, Logic: 5, Flow: 5},
		Health:    &HealthComponent{Current: 20},
		Stability: &StabilityComponent{Current: 100, Max: 100, RegenRate: 10},
	}
	w.Add(e)
	return e
}

func TestWorldQueryByComponents(t *testing.T) {
	w := NewWorld("stage_01", 1)

	makeEnemy(w, "Punk A")
	makeEnemy(w, "Punk B")

	// Препятствие без статов и здоровья
	w.Add(&Entity{
		Kind:     EntityKindObstacle,
		Name:     "Barrel",
		Obstacle: &ObstacleComponent{ContactDamage: 5},
	})

	combatants := w.Query(CompStats, CompHealth, CompStability)
	if len(combatants) != 2 {
		t.Fatalf("expected 2 combatants, got %d", len(combatants))
	}

	obstacles := w.Query(CompObstacle)
	if len(obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obstacles))
	}
}

func TestWorldRemoveKeepsOrder(t *testing.T) {
	w := NewWorld("stage_01", 1)

	a := makeEnemy(w, "A")
	b := makeEnemy(w, "B")
	c := makeEnemy(w, "C")

	w.Remove(b.ID)

	all := w.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(all))
	}
	if all[0].ID != a.ID || all[1].ID != c.ID {
		t.Error("removal must preserve insertion order of survivors")
	}
	if w.Get(b.ID) != nil {
		t.Error("removed entity still resolvable by id")
	}

	// Повторное удаление - no-op
	w.Remove(b.ID)
	if w.Count() != 2 {
		t.Error("double remove changed entity count")
	}
}

func TestPackedEntityID(t *testing.T) {
	id := PackEntityID(EntityKindEnemy, 3, 42)

	if id.Kind() != EntityKindEnemy {
		t.Errorf("kind mismatch: %v", id.Kind())
	}
	if id.Stage() != 3 {
		t.Errorf("stage mismatch: %d", id.Stage())
	}
	if id.Index() != 42 {
		t.Errorf("index mismatch: %d", id.Index())
	}
}

func TestParseAction(t *testing.T) {
	if ParseAction("contacts") != ActionContacts {
		t.Error("parse should be case-insensitive")
	}
	if ParseAction("SELF_DESTRUCT") != ActionUnknown {
		t.Error("unknown action must map to ActionUnknown")
	}
}
