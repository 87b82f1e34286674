package content

import (
	"os"
	"path/filepath"
	"testing"

	"rival-server/internal/domain"
)

func TestNewCatalogEmbeddedDefaults(t *testing.T) {
	c, err := NewCatalog()
	if err != nil {
		t.Fatalf("embedded catalog must load: %v", err)
	}

	strike, ok := c.Ability("kinetic_strike")
	if !ok {
		t.Fatal("kinetic_strike must exist in embedded catalog")
	}
	if strike.EffectType != domain.EffectDamage || strike.EffectValue != 25 || strike.CooldownMs != 3000 {
		t.Errorf("unexpected kinetic_strike record: %+v", strike)
	}

	if _, ok := c.Ability("missing_ability"); ok {
		t.Error("unknown ability id must not resolve")
	}
}

func TestCatalogLoadout(t *testing.T) {
	c, err := NewCatalog()
	if err != nil {
		t.Fatal(err)
	}

	rin := c.Loadout("rin")
	if len(rin) != 3 {
		t.Fatalf("rin loadout must have 3 abilities, got %d", len(rin))
	}
	if !c.Knows("rin", "kinetic_strike") {
		t.Error("rin must know kinetic_strike")
	}
	if c.Knows("rin", "plasma_bolt") {
		t.Error("rin must not know kaito's plasma_bolt")
	}

	if got := c.Loadout("nobody"); len(got) != 0 {
		t.Errorf("unknown character must get an empty loadout, got %d", len(got))
	}
}

func TestCatalogLoadFileOverridesAndSkipsBrokenRefs(t *testing.T) {
	c, err := NewCatalog()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "abilities.yaml")
	body := `
abilities:
  test_spark:
    name: "Test Spark"
    cooldown_ms: 1000
    effect: damage
    value: 5
loadouts:
  rin:
    - test_spark
    - ghost_ability
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.LoadFile(path); err != nil {
		t.Fatalf("override catalog must load: %v", err)
	}

	// База замещена целиком
	if _, ok := c.Ability("kinetic_strike"); ok {
		t.Error("override must replace the embedded catalog entirely")
	}
	rin := c.Loadout("rin")
	if len(rin) != 1 || rin[0].ID != "test_spark" {
		t.Errorf("broken loadout reference must be skipped, got %+v", rin)
	}
}

func TestCatalogLoadFileBrokenYamlKeepsPrevious(t *testing.T) {
	c, err := NewCatalog()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("abilities: [not: a: map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.LoadFile(path); err == nil {
		t.Fatal("broken YAML must be an error")
	}
	if _, ok := c.Ability("kinetic_strike"); !ok {
		t.Error("previous catalog must survive a failed reload")
	}
}
