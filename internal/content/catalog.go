package content

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"rival-server/internal/domain"
	"rival-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Каталог способностей. Способности - это контент, а не код: база
// задается в YAML и выдает по id персонажа его набор записей Ability.
// Дефолтная база вшита в бинарник через go:embed, файл на диске
// (если указан) перекрывает ее и может перечитываться на лету.

//go:embed abilities.yaml
var defaultCatalogFS embed.FS

// DefaultCatalogFile - имя вшитой базы
const DefaultCatalogFile = "abilities.yaml"

// abilityRecord - сырая YAML-запись одной способности
type abilityRecord struct {
	Name   string `yaml:"name"`
	Cost   int    `yaml:"cost"`
	CdMs   int64  `yaml:"cooldown_ms"`
	Effect string `yaml:"effect"`
	Value  int    `yaml:"value"`
}

// catalogFile - формат файла базы целиком
type catalogFile struct {
	Abilities map[string]abilityRecord `yaml:"abilities"`
	Loadouts  map[string][]string      `yaml:"loadouts"` // characterID -> ability ids
}

// Catalog - потокобезопасная база способностей
type Catalog struct {
	mu        sync.RWMutex
	abilities map[string]domain.Ability
	loadouts  map[string][]string
	log       *logrus.Entry
}

// NewCatalog создает каталог из вшитой базы
func NewCatalog() (*Catalog, error) {
	c := &Catalog{log: logger.System("content")}

	data, err := defaultCatalogFS.ReadFile(DefaultCatalogFile)
	if err != nil {
		return nil, fmt.Errorf("embedded ability catalog: %w", err)
	}
	if err := c.loadBytes(data); err != nil {
		return nil, fmt.Errorf("embedded ability catalog: %w", err)
	}
	return c, nil
}

// LoadFile перечитывает базу из файла на диске, целиком замещая текущую.
// Битый файл - ошибка, старая база остается жить.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ability catalog: %w", err)
	}
	if err := c.loadBytes(data); err != nil {
		return fmt.Errorf("parse ability catalog %s: %w", path, err)
	}
	c.log.WithField("path", path).Info("Ability catalog reloaded")
	return nil
}

func (c *Catalog) loadBytes(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}

	abilities := make(map[string]domain.Ability, len(file.Abilities))
	for id, rec := range file.Abilities {
		effect := domain.ParseEffectKind(rec.Effect)
		if effect == domain.EffectUnknown {
			c.log.WithFields(logrus.Fields{
				"ability_id": id,
				"effect":     rec.Effect,
			}).Warn("Ability has unknown effect kind, kept as no-op")
		}
		abilities[id] = domain.Ability{
			ID:          id,
			Name:        rec.Name,
			Cost:        rec.Cost,
			CooldownMs:  rec.CdMs,
			EffectType:  effect,
			EffectValue: rec.Value,
		}
	}

	// Лодауты проверяются против базы: битая ссылка - warn, не отказ
	loadouts := make(map[string][]string, len(file.Loadouts))
	for characterID, ids := range file.Loadouts {
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := abilities[id]; !ok {
				c.log.WithFields(logrus.Fields{
					"character_id": characterID,
					"ability_id":   id,
				}).Warn("Loadout references unknown ability, skipped")
				continue
			}
			kept = append(kept, id)
		}
		loadouts[characterID] = kept
	}

	c.mu.Lock()
	c.abilities = abilities
	c.loadouts = loadouts
	c.mu.Unlock()
	return nil
}

// Ability возвращает запись по id
func (c *Catalog) Ability(id string) (domain.Ability, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.abilities[id]
	return a, ok
}

// Loadout возвращает набор способностей персонажа.
// Неизвестный персонаж получает пустой набор.
func (c *Catalog) Loadout(characterID string) []domain.Ability {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := c.loadouts[characterID]
	out := make([]domain.Ability, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.abilities[id])
	}
	return out
}

// Knows сообщает, входит ли способность в набор персонажа
func (c *Catalog) Knows(characterID, abilityID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.loadouts[characterID] {
		if id == abilityID {
			return true
		}
	}
	return false
}

// AbilityIDs возвращает отсортированный список всех id базы (для дебага)
func (c *Catalog) AbilityIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.abilities))
	for id := range c.abilities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
