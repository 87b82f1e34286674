package stage

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"rival-server/internal/domain"
)

// Шаблоны арен. Серверу не нужна геометрия - коллизии и позиции живут
// на клиенте. Арена с точки зрения правил - это состав: кто на ней
// стоит, с какими статами и за какую академию.

//go:embed stages.yaml
var stagesFS embed.FS

// DefaultStageID - арена нового персонажа
const DefaultStageID = "rooftops_01"

// SpawnSpec - одна группа одинаковых сущностей в шаблоне
type SpawnSpec struct {
	Kind      string `yaml:"kind"`      // enemy, ally, obstacle, collectible
	Character string `yaml:"character"` // ключ в базе способностей и профилей стойкости
	Name      string `yaml:"name"`
	Faction   string `yaml:"faction"`
	Count     int    `yaml:"count"`

	Stats *struct {
		Structure int `yaml:"structure"`
		Ignition  int `yaml:"ignition"`
		Logic     int `yaml:"logic"`
		Flow      int `yaml:"flow"`
	} `yaml:"stats"`

	// Для препятствий
	ContactDamage int `yaml:"contact_damage"`

	// Для коллектиблов
	Effect string `yaml:"effect"`
	Value  int    `yaml:"value"`

	// Подсказка клиентскому рендеру
	Model string `yaml:"model"`
	Tint  string `yaml:"tint"`
}

// StageTemplate - состав одной арены
type StageTemplate struct {
	Name   string      `yaml:"name"`
	Stage  int16       `yaml:"stage"` // порядковый номер для упаковки EntityID
	Next   string      `yaml:"next"`  // следующая арена после зачистки
	Spawns []SpawnSpec `yaml:"spawns"`
}

type libraryFile struct {
	Stages map[string]StageTemplate `yaml:"stages"`
}

// Library - загруженный набор шаблонов арен
type Library struct {
	stages map[string]StageTemplate
}

// LoadLibrary читает вшитый набор шаблонов
func LoadLibrary() (*Library, error) {
	data, err := stagesFS.ReadFile("stages.yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded stage templates: %w", err)
	}
	return parseLibrary(data)
}

func parseLibrary(data []byte) (*Library, error) {
	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse stage templates: %w", err)
	}
	if len(file.Stages) == 0 {
		return nil, fmt.Errorf("stage templates: no stages defined")
	}
	for id, tpl := range file.Stages {
		for _, s := range tpl.Spawns {
			if domain.ParseEntityKind(s.Kind) == domain.EntityKindUnknown {
				return nil, fmt.Errorf("stage %s: unknown spawn kind %q", id, s.Kind)
			}
		}
	}
	return &Library{stages: file.Stages}, nil
}

// Template возвращает шаблон арены по id
func (l *Library) Template(stageID string) (StageTemplate, bool) {
	tpl, ok := l.stages[stageID]
	return tpl, ok
}

// Has сообщает, существует ли арена
func (l *Library) Has(stageID string) bool {
	_, ok := l.stages[stageID]
	return ok
}
