package engine

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config - настройки движка из окружения.
// Флаги командной строки (cmd/server) могут их перекрывать.
type Config struct {
	// Addr - адрес HTTP/WebSocket сервера
	Addr string `env:"ADDR" envDefault:":8080"`

	// StoragePath - файл BoltDB с профилями персонажей
	StoragePath string `env:"STORAGE_PATH" envDefault:"data/profiles.db"`

	// AbilitiesPath - YAML с базой способностей. Пусто - вшитая база.
	AbilitiesPath string `env:"ABILITIES_PATH"`

	// CombatSeed - сид боевого рандома. 0 - недетерминированный.
	CombatSeed int64 `env:"COMBAT_SEED"`

	// AutosaveSec - период автосохранения профилей, секунды
	AutosaveSec int `env:"AUTOSAVE_SEC" envDefault:"30"`
}

// LoadConfig читает конфигурацию из переменных окружения
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
