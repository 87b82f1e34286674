package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"rival-server/internal/domain"
)

// Хранилище профилей на BoltDB. Профиль - это то, что переживает
// рестарт сервера: прогрессия, статы, репутация и id арены для
// возобновления. Сам мир стейджа не сохраняется - он детерминированно
// пересоздается фабрикой.

const profileBucket = "profiles"

// ErrNotFound возвращается, когда профиля нет
var ErrNotFound = errors.New("profile not found")

// Profile - сохраняемый срез персонажа
type Profile struct {
	CharacterID string                   `json:"characterId"`
	StageID     string                   `json:"stageId"`
	Score       int                      `json:"score"`
	Level       domain.LevelComponent    `json:"level"`
	Stats       domain.StatsComponent    `json:"stats"`
	Reputation  map[domain.FactionID]int `json:"reputation"`
	UpdatedAtMs domain.WallTime          `json:"updatedAtMs"`
}

// Store - хранилище профилей
type Store struct {
	db *bbolt.DB
}

// Open открывает базу по пути. Таймаут защищает от зависания
// на файле, залоченном другим процессом.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close закрывает базу
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put сохраняет профиль
func (s *Store) Put(profile Profile) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(profile.CharacterID) == "" {
		return fmt.Errorf("character id is required")
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return fmt.Errorf("profile bucket is missing")
		}
		return bucket.Put([]byte(profile.CharacterID), payload)
	})
}

// Get читает профиль по id персонажа
func (s *Store) Get(characterID string) (Profile, error) {
	if s == nil || s.db == nil {
		return Profile{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(characterID) == "" {
		return Profile{}, fmt.Errorf("character id is required")
	}

	var profile Profile
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return fmt.Errorf("profile bucket is missing")
		}
		payload := bucket.Get([]byte(characterID))
		if payload == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(payload, &profile); err != nil {
			return fmt.Errorf("unmarshal profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return Profile{}, err
	}

	return profile, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(profileBucket))
		if err != nil {
			return fmt.Errorf("create profile bucket: %w", err)
		}
		return nil
	})
}
