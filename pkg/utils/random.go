package utils

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
	mathrand "math/rand"
)

// GenerateID создает простой уникальный ID (замена UUID для снижения зависимостей)
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// StringToSeed детерминированно превращает строку (ник игрока, id стейджа) в сид.
// Одинаковая строка всегда дает одинаковый сид - важно для реплеев и респауна контента.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	// fnv по контракту не возвращает ошибок
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// UnitRand - источник случайных чисел в диапазоне [0,1).
// Боевые расчеты (крит, разброс) принимают именно эту сигнатуру,
// чтобы тесты могли подставить фиксированное значение.
type UnitRand func() float64

// NewUnitRand создает детерминированный UnitRand от сида.
func NewUnitRand(seed int64) UnitRand {
	rng := mathrand.New(mathrand.NewSource(seed))
	return rng.Float64
}
