package domain

import (
	"fmt"
	"strconv"
)

// EntityID - упакованный идентификатор (Kind + Stage + Index).
// Стабильный id для index-based арены: сущности адресуются числом,
// сырые указатели наружу не утекают.
type EntityID uint64

// Конфигурация битов
const (
	bitsIndex = 40
	bitsStage = 16
	bitsKind  = 8

	// Сдвиги
	shiftStage = bitsIndex
	shiftKind  = bitsIndex + bitsStage

	// Маски (для извлечения значений)
	maskIndex = (1 << bitsIndex) - 1 // 0x000000FFFFFFFFFF
	maskStage = (1 << bitsStage) - 1 // 0xFFFF
	maskKind  = (1 << bitsKind) - 1  // 0xFF
)

// --- КОНСТРУКТОР ---

// PackEntityID создает ID из компонентов
func PackEntityID(kind EntityKind, stage int16, index uint64) EntityID {
	id := index & maskIndex
	id |= (uint64(stage) & maskStage) << shiftStage
	id |= (uint64(kind) & maskKind) << shiftKind
	return EntityID(id)
}

// --- МЕТОДЫ ДОСТУПА ---

func (id EntityID) Kind() EntityKind {
	return EntityKind((id >> shiftKind) & maskKind)
}

func (id EntityID) Stage() int16 {
	return int16((id >> shiftStage) & maskStage)
}

func (id EntityID) Index() uint64 {
	return uint64(id & maskIndex)
}

// --- СЕРИАЛИЗАЦИЯ (Для фронтенда) ---

// MarshalJSON сериализует ID в строку, так как JS теряет точность для больших int64
func (id EntityID) MarshalJSON() ([]byte, error) {
	s := strconv.FormatUint(uint64(id), 10)
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON парсит строку или число из JSON
func (id *EntityID) UnmarshalJSON(data []byte) error {
	// Удаляем кавычки, если есть
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = EntityID(val)
	return nil
}

// String для логов: выводим красиво [Kind:Stage:Idx]
func (id EntityID) String() string {
	return fmt.Sprintf("[%s:%d:%d]", id.Kind(), id.Stage(), id.Index())
}

// Token - проводной вид ID: десятичная строка, которую клиент возвращает
// в контактах и таргетах. Симметричен ParseEntityID.
func (id EntityID) Token() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseEntityID парсит строковое представление из токена клиента
func ParseEntityID(s string) (EntityID, error) {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entity id %q: %w", s, err)
	}
	return EntityID(val), nil
}
