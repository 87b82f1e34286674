package handlers

import (
	"encoding/json"

	"rival-server/internal/content"
	"rival-server/internal/domain"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World   *domain.World
	Actor   *domain.Entity // Тот, кто выполняет команду
	Catalog *content.Catalog
	Now     domain.WallTime // Настенное время кадра, в котором исполняется команда
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в sink напрямую, он возвращает события,
// а движок решает, куда их рассылать.
type Result struct {
	Events []domain.Event
}

// HandlerFunc - это контракт для любой команды (ALLOCATE, ABILITY, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
