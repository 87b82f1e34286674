package server

import (
	"encoding/json"
	"net/http"

	"rival-server/internal/domain"
	"rival-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка.
// Чтение идет мимо цикла сервиса - для read-only дебага это приемлемо.
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/stage", h.handleStage)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/broken", h.handleBroken)
}

// /debug/stage - сводка текущей арены
func (h *DebugHandler) handleStage(w http.ResponseWriter, r *http.Request) {
	type StageSummary struct {
		StageID     string `json:"stage_id"`
		EntityCount int    `json:"entity_count"`
		Enemies     int    `json:"enemies"`
		Subscribers int    `json:"subscribers"`
	}

	world := h.Service.World
	writeJSON(w, StageSummary{
		StageID:     world.StageID,
		EntityCount: world.Count(),
		Enemies:     len(world.ByKind(domain.EntityKindEnemy)),
		Subscribers: h.Service.Hub.SubscriberCount(),
	})
}

// /debug/entities - дамп всех сущностей арены (включая скрытые компоненты)
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.World.All())
}

// /debug/broken - кто сейчас в break-состоянии
func (h *DebugHandler) handleBroken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.BrokenEntities(domain.NowMs()))
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (пустой список), возвращаем [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
