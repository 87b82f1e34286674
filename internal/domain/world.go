package domain

// World - единая мутабельная арена сущностей одного стейджа.
// Владеет сущностями внешний хозяин (движок/фабрика стейджа);
// боевое ядро только мутирует атрибуты и просит "удали вот эту".
//
// Дисциплина: менеджеры свободно меняют атрибуты выданных им сущностей,
// но НЕ удаляют сущности из коллекции, по которой идет итерация -
// удаления откладываются в буферы и сбрасываются после прохода.
type World struct {
	StageID string

	// Упорядоченная арена + реестр по ID.
	// Порядок вставки сохраняется, чтобы кадр был детерминированным.
	entities []*Entity
	registry map[EntityID]*Entity

	nextIndex uint64
	stage     int16
}

func NewWorld(stageID string, stage int16) *World {
	return &World{
		StageID:  stageID,
		entities: make([]*Entity, 0, 64),
		registry: make(map[EntityID]*Entity),
		stage:    stage,
	}
}

// NewEntityID выдает следующий стабильный ID арены
func (w *World) NewEntityID(kind EntityKind) EntityID {
	w.nextIndex++
	return PackEntityID(kind, w.stage, w.nextIndex)
}

// Add регистрирует сущность. Сущности без ID получают его здесь.
func (w *World) Add(e *Entity) {
	if e.ID == 0 {
		e.ID = w.NewEntityID(e.Kind)
	}
	if _, exists := w.registry[e.ID]; exists {
		return
	}
	w.entities = append(w.entities, e)
	w.registry[e.ID] = e
}

// Get ищет сущность по ID. nil - если уже удалена.
func (w *World) Get(id EntityID) *Entity {
	return w.registry[id]
}

// Remove удаляет сущность из арены. Порядок остальных сохраняется.
func (w *World) Remove(id EntityID) {
	if _, ok := w.registry[id]; !ok {
		return
	}
	delete(w.registry, id)
	for i, e := range w.entities {
		if e.ID == id {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
}

// Query возвращает сущности, несущие ВСЕ перечисленные атрибуты.
// Возвращаются ссылки: мутации видны немедленно.
func (w *World) Query(required ...ComponentKey) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if e.HasAll(required...) {
			out = append(out, e)
		}
	}
	return out
}

// ByKind возвращает сущности заданного класса (группы оркестратора)
func (w *World) ByKind(kind EntityKind) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// All возвращает арену целиком (для снапшотов и дебага)
func (w *World) All() []*Entity {
	return w.entities
}

func (w *World) Count() int {
	return len(w.entities)
}
