package engine

import "rival-server/internal/domain"

// BufferedSink копит события кадра. Оркестратор пишет сюда,
// сервис после кадра забирает пачку и рассылает подписчикам.
// Живет только внутри цикла сервиса, поэтому без локов.
type BufferedSink struct {
	events []domain.Event
}

func NewBufferedSink() *BufferedSink {
	return &BufferedSink{}
}

// Emit реализует domain.EventSink
func (s *BufferedSink) Emit(e domain.Event) {
	s.events = append(s.events, e)
}

// Drain возвращает накопленные события и очищает буфер
func (s *BufferedSink) Drain() []domain.Event {
	out := s.events
	s.events = nil
	return out
}

// Len возвращает количество накопленных событий
func (s *BufferedSink) Len() int {
	return len(s.events)
}
