package domain

import "time"

// В ядре сосуществуют ДВА источника времени, и их нельзя смешивать:
//
//  1. WallTime - настенные часы (unix-миллисекунды). Ими живут все "окна":
//     неуязвимость, кулдауны, break-состояние. Не зависят от FPS.
//  2. FrameDelta - время кадра в секундах. Им живет регенерация стойкости
//     (и любая физика). Зависит от FPS, поэтому клампится от лаг-спайков.
//
// Отдельные типы не дают случайно передать одно вместо другого.

// WallTime - момент настенных часов в миллисекундах Unix.
type WallTime int64

// NowMs возвращает текущее настенное время
func NowMs() WallTime {
	return WallTime(time.Now().UnixMilli())
}

// Add смещает момент на ms миллисекунд вперед
func (t WallTime) Add(ms int64) WallTime {
	return t + WallTime(ms)
}

// Before сообщает, наступил ли уже момент other
func (t WallTime) Before(other WallTime) bool {
	return t < other
}

// FrameDelta - длительность одного кадра в секундах.
type FrameDelta float64

// MaxFrameDelta - потолок дельты. Если рендер завис на секунды,
// мы не даем симуляции "наверстать" все разом (spiral of death).
const MaxFrameDelta FrameDelta = 0.25

// Clamped возвращает дельту, ограниченную сверху и снизу
func (d FrameDelta) Clamped() FrameDelta {
	if d < 0 {
		return 0
	}
	if d > MaxFrameDelta {
		return MaxFrameDelta
	}
	return d
}

// Seconds возвращает дельту как float64 для формул
func (d FrameDelta) Seconds() float64 {
	return float64(d)
}
