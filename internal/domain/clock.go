package domain

import "time"

// Clock выдаёт текущее время для назначения временных меток заказов.
// Внедряется явно, чтобы тесты могли подставить детерминированные часы.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock возвращает часы на системном времени в заданной таймзоне.
// nil интерпретируется как UTC.
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock всегда возвращает одно и то же время; используется в тестах.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
