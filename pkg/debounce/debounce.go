// Package debounce реализует отложенный запуск задач с отменой предыдущих.
// На каждый ключ существует не более одного запланированного таймера:
// повторный Schedule отменяет ещё не сработавший вызов и переносит запуск.
package debounce

import (
	"sync"
	"time"
)

// Debouncer хранит по одному активному таймеру на ключ.
type Debouncer struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func New() *Debouncer {
	return &Debouncer{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule планирует запуск fn через delay, отменяя ранее запланированный
// запуск для того же ключа.
func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		// Удаляем только собственный таймер: ключ мог быть перепланирован.
		if d.timers[key] == timer {
			delete(d.timers, key)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			fn()
		}
	})

	d.timers[key] = timer
}

// Cancel отменяет запланированный запуск для ключа, если он есть.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}

// Stop отменяет все запланированные запуски. Новые Schedule игнорируются.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
