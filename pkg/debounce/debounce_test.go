package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer(t *testing.T) {
	t.Run("RescheduleCancelsPending", func(t *testing.T) {
		d := New()
		defer d.Stop()

		var fired atomic.Int32
		var last atomic.Value

		for _, term := range []string{"w", "wi", "wir", "wireless"} {
			term := term
			d.Schedule("client-1", 30*time.Millisecond, func() {
				fired.Add(1)
				last.Store(term)
			})
			time.Sleep(5 * time.Millisecond)
		}

		require.Eventually(t, func() bool {
			return fired.Load() == 1
		}, time.Second, 10*time.Millisecond)

		assert.Equal(t, "wireless", last.Load())

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, int32(1), fired.Load())
	})

	t.Run("IndependentKeys", func(t *testing.T) {
		d := New()
		defer d.Stop()

		var fired atomic.Int32
		d.Schedule("a", 10*time.Millisecond, func() { fired.Add(1) })
		d.Schedule("b", 10*time.Millisecond, func() { fired.Add(1) })

		require.Eventually(t, func() bool {
			return fired.Load() == 2
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Cancel", func(t *testing.T) {
		d := New()
		defer d.Stop()

		var fired atomic.Int32
		d.Schedule("a", 20*time.Millisecond, func() { fired.Add(1) })
		d.Cancel("a")

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(0), fired.Load())
	})

	t.Run("StopDropsAll", func(t *testing.T) {
		d := New()

		var fired atomic.Int32
		d.Schedule("a", 20*time.Millisecond, func() { fired.Add(1) })
		d.Stop()

		d.Schedule("b", 10*time.Millisecond, func() { fired.Add(1) })

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(0), fired.Load())
	})
}
