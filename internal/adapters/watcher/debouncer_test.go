package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/watcher"
)

// batches records every callback invocation.
type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) add(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, paths)
}

func (b *batches) snapshot() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func TestDebouncer_Add_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := &batches{}
		d := watcher.NewDebouncer(100*time.Millisecond, b.add)

		d.Add("/project/pack.yaml")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/project/pack.yaml"}}, b.snapshot())
	})
}

func TestDebouncer_Add_Coalesces(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := &batches{}
		d := watcher.NewDebouncer(100*time.Millisecond, b.add)

		// Editors often write a file several times in a row.
		d.Add("/project/package.json")
		d.Add("/project/pack.yaml")
		d.Add("/project/package.json")
		d.Add("/project/.env")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/project/.env", "/project/pack.yaml", "/project/package.json"}}, b.snapshot())
	})
}

func TestDebouncer_Add_ResetsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := &batches{}
		d := watcher.NewDebouncer(100*time.Millisecond, b.add)

		d.Add("/project/tsconfig.json")
		time.Sleep(60 * time.Millisecond)
		d.Add("/project/pack.yaml")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		// 120ms after the first event, but only 60ms after the last.
		assert.Empty(t, b.snapshot())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/project/pack.yaml", "/project/tsconfig.json"}}, b.snapshot())
	})
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := &batches{}
		d := watcher.NewDebouncer(50*time.Millisecond, b.add)

		d.Add("/project/pack.yaml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/project/pack.yaml")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/project/pack.yaml"}, {"/project/pack.yaml"}}, b.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)
		require.NotPanics(t, func() {
			d.Add("/project/pack.yaml")
			time.Sleep(50 * time.Millisecond)
			synctest.Wait()
		})
	})
}

func TestDebouncer_Stop_DiscardsPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := &batches{}
		d := watcher.NewDebouncer(100*time.Millisecond, b.add)

		d.Add("/project/pack.yaml")
		d.Stop()
		d.Add("/project/package.json")

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, b.snapshot())
	})
}
