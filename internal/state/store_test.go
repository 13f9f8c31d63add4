package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreNotifiesOnChange(t *testing.T) {
	st := NewStore(Initial(DefaultBrush()))

	var seen []Snapshot
	st.Subscribe(func(s Snapshot) { seen = append(seen, s) })

	st.Update(func(s Snapshot) Snapshot { return s.WithBrush(s.Brush.WithSize(40)) })
	st.Update(func(s Snapshot) Snapshot { return s })

	assert.Len(t, seen, 1)
	assert.Equal(t, 40, st.Current().Brush.Size)
}

func TestStoreConcurrentUpdates(t *testing.T) {
	st := NewStore(Initial(DefaultBrush()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st.Update(func(s Snapshot) Snapshot { return s.WithBrush(s.Brush.WithBlur(n % 25)) })
		}(i)
	}
	wg.Wait()

	b := st.Current().Brush
	assert.GreaterOrEqual(t, b.Blur, MinBlur)
	assert.LessOrEqual(t, b.Blur, MaxBlur)
}

func TestLoadIDsAreUnique(t *testing.T) {
	a, b := NewLoadID(), NewLoadID()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, SessionID())
	assert.Less(t, NextLoadSeq(), NextLoadSeq())
}
