package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIsMonotonic(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, None, g.Last())

	prev := None
	for i := 0; i < 100; i++ {
		id := g.Next()
		assert.Greater(t, id, prev)
		prev = id
	}
	assert.Equal(t, prev, g.Last())
}

func TestGeneratorsAreIndependent(t *testing.T) {
	a, b := NewGenerator(), NewGenerator()
	assert.Equal(t, ID(1), a.Next())
	assert.Equal(t, ID(1), b.Next())
}

func TestNextIsUniqueAcrossGoroutines(t *testing.T) {
	g := NewGenerator()
	const workers, perWorker = 8, 500

	var mu sync.Mutex
	seen := make(map[ID]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]ID, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, g.Next())
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, ID(workers*perWorker), g.Last())
}
