package random

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_IntnStaysInRange(t *testing.T) {
	for _, src := range []*Source{NewRandomSource().(*Source), NewSeededRandomSource(42).(*Source)} {
		for i := 0; i < 1000; i++ {
			v := src.Intn(36)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 36)
		}
	}
}

func TestSeededRandomSource_IsReproducible(t *testing.T) {
	a := NewSeededRandomSource(7)
	b := NewSeededRandomSource(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestSeededRandomSource_ConcurrentUse(t *testing.T) {
	src := NewSeededRandomSource(1)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				src.Intn(36)
			}
		}()
	}
	wg.Wait()
}
