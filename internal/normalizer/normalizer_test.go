package normalizer

import (
	"sync"
	"testing"

	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/stretchr/testify/assert"
)

func TestNormalizer_RedactsBeforeCanonicalizing(t *testing.T) {
	n := New(Options{
		ExclusionPaths: []string{"items[0]", "meta"},
		IgnoreOrder:    true,
	})
	assert.Equal(t, 2, n.PathCount())

	// items[0] refers to the original order, before sorting.
	got := n.Normalize(jsonvalue.MustParse(`{"meta":{"t":1},"items":[3,1,2]}`))
	assert.Equal(t, `{"items":[1,2]}`, jsonvalue.Compact(got))
}

func TestNormalizer_KeepsOrderWhenNotIgnored(t *testing.T) {
	n := New(Options{})
	got := n.Normalize(jsonvalue.MustParse(`{"b":[2,1],"a":1}`))
	assert.Equal(t, `{"b":[2,1],"a":1}`, jsonvalue.Compact(got))
}

func TestNormalizer_ConcurrentUse(t *testing.T) {
	n := New(Options{ExclusionPaths: []string{"x"}, IgnoreOrder: true})
	input := jsonvalue.MustParse(`{"x":1,"c":[3,2,1],"b":true}`)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = jsonvalue.Compact(n.Normalize(input))
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, `{"b":true,"c":[1,2,3]}`, r)
	}
}
