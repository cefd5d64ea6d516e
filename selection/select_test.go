package selection

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/dictsheet/vocab"
)

// fixedSource 总是返回 0，使部分 Fisher–Yates 退化为取前 k 个。
type fixedSource struct{}

func (fixedSource) IntN(int) int { return 0 }

// lastSource 总是选中剩余区间的最后一个元素。
type lastSource struct{}

func (lastSource) IntN(n int) int { return n - 1 }

func rec(unit string, typ vocab.Type, term string) vocab.Record {
	return vocab.Record{Gloss: "中" + term, Term: term, Unit: unit, Grade: "三上", Type: typ}
}

func testIndex(t *testing.T) *vocab.Index {
	t.Helper()
	ix := vocab.NewIndex()
	require.NoError(t, ix.Load([]vocab.Record{
		rec("M1", vocab.TypeWord, "a"),
		rec("M1", vocab.TypePhrase, "b"),
		rec("M1", vocab.TypeWord, "c"),
		rec("M2", vocab.TypeSentence, "d"),
		rec("M2", vocab.TypeWord, "e"),
		rec("M2", vocab.TypeWord, "e"),
	}))
	return ix
}

func terms(records []vocab.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Term
	}
	return out
}

func TestSelect(t *testing.T) {
	ix := testIndex(t)

	t.Run("Should concatenate units in caller order without a count", func(t *testing.T) {
		got := Select(ix, Request{Units: []string{"M2", "M1"}}, fixedSource{})
		assert.Equal(t, []string{"d", "e", "e", "a", "b", "c"}, terms(got))
	})

	t.Run("Should apply the type filter before concatenating", func(t *testing.T) {
		got := Select(ix, Request{Units: []string{"M1", "M2"}, Types: []vocab.Type{vocab.TypeWord}}, nil)
		assert.Equal(t, []string{"a", "c", "e", "e"}, terms(got))
	})

	t.Run("Should sample exactly k records from the candidate set", func(t *testing.T) {
		req := Request{Units: []string{"M1", "M2"}, Count: WithCount(4)}
		candidates := Candidates(ix, req)
		got := Select(ix, req, rand.New(rand.NewPCG(7, 11)))

		require.Len(t, got, 4)
		pool := map[string]int{}
		for _, r := range candidates {
			pool[r.Term]++
		}
		for _, r := range got {
			pool[r.Term]--
			assert.GreaterOrEqual(t, pool[r.Term], 0, "term %s drawn more often than present", r.Term)
		}
	})

	t.Run("Should return the draw order from an injected source", func(t *testing.T) {
		req := Request{Units: []string{"M1", "M2"}, Count: WithCount(2)}
		assert.Equal(t, []string{"a", "b"}, terms(Select(ix, req, fixedSource{})))
		// 每一步都把当前末尾元素换到前部：[a b c d e e] → [e a b ...]
		assert.Equal(t, []string{"e", "a"}, terms(Select(ix, req, lastSource{})))

		req.Count = WithCount(3)
		assert.Equal(t, []string{"e", "a", "b"}, terms(Select(ix, req, lastSource{})))
	})

	t.Run("Should return the population unchanged when count equals its size", func(t *testing.T) {
		req := Request{Units: []string{"M1"}, Types: []vocab.Type{vocab.TypeWord, vocab.TypePhrase}, Count: WithCount(3)}
		assert.Equal(t, []string{"a", "b", "c"}, terms(Select(ix, req, lastSource{})))
	})

	t.Run("Should return the population unchanged when count exceeds its size", func(t *testing.T) {
		req := Request{Units: []string{"M1"}, Count: WithCount(99)}
		assert.Equal(t, []string{"a", "b", "c"}, terms(Select(ix, req, lastSource{})))
	})

	t.Run("Should ignore unknown units", func(t *testing.T) {
		got := Select(ix, Request{Units: []string{"M404"}}, nil)
		assert.Empty(t, got)

		got = Select(ix, Request{Units: []string{"M404", "M1"}}, nil)
		assert.Equal(t, []string{"a", "b", "c"}, terms(got))
	})

	t.Run("Should collapse repeated unit keys", func(t *testing.T) {
		got := Select(ix, Request{Units: []string{"M1", "M1"}}, nil)
		assert.Len(t, got, 3)
	})

	t.Run("Should return an empty selection when the filter removes everything", func(t *testing.T) {
		got := Select(ix, Request{Units: []string{"M1"}, Types: []vocab.Type{vocab.TypeSentence}}, nil)
		assert.Empty(t, got)
	})

	t.Run("Should return nothing for a zero count", func(t *testing.T) {
		got := Select(ix, Request{Units: []string{"M1"}, Count: WithCount(0)}, fixedSource{})
		assert.Empty(t, got)
	})
}
