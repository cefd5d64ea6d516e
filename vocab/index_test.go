package vocab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{Gloss: "苹果", Term: "apple", Unit: "M1", Grade: "三上", Type: TypeWord},
		{Gloss: "香蕉", Term: "banana", Unit: "M1", Grade: "三上", Type: TypeWord},
		{Gloss: "早上好", Term: "good morning", Unit: "M1", Grade: "三上", Type: TypePhrase},
		{Gloss: "猫", Term: "cat", Unit: "M2", Grade: "三上", Type: TypeWord},
		{Gloss: "这是什么？", Term: "What's this?", Unit: "M2", Grade: "三上", Type: TypeSentence},
		{Gloss: "狗", Term: "dog", Unit: "M3", Grade: "三下", Type: TypeWord},
		{Gloss: "狗", Term: "dog", Unit: "M3", Grade: "三下", Type: TypeWord},
	}
}

func loadedIndex(t *testing.T) *Index {
	t.Helper()
	ix := NewIndex()
	require.NoError(t, ix.Load(sampleRecords()))
	return ix
}

func TestIndex_Load(t *testing.T) {
	t.Run("Should partition records by unit preserving load order", func(t *testing.T) {
		ix := loadedIndex(t)

		assert.Equal(t, 7, ix.Len())
		m1 := ix.Bucket("M1")
		require.Len(t, m1, 3)
		assert.Equal(t, "apple", m1[0].Term)
		assert.Equal(t, "banana", m1[1].Term)
		assert.Equal(t, "good morning", m1[2].Term)

		total := 0
		for _, u := range ix.Units() {
			for _, r := range ix.Bucket(u) {
				assert.Equal(t, u, r.Unit)
			}
			total += len(ix.Bucket(u))
		}
		assert.Equal(t, ix.Len(), total)
	})

	t.Run("Should keep duplicate records", func(t *testing.T) {
		ix := loadedIndex(t)
		assert.Len(t, ix.Bucket("M3"), 2)
	})

	t.Run("Should accept an empty dataset", func(t *testing.T) {
		ix := NewIndex()
		require.NoError(t, ix.Load(nil))
		assert.Equal(t, 0, ix.Len())
		assert.Empty(t, ix.Units())
	})

	t.Run("Should reject a record missing a required field and keep the prior index", func(t *testing.T) {
		ix := loadedIndex(t)
		bad := sampleRecords()
		bad[2].Term = "  "

		err := ix.Load(bad)

		require.Error(t, err)
		var dataErr *DataError
		require.True(t, errors.As(err, &dataErr))
		assert.Equal(t, 3, dataErr.Row)
		assert.Equal(t, "term", dataErr.Field)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.Equal(t, 7, ix.Len())
		assert.Len(t, ix.Bucket("M1"), 3)
	})

	t.Run("Should reject an unknown type", func(t *testing.T) {
		ix := NewIndex()
		err := ix.Load([]Record{{Gloss: "a", Term: "b", Unit: "M1", Grade: "g", Type: Type("词组")}})
		var dataErr *DataError
		require.ErrorAs(t, err, &dataErr)
		assert.Equal(t, "type", dataErr.Field)
		assert.Equal(t, 0, ix.Len())
	})

	t.Run("Should rebuild buckets on reload", func(t *testing.T) {
		ix := loadedIndex(t)
		require.NoError(t, ix.Load([]Record{{Gloss: "鱼", Term: "fish", Unit: "M9", Grade: "四上", Type: TypeWord}}))
		assert.Nil(t, ix.Bucket("M1"))
		assert.Equal(t, []string{"M9"}, ix.Units())
	})
}

func TestIndex_Queries(t *testing.T) {
	ix := loadedIndex(t)

	t.Run("Should return only units of the requested grade", func(t *testing.T) {
		assert.Equal(t, []string{"M1", "M2"}, ix.UnitsFor("三上"))
		assert.Equal(t, []string{"M3"}, ix.UnitsFor("三下"))
		assert.Empty(t, ix.UnitsFor("六下"))
	})

	t.Run("Should cover every unit across all grades", func(t *testing.T) {
		seen := map[string]bool{}
		for _, g := range ix.Grades() {
			for _, u := range ix.UnitsFor(g) {
				for _, r := range ix.Bucket(u) {
					if r.Grade == g {
						seen[u] = true
					}
				}
			}
		}
		for _, u := range ix.Units() {
			assert.True(t, seen[u], "unit %s missing from grade union", u)
		}
		assert.Equal(t, map[string][]string{"三上": {"M1", "M2"}, "三下": {"M3"}}, ix.GradeUnits())
	})

	t.Run("Should count with an optional OR type filter", func(t *testing.T) {
		assert.Equal(t, 3, ix.CountFor("M1"))
		assert.Equal(t, 2, ix.CountFor("M1", TypeWord))
		assert.Equal(t, 3, ix.CountFor("M1", TypeWord, TypePhrase))
		assert.Equal(t, 1, ix.CountFor("M2", TypeSentence))
		assert.Equal(t, 0, ix.CountFor("M404"))
	})
}

func TestParseTypes(t *testing.T) {
	t.Run("Should accept Chinese and English spellings", func(t *testing.T) {
		types, err := ParseTypes("单词, phrase,句子")
		require.NoError(t, err)
		assert.Equal(t, []Type{TypeWord, TypePhrase, TypeSentence}, types)
	})

	t.Run("Should treat an empty list as no filter", func(t *testing.T) {
		types, err := ParseTypes("  ")
		require.NoError(t, err)
		assert.Nil(t, types)
	})

	t.Run("Should fail on unknown types", func(t *testing.T) {
		_, err := ParseTypes("word,idiom")
		assert.Error(t, err)
	})
}
