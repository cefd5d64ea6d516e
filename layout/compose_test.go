package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/dictsheet/vocab"
)

func composeOpts() ComposeOptions {
	return ComposeOptions{Typesetter: &stubTypesetter{}, Fonts: testFonts, Meta: DocumentMeta{Creator: "dictsheet"}}
}

func headings(doc *Document) []string {
	var out []string
	for _, el := range doc.Elements {
		if el.Kind == ElementText && el.Text.KeepWithNext {
			out = append(out, el.Text.Content)
		}
	}
	return out
}

func countKind(doc *Document, kind ElementKind) int {
	n := 0
	for _, el := range doc.Elements {
		if el.Kind == kind {
			n++
		}
	}
	return n
}

func TestCompose(t *testing.T) {
	mixed := append(append(records(vocab.TypeSentence, 2), records(vocab.TypeWord, 5)...), records(vocab.TypePhrase, 3)...)

	t.Run("Should emit sections in word phrase sentence order on both pages", func(t *testing.T) {
		doc, err := Compose(mixed, "M1_M2", composeOpts())
		require.NoError(t, err)
		assert.Equal(t, []string{
			"一、单词", "二、短语", "三、句子",
			"一、单词", "二、短语", "三、句子",
		}, headings(doc))
		assert.Equal(t, 1, countKind(doc, ElementPageBreak))
		assert.Equal(t, 6, countKind(doc, ElementGrid))
	})

	t.Run("Should title both pages from the section title", func(t *testing.T) {
		doc, err := Compose(mixed, "M1_M2", composeOpts())
		require.NoError(t, err)
		assert.Equal(t, "英语单词默写 - M1_M2", doc.Elements[0].Text.Content)
		assert.Equal(t, "英语单词默写 - M1_M2", doc.Meta.Title)
		assert.Equal(t, "dictsheet", doc.Meta.Creator)

		var answerTitle string
		for i, el := range doc.Elements {
			if el.Kind == ElementPageBreak {
				answerTitle = doc.Elements[i+1].Text.Content
			}
		}
		assert.Equal(t, "英语单词默写答案 - M1_M2", answerTitle)
	})

	t.Run("Should number only the sections that are present", func(t *testing.T) {
		sel := append(records(vocab.TypeWord, 2), records(vocab.TypeSentence, 1)...)
		doc, err := Compose(sel, "M3", composeOpts())
		require.NoError(t, err)
		assert.Equal(t, []string{"一、单词", "二、句子", "一、单词", "二、句子"}, headings(doc))
	})

	t.Run("Should mirror practice cells with answer cells", func(t *testing.T) {
		doc, err := Compose(records(vocab.TypeWord, 3), "M1", composeOpts())
		require.NoError(t, err)
		var grids []*Grid
		for _, el := range doc.Elements {
			if el.Kind == ElementGrid {
				grids = append(grids, el.Grid)
			}
		}
		require.Len(t, grids, 2)
		assert.IsType(t, PracticeCell{}, grids[0].Rows[0][0])
		assert.IsType(t, AnswerCell{}, grids[1].Rows[0][0])
		assert.Equal(t, "t2", grids[1].Rows[0][2].(AnswerCell).Term())
	})

	t.Run("Should be structurally identical for identical inputs", func(t *testing.T) {
		a, err := Compose(mixed, "M1", composeOpts())
		require.NoError(t, err)
		b, err := Compose(mixed, "M1", composeOpts())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Should still produce titles for an empty selection", func(t *testing.T) {
		doc, err := Compose(nil, "M1", composeOpts())
		require.NoError(t, err)
		assert.Zero(t, countKind(doc, ElementGrid))
		assert.Equal(t, 1, countKind(doc, ElementPageBreak))
	})

	t.Run("Should honour custom labels", func(t *testing.T) {
		opts := composeOpts()
		opts.Labels = Labels{
			Document:      "Spelling",
			TitleTemplate: "${label}: ${section}",
			Sections:      map[vocab.Type]string{vocab.TypeWord: "Words"},
			Numerals:      []string{"1"},
		}
		doc, err := Compose(append(records(vocab.TypeWord, 1), records(vocab.TypePhrase, 1)...), "U1", opts)
		require.NoError(t, err)
		assert.Equal(t, "Spelling: U1", doc.Elements[0].Text.Content)
		assert.Equal(t, []string{"1、Words", "2、短语", "1、Words", "2、短语"}, headings(doc))
	})
}
