package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolate(t *testing.T) {
	t.Run("Should replace known placeholders", func(t *testing.T) {
		got := Interpolate("${label} - ${section}", Vars{"label": "英语单词默写", "section": "M1_M2"})
		assert.Equal(t, "英语单词默写 - M1_M2", got)
	})

	t.Run("Should tolerate whitespace inside braces", func(t *testing.T) {
		assert.Equal(t, "x=1", Interpolate("x=${ v }", Vars{"v": "1"}))
	})

	t.Run("Should keep unknown placeholders verbatim", func(t *testing.T) {
		assert.Equal(t, "a ${missing}", Interpolate("a ${missing}", Vars{"other": "b"}))
	})

	t.Run("Should return text unchanged without vars", func(t *testing.T) {
		assert.Equal(t, "${label}", Interpolate("${label}", nil))
	})
}

func TestPlaceholders(t *testing.T) {
	t.Run("Should list names once in order of appearance", func(t *testing.T) {
		assert.Equal(t, []string{"label", "section"}, Placeholders("${label}${section}${label}"))
	})

	t.Run("Should report names outside the allowed set", func(t *testing.T) {
		assert.Equal(t, []string{"date"}, Unknown("${label} ${date}", "label", "section"))
		assert.Empty(t, Unknown("${label} - ${section}", "label", "section"))
	})
}
