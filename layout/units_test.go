package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	for _, pt := range []float64{0, 0.001, 1, 12, 14.4, 72, 1000} {
		assert.InDelta(t, pt, pt*PtToMm*MmToPt, 1e-9)
	}
}

func TestLengthConversions(t *testing.T) {
	assert.InDelta(t, 25.4, Length{Value: 1, Unit: UnitIN}.ToMM(), 1e-9)
	assert.InDelta(t, 25.4, Length{Value: 2.54, Unit: UnitCM}.ToMM(), 1e-9)
	assert.InDelta(t, 12*PtToMm, Length{Value: 12, Unit: UnitPT}.ToMM(), 1e-9)
	assert.InDelta(t, 10*MmToPt, Length{Value: 10, Unit: UnitMM}.ToPT(), 1e-9)
	assert.Equal(t, 7.0, Length{Value: 7}.ToMM())
}

func TestParseRawLengthStr(t *testing.T) {
	t.Run("Should keep the unit", func(t *testing.T) {
		l, err := ParseRawLengthStr(" 2CM ")
		require.NoError(t, err)
		assert.Equal(t, Length{Value: 2, Unit: UnitCM}, l)
	})

	t.Run("Should reject garbage and negatives", func(t *testing.T) {
		_, err := ParseRawLengthStr("abc")
		assert.Error(t, err)
		_, err = ParseRawLengthStr("-1mm")
		assert.Error(t, err)
		_, err = ParseRawLengthStr("")
		assert.Error(t, err)
	})
}

func TestParseMargin(t *testing.T) {
	cases := []struct {
		in   string
		want Margin
	}{
		{"2cm", Margin{20, 20, 20, 20}},
		{"10mm 15mm", Margin{10, 15, 10, 15}},
		{"10 15 20", Margin{10, 15, 20, 15}},
		{"1 2 3 4", Margin{1, 2, 3, 4}},
	}
	for _, tc := range cases {
		t.Run("Should parse "+tc.in, func(t *testing.T) {
			got, err := ParseMargin(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want.Top, got.Top, 1e-9)
			assert.InDelta(t, tc.want.Right, got.Right, 1e-9)
			assert.InDelta(t, tc.want.Bottom, got.Bottom, 1e-9)
			assert.InDelta(t, tc.want.Left, got.Left, 1e-9)
		})
	}

	t.Run("Should reject an empty or oversized list", func(t *testing.T) {
		_, err := ParseMargin("")
		assert.Error(t, err)
		_, err = ParseMargin("1 2 3 4 5")
		assert.Error(t, err)
	})
}

func TestResolvePageSize(t *testing.T) {
	w, h, err := ResolvePageSize(PageSpec{Size: "a4"})
	require.NoError(t, err)
	assert.Equal(t, []float64{210, 297}, []float64{w, h})

	w, h, err = ResolvePageSize(PageSpec{Size: "A5", Landscape: true})
	require.NoError(t, err)
	assert.Equal(t, []float64{210, 148}, []float64{w, h})

	_, _, err = ResolvePageSize(PageSpec{Size: "Letter"})
	assert.Error(t, err)
}
