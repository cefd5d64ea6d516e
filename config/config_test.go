package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/dictsheet/fonts"
	"github.com/ByLCY/dictsheet/layout"
	"github.com/ByLCY/dictsheet/vocab"
)

func writeConfig(t *testing.T, fs afero.Fs, content string) string {
	t.Helper()
	path := "/etc/dictsheet.yaml"
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Run("Should return defaults without a file", func(t *testing.T) {
		cfg, err := NewLoader(afero.NewMemMapFs()).Load("")
		require.NoError(t, err)
		assert.Equal(t, "words.csv", cfg.Data.CSV)
		assert.Equal(t, "output", cfg.Output.Dir)
		assert.Equal(t, "默写纸", cfg.Output.Prefix)
		assert.Equal(t, 1, cfg.Generate.Copies)
		assert.Nil(t, cfg.Generate.CountLimit())
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, []string{"一", "二", "三"}, cfg.Labels.Numerals)
		assert.Equal(t, fonts.DefaultCandidates, cfg.Fonts.Candidates)
	})

	t.Run("Should override only the keys present in the file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeConfig(t, fs, `
data:
  csv: data/grade3.csv
output:
  dir: sheets
page:
  size: a5
  landscape: true
  margin: 10mm 15mm
generate:
  copies: 4
  count: 20
labels:
  document: Dictation
  sections:
    word: Words
    短语: Phrases
`)
		cfg, err := NewLoader(fs).Load(path)
		require.NoError(t, err)
		assert.Equal(t, "data/grade3.csv", cfg.Data.CSV)
		assert.Equal(t, "sheets", cfg.Output.Dir)
		assert.Equal(t, "默写纸", cfg.Output.Prefix)
		assert.Equal(t, 4, cfg.Generate.Copies)
		require.NotNil(t, cfg.Generate.CountLimit())
		assert.Equal(t, 20, *cfg.Generate.CountLimit())
		assert.Equal(t, "英语单词默写答案", cfg.Labels.Answer)

		page, err := cfg.PageSpec()
		require.NoError(t, err)
		assert.Equal(t, "A5", page.Size)
		assert.True(t, page.Landscape)
		assert.InDelta(t, 10.0, page.Margin.Top, 1e-9)
		assert.InDelta(t, 15.0, page.Margin.Left, 1e-9)

		labels, err := cfg.LayoutLabels()
		require.NoError(t, err)
		assert.Equal(t, "Dictation", labels.Document)
		assert.Equal(t, map[vocab.Type]string{vocab.TypeWord: "Words", vocab.TypePhrase: "Phrases"}, labels.Sections)
	})

	t.Run("Should let environment variables win over the file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeConfig(t, fs, "output:\n  dir: from-file\n")
		t.Setenv("DICTSHEET_OUTPUT_DIR", "from-env")
		t.Setenv("DICTSHEET_GENERATE_COPIES", "3")
		t.Setenv("DICTSHEET_FONTS_CANDIDATES", "/a.ttf,/b.ttf")

		cfg, err := NewLoader(fs).Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Output.Dir)
		assert.Equal(t, 3, cfg.Generate.Copies)
		assert.Equal(t, []string{"/a.ttf", "/b.ttf"}, cfg.Fonts.Candidates)
	})

	t.Run("Should fail for a missing file", func(t *testing.T) {
		_, err := NewLoader(afero.NewMemMapFs()).Load("/nope.yaml")
		assert.ErrorContains(t, err, "不存在")
	})

	t.Run("Should fail for malformed YAML", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		path := writeConfig(t, fs, "output: [dir\n")
		_, err := NewLoader(fs).Load(path)
		assert.Error(t, err)
	})

	invalid := map[string]string{
		"unknown page size": "page:\n  size: Letter\n",
		"bad margin":        "page:\n  margin: 1 2 3 4 5\n",
		"zero copies":       "generate:\n  copies: 0\n",
		"unknown template":  "labels:\n  title: ${label} ${date}\n",
		"bad heading":       "labels:\n  heading: ${index}. ${name}\n",
		"bad log level":     "log:\n  level: verbose\n",
		"prefix with slash": "output:\n  prefix: a/b\n",
	}
	for name, content := range invalid {
		t.Run("Should reject "+name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			path := writeConfig(t, fs, content)
			_, err := NewLoader(fs).Load(path)
			assert.ErrorContains(t, err, "配置校验失败")
		})
	}
}

func TestConfig_LayoutLabels(t *testing.T) {
	t.Run("Should reject unknown section keys", func(t *testing.T) {
		cfg := Default()
		cfg.Labels.Sections = map[string]string{"idiom": "Idioms"}
		_, err := cfg.LayoutLabels()
		assert.ErrorContains(t, err, "labels.sections")
	})
}

func TestFontsConfig_Resources(t *testing.T) {
	t.Run("Should use the first existing candidate for unset roles", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/fonts/b.ttf", []byte("x"), 0o644))
		f := FontsConfig{Term: "builtin:gomono", Candidates: []string{"/fonts/a.ttf", "/fonts/b.ttf"}}

		res := f.Resources(fs)
		assert.Equal(t, "/fonts/b.ttf", res[layout.FontGloss].Src)
		assert.Equal(t, "/fonts/b.ttf", res[layout.FontTitle].Src)
		assert.Equal(t, "builtin:gomono", res[layout.FontTerm].Src)
		assert.Equal(t, fonts.Fallback, res[layout.FontGloss].Fallback)
	})

	t.Run("Should fall back to the builtin font", func(t *testing.T) {
		res := FontsConfig{Candidates: []string{"/missing.ttf"}}.Resources(afero.NewMemMapFs())
		assert.Equal(t, fonts.Fallback, res[layout.FontGloss].Src)
	})
}

func TestTransformEnvKey(t *testing.T) {
	assert.Equal(t, "output.dir", transformEnvKey("DICTSHEET_OUTPUT_DIR"))
	assert.Equal(t, "data.csv", transformEnvKey("DICTSHEET_DATA_CSV"))
	assert.Equal(t, "log.level", transformEnvKey("DICTSHEET_LOG__LEVEL"))
	assert.Equal(t, "", transformEnvKey("DICTSHEET_"))
}
