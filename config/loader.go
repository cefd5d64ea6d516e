package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 是环境变量前缀，例如 DICTSHEET_OUTPUT_DIR 对应 output.dir。
const EnvPrefix = "DICTSHEET_"

// Loader 按 默认值 < 配置文件 < 环境变量 的优先级组装配置。
type Loader struct {
	fs        afero.Fs
	koanf     *koanf.Koanf
	validator *validator.Validate
}

// NewLoader 返回使用 fs 读取配置文件的 Loader，fs 为 nil 时使用本地文件系统。
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	v := validator.New()
	if err := RegisterCustomValidators(v); err != nil {
		panic(err)
	}
	return &Loader{fs: fs, koanf: koanf.New("."), validator: v}
}

// Load 读取配置。path 为空时只使用默认值与环境变量；指定的文件不存在时报错。
func (l *Loader) Load(path string) (*Config, error) {
	l.koanf = koanf.New(".")

	if err := l.koanf.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("加载默认配置失败: %w", err)
	}
	if path != "" {
		if err := l.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}
	return l.unmarshalAndValidate()
}

func (l *Loader) loadFile(path string) error {
	data, err := afero.ReadFile(l.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("配置文件 %s 不存在", path)
	}
	if err != nil {
		return fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	// 逐键覆盖，文件中没有出现的键保留默认值。
	for key, value := range flattenMap("", filterNilValues(raw)) {
		if err := l.koanf.Set(key, value); err != nil {
			return fmt.Errorf("应用配置项 %s 失败: %w", key, err)
		}
	}
	return nil
}

// transformEnvKey 把 DICTSHEET_OUTPUT_DIR 转换为 output.dir：
// 第一段为分组，其余部分保留下划线作为字段名。
func transformEnvKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

func (l *Loader) loadEnvironment() error {
	err := l.koanf.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(key), value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("加载环境变量失败: %w", err)
	}
	return nil
}

func (l *Loader) unmarshalAndValidate() (*Config, error) {
	var cfg Config
	if err := l.koanf.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("解码配置失败: %w", err)
	}
	if err := l.validator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return &cfg, nil
}

// Get 返回当前生效的单个配置值，供 config 子命令展示。
func (l *Loader) Get(key string) any { return l.koanf.Get(key) }

// Keys 返回当前生效的全部配置键。
func (l *Loader) Keys() []string { return l.koanf.Keys() }

func flattenMap(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		// sections 的键是类别名，需整体保留为 map。
		if nested, ok := v.(map[string]any); ok && key != "labels.sections" {
			for fk, fv := range flattenMap(key, nested) {
				out[fk] = fv
			}
			continue
		}
		out[key] = v
	}
	return out
}

func filterNilValues(m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			if filtered := filterNilValues(nested); len(filtered) > 0 {
				out[k] = filtered
			}
			continue
		}
		out[k] = v
	}
	return out
}
