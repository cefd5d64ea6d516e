package dsl

import (
	"fmt"
	"slices"
)

// JobSpec 是展开默认值后的一个生成任务。Units 与 Grade 至少给出一个；
// Grade 由调用方根据词汇索引展开为单元列表。
type JobSpec struct {
	Name   string
	Units  []string
	Grade  string
	Types  []string
	Count  *int
	Copies int
	Output string
	Label  string
}

var jobKeys = []string{"units", "grade", "types", "count", "copies", "output", "label"}

// Jobs 按出现顺序返回全部任务，defaults 块中的字段作为每个任务的初始值。
func (p *Plan) Jobs() ([]JobSpec, error) {
	var defaults JobSpec
	var jobs []*Job
	seenDefaults := false
	for _, e := range p.Entries {
		switch {
		case e.Defaults != nil:
			if seenDefaults {
				return nil, fmt.Errorf("%s: defaults 只能出现一次", p.Pos)
			}
			seenDefaults = true
			if err := apply(&defaults, e.Defaults); err != nil {
				return nil, err
			}
		case e.Job != nil:
			jobs = append(jobs, e.Job)
		}
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("计划 %q 中没有任何 job", p.Name)
	}

	out := make([]JobSpec, 0, len(jobs))
	names := map[string]struct{}{}
	for _, j := range jobs {
		name := string(j.Name)
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("%s: job %q 重复定义", j.Pos, name)
		}
		names[name] = struct{}{}

		spec := defaults
		spec.Name = name
		spec.Units = slices.Clone(defaults.Units)
		spec.Types = slices.Clone(defaults.Types)
		if err := apply(&spec, j.Block); err != nil {
			return nil, err
		}
		if len(spec.Units) == 0 && spec.Grade == "" {
			return nil, fmt.Errorf("%s: job %q 需要 units 或 grade", j.Pos, name)
		}
		if spec.Copies == 0 {
			spec.Copies = 1
		}
		out = append(out, spec)
	}
	return out, nil
}

func apply(spec *JobSpec, block *Block) error {
	if block == nil {
		return nil
	}
	for _, a := range block.Assignments {
		if err := applyOne(spec, a); err != nil {
			return fmt.Errorf("%s: %s: %w", a.Pos, a.Key, err)
		}
	}
	return nil
}

func applyOne(spec *JobSpec, a *Assignment) error {
	var err error
	switch a.Key {
	case "units":
		spec.Units, err = a.Value.Strings()
	case "types":
		spec.Types, err = a.Value.Strings()
	case "grade":
		spec.Grade, err = a.Value.Scalar()
	case "output":
		spec.Output, err = a.Value.Scalar()
	case "label":
		spec.Label, err = a.Value.Scalar()
	case "count":
		var n int
		if n, err = a.Value.Number(); err == nil {
			if n < 0 {
				return fmt.Errorf("不能为负数")
			}
			spec.Count = &n
		}
	case "copies":
		var n int
		if n, err = a.Value.Number(); err == nil {
			if n < 1 {
				return fmt.Errorf("至少为 1")
			}
			spec.Copies = n
		}
	default:
		return fmt.Errorf("未知字段（可用：%v）", jobKeys)
	}
	return err
}
