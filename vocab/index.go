package vocab

import (
	"sort"
	"sync"
)

// Index 是已加载词汇的内存索引：完整序列 + 按单元分桶（桶内保持加载顺序）。
// 桶映射每次 Load 时整体重建，不做增量修补。并发读安全。
type Index struct {
	mu      sync.RWMutex
	records []Record
	byUnit  map[string][]Record
}

// NewIndex 返回一个空索引。
func NewIndex() *Index {
	return &Index{byUnit: map[string][]Record{}}
}

// Load 用 records 替换当前索引。
// 任一记录不合法时返回 *DataError，且保留之前的索引内容；空序列合法。
func (ix *Index) Load(records []Record) error {
	for i, r := range records {
		if err := r.validate(i + 1); err != nil {
			return err
		}
	}

	all := make([]Record, len(records))
	copy(all, records)
	byUnit := make(map[string][]Record)
	for _, r := range all {
		byUnit[r.Unit] = append(byUnit[r.Unit], r)
	}

	ix.mu.Lock()
	ix.records = all
	ix.byUnit = byUnit
	ix.mu.Unlock()
	return nil
}

// Len 返回记录总数。
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.records)
}

// Records 返回全部记录的副本（加载顺序）。
func (ix *Index) Records() []Record {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Record, len(ix.records))
	copy(out, ix.records)
	return out
}

// Bucket 返回某单元的记录副本；未知单元返回 nil。
func (ix *Index) Bucket(unit string) []Record {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	bucket, ok := ix.byUnit[unit]
	if !ok {
		return nil
	}
	out := make([]Record, len(bucket))
	copy(out, bucket)
	return out
}

// Units 返回全部单元（排序）。
func (ix *Index) Units() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	units := make([]string, 0, len(ix.byUnit))
	for u := range ix.byUnit {
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}

// Grades 返回全部年级（排序）。
func (ix *Index) Grades() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, r := range ix.records {
		seen[r.Grade] = struct{}{}
	}
	return sortedKeys(seen)
}

// UnitsFor 返回年级为 grade 的所有单元（排序）；无匹配时返回空切片。
func (ix *Index) UnitsFor(grade string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, r := range ix.records {
		if r.Grade == grade {
			seen[r.Unit] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// GradeUnits 返回 年级 → 单元列表 的映射。
func (ix *Index) GradeUnits() map[string][]string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	sets := map[string]map[string]struct{}{}
	for _, r := range ix.records {
		if sets[r.Grade] == nil {
			sets[r.Grade] = map[string]struct{}{}
		}
		sets[r.Grade][r.Unit] = struct{}{}
	}
	out := make(map[string][]string, len(sets))
	for g, units := range sets {
		out[g] = sortedKeys(units)
	}
	return out
}

// CountFor 统计单元内（可选按类别 OR 过滤）的记录数，未知单元返回 0。
func (ix *Index) CountFor(unit string, types ...Type) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n := 0
	for _, r := range ix.byUnit[unit] {
		if r.MatchesAny(types) {
			n++
		}
	}
	return n
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
