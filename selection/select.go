// Package selection 从词汇索引中抽取一次文档生成所需的记录子集。
package selection

import (
	"math/rand/v2"

	"github.com/ByLCY/dictsheet/vocab"
)

// Source 是抽样使用的随机源，*rand.Rand（math/rand/v2）即满足该接口。
type Source interface {
	IntN(n int) int
}

// Request 描述一次抽取：单元集合（按调用方顺序处理）、可选类别过滤、可选目标数量。
type Request struct {
	Units []string
	Types []vocab.Type
	Count *int
}

// WithCount 返回 n 的指针，便于构造 Request.Count。
func WithCount(n int) *int { return &n }

// Candidates 过滤并拼接候选集：先按单元、再按记录顺序。未知单元不贡献记录。
// 重复的单元键只处理第一次出现。
func Candidates(ix *vocab.Index, req Request) []vocab.Record {
	var out []vocab.Record
	seen := make(map[string]struct{}, len(req.Units))
	for _, unit := range req.Units {
		if _, dup := seen[unit]; dup {
			continue
		}
		seen[unit] = struct{}{}
		for _, r := range ix.Bucket(unit) {
			if r.MatchesAny(req.Types) {
				out = append(out, r)
			}
		}
	}
	return out
}

// Select 返回一份文档的记录序列。
// Count 未设置或不小于候选数时原序返回全部候选；否则无放回均匀抽取 Count 条，
// 结果按抽取顺序排列（不保留原顺序）。src 为 nil 时使用 math/rand/v2 的全局源。
func Select(ix *vocab.Index, req Request, src Source) []vocab.Record {
	candidates := Candidates(ix, req)
	if req.Count == nil || *req.Count >= len(candidates) {
		return candidates
	}
	k := *req.Count
	if k < 0 {
		k = 0
	}
	if src == nil {
		src = globalSource{}
	}
	// 部分 Fisher–Yates：前 k 个位置即为样本。
	pool := make([]vocab.Record, len(candidates))
	copy(pool, candidates)
	n := len(pool)
	for i := 0; i < k; i++ {
		j := i + src.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }
