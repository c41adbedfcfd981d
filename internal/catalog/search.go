package catalog

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Query selects calls. Every text token must match (as a prefix of an
// indexed token); Component and Kind narrow the result further and match
// case-insensitively.
type Query struct {
	Text          string
	Component     string
	Kind          zapapi.CallKind
	IncludeLegacy bool
	Limit         int // 0 = no limit
}

// Hit is one matching call.
type Hit struct {
	Call  calltable.Call
	Score int
}

// Result holds the hits in rank order and the match count before Limit.
type Result struct {
	Hits  []Hit
	Total int
}

// Search runs q. An empty query matches every call.
func (idx *Index) Search(q Query) Result {
	candidates := idx.all.Clone()

	if q.Component != "" {
		bm, ok := idx.components[strings.ToLower(q.Component)]
		if !ok {
			return Result{Hits: []Hit{}}
		}
		candidates.And(bm)
	}
	if q.Kind != "" {
		bm, ok := idx.kinds[zapapi.CallKind(strings.ToLower(string(q.Kind)))]
		if !ok {
			return Result{Hits: []Hit{}}
		}
		candidates.And(bm)
	}
	if !q.IncludeLegacy {
		candidates.AndNot(idx.legacy)
	}

	terms := dedupe(Tokenize(q.Text))
	if len(terms) > 0 {
		sets := make([]*roaring.Bitmap, 0, len(terms)+1)
		sets = append(sets, candidates)
		for _, term := range terms {
			sets = append(sets, idx.prefixBitmap(term))
		}
		candidates = roaring.FastAnd(sets...)
	}

	hits := make([]Hit, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		id := it.Next()
		hits = append(hits, Hit{Call: idx.calls[id], Score: idx.score(id, terms)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Call.Name() < hits[j].Call.Name()
	})

	total := len(hits)
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	return Result{Hits: hits, Total: total}
}

// score ranks exact name matches above prefix name matches above matches
// found only in descriptions and parameters.
func (idx *Index) score(id uint32, terms []string) int {
	names := idx.nameTokens[id]
	score := 0
	for _, term := range terms {
		switch {
		case names[term]:
			score += 3
		case hasPrefix(names, term):
			score += 2
		default:
			score++
		}
	}
	return score
}

func hasPrefix(set map[string]bool, prefix string) bool {
	for tok := range set {
		if strings.HasPrefix(tok, prefix) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
