// Package catalog indexes the call table for keyword search.
package catalog

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// Index is an immutable inverted index over calls. Document IDs are the
// positions of the calls in name order.
type Index struct {
	calls      []calltable.Call
	tokens     map[string]*roaring.Bitmap // all tokens: name, params, description
	nameTokens map[uint32]map[string]bool
	components map[string]*roaring.Bitmap // lower-cased component
	kinds      map[zapapi.CallKind]*roaring.Bitmap
	legacy     *roaring.Bitmap
	all        *roaring.Bitmap
	vocabulary []string // sorted token keys, for prefix lookups
}

// Build indexes every call in t.
func Build(t *calltable.Table) *Index {
	idx := &Index{
		calls:      t.All(),
		tokens:     make(map[string]*roaring.Bitmap),
		nameTokens: make(map[uint32]map[string]bool),
		components: make(map[string]*roaring.Bitmap),
		kinds:      make(map[zapapi.CallKind]*roaring.Bitmap),
		legacy:     roaring.New(),
		all:        roaring.New(),
	}

	for i, c := range idx.calls {
		id := uint32(i)
		idx.all.Add(id)
		addTo(idx.components, strings.ToLower(c.Component), id)
		addTo(idx.kinds, c.Kind, id)
		if c.IsLegacy() {
			idx.legacy.Add(id)
		}

		names := make(map[string]bool)
		for _, tok := range Tokenize(c.Component + " " + c.Method) {
			names[tok] = true
			addTo(idx.tokens, tok, id)
		}
		idx.nameTokens[id] = names

		text := c.Description + " " + c.ResultKey
		for _, p := range c.Params {
			text += " " + p.Name
		}
		for _, tok := range Tokenize(text) {
			addTo(idx.tokens, tok, id)
		}
	}

	idx.vocabulary = make([]string, 0, len(idx.tokens))
	for tok, bm := range idx.tokens {
		bm.RunOptimize()
		idx.vocabulary = append(idx.vocabulary, tok)
	}
	sort.Strings(idx.vocabulary)
	return idx
}

func addTo[K comparable](m map[K]*roaring.Bitmap, key K, id uint32) {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	bm.Add(id)
}

// Len returns the number of indexed calls.
func (idx *Index) Len() int {
	return len(idx.calls)
}

// prefixBitmap unions the postings of every token starting with prefix.
func (idx *Index) prefixBitmap(prefix string) *roaring.Bitmap {
	i := sort.SearchStrings(idx.vocabulary, prefix)
	var hits []*roaring.Bitmap
	for ; i < len(idx.vocabulary) && strings.HasPrefix(idx.vocabulary[i], prefix); i++ {
		hits = append(hits, idx.tokens[idx.vocabulary[i]])
	}
	if len(hits) == 0 {
		return roaring.New()
	}
	return roaring.FastOr(hits...)
}
