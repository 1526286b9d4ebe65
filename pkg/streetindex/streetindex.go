package streetindex

import (
	"sort"
	"strings"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/tidwall/btree"
	"go.uber.org/zap"
)

type street struct {
	key   string // lower case name, the btree order
	name  string
	tails []datastructure.Index
}

func streetLess(a, b *street) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.name < b.name
}

// StreetIndex maps the edge names of a graph to the nodes their edges leave from. names are ordered case
// insensitively, so a prefix lookup is a single range scan.
type StreetIndex struct {
	graph *datastructure.Graph
	tr    *btree.BTreeG[*street]
}

func NewStreetIndex() *StreetIndex {
	return &StreetIndex{
		tr: btree.NewBTreeG(streetLess),
	}
}

func (si *StreetIndex) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building street name index...")
	si.graph = graph

	byName := make(map[string]*street)
	graph.ForOutEdges(func(tail datastructure.Index, e *datastructure.OutEdge) {
		name := graph.GetStreetName(e)
		if name == "" {
			return
		}
		s, ok := byName[name]
		if !ok {
			s = &street{key: strings.ToLower(name), name: name}
			byName[name] = s
		}
		s.tails = append(s.tails, tail)
	})

	for _, s := range byName {
		sort.Slice(s.tails, func(i, j int) bool {
			return graph.NodeIDOf(s.tails[i]) < graph.NodeIDOf(s.tails[j])
		})
		s.tails = dedupSorted(s.tails)
		si.tr.Set(s)
	}

	log.Info("Street name index built.", zap.Int("streets", si.tr.Len()))
}

func (si *StreetIndex) Len() int {
	return si.tr.Len()
}

// FindStreetNodes returns the nodes with an outgoing edge named exactly name, ordered by id, each with its
// position if it has one.
func (si *StreetIndex) FindStreetNodes(name string) []datastructure.NodeRecord {
	s, ok := si.tr.Get(&street{key: strings.ToLower(name), name: name})
	if !ok {
		return []datastructure.NodeRecord{}
	}

	nodes := make([]datastructure.NodeRecord, 0, len(s.tails))
	for _, u := range s.tails {
		rec := datastructure.NodeRecord{ID: si.graph.NodeIDOf(u)}
		if pos, ok := si.graph.Position(u); ok {
			rec.Position = &pos
		}
		nodes = append(nodes, rec)
	}
	return nodes
}

// SuggestStreets returns up to limit street names starting with prefix, compared case insensitively, in
// index order. limit <= 0 uses the default limit.
func (si *StreetIndex) SuggestStreets(prefix string, limit int) []string {
	if limit <= 0 {
		limit = pkg.DEFAULT_SUGGESTION_LIMIT
	}
	key := strings.ToLower(prefix)

	names := make([]string, 0, limit)
	si.tr.Ascend(&street{key: key}, func(s *street) bool {
		if !strings.HasPrefix(s.key, key) {
			return false
		}
		names = append(names, s.name)
		return len(names) < limit
	})
	return names
}

func dedupSorted(tails []datastructure.Index) []datastructure.Index {
	out := tails[:0]
	for i, u := range tails {
		if i == 0 || u != tails[i-1] {
			out = append(out, u)
		}
	}
	return out
}
