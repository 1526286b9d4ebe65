package datastructure

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// Index is the dense, internal id of a vertex or an edge in a materialized graph.
type Index uint32

const (
	INVALID_VERTEX_ID Index = ^Index(0)
	INVALID_EDGE_ID   Index = ^Index(0)
)

// NodeID is the opaque, caller-facing identity of an intersection.
type NodeID int64

var ErrMalformedGraph = errors.New("malformed graph")

// NodeRecord is an intersection as supplied by the graph store. a nil Position means the store has no
// location for the node.
type NodeRecord struct {
	ID       NodeID
	Position *geo.Coordinate
}

func NewNodeRecord(id NodeID, lat, lon float64) NodeRecord {
	pos := geo.NewCoordinate(lat, lon)
	return NodeRecord{ID: id, Position: &pos}
}

// EdgeRecord is a directed road segment, Length in meters.
type EdgeRecord struct {
	Source NodeID
	Target NodeID
	Length float64
	Name   string
}

func NewEdgeRecord(source, target NodeID, length float64, name string) EdgeRecord {
	return EdgeRecord{Source: source, Target: target, Length: length, Name: name}
}

type Vertex struct {
	lat         float64
	lon         float64
	hasPosition bool
	firstOut    Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id          NodeID
}

func (v *Vertex) HasPosition() bool {
	return v.hasPosition
}

func (v *Vertex) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(v.lat, v.lon)
}

type OutEdge struct {
	length float64 // meter
	edgeId Index   // position of the edge record this edge was built from
	head   Index
	nameId Index
}

func (e *OutEdge) GetLength() float64 {
	return e.length
}

func (e *OutEdge) GetEdgeId() Index {
	return e.edgeId
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetNameId() Index {
	return e.nameId
}

// Graph is the adjacency index of one graph snapshot. vertex u owns outEdges[vertices[u].firstOut :
// vertices[u+1].firstOut], a sentinel vertex closes the last range. the graph is never mutated after
// Materialize, so it can be shared by concurrent queries.
type Graph struct {
	vertices    []Vertex
	outEdges    []OutEdge
	idToIndex   map[NodeID]Index
	streetNames []string
	// edgeTail[i] is the tail of the i-th input edge record, used to write the graph back as records.
	edgeTail []Index
	edgeSlot []Index
}

// Materialize builds the adjacency index from node and edge records. parallel edges are kept as separate
// out edges in input order. returns ErrMalformedGraph for duplicate node ids, edges that reference unknown
// nodes, invalid positions and lengths that are negative or not finite.
func Materialize(nodes []NodeRecord, edges []EdgeRecord) (*Graph, error) {
	if uint64(len(nodes)) >= uint64(INVALID_VERTEX_ID) || uint64(len(edges)) >= uint64(INVALID_EDGE_ID) {
		return nil, util.WrapErrorf(ErrMalformedGraph, util.ErrBadParamInput,
			"graph too large: %d nodes, %d edges", len(nodes), len(edges))
	}

	g := &Graph{
		vertices:    make([]Vertex, len(nodes)+1),
		outEdges:    make([]OutEdge, len(edges)),
		idToIndex:   make(map[NodeID]Index, len(nodes)),
		streetNames: []string{""},
		edgeTail:    make([]Index, len(edges)),
		edgeSlot:    make([]Index, len(edges)),
	}

	for i, n := range nodes {
		if _, ok := g.idToIndex[n.ID]; ok {
			return nil, util.WrapErrorf(ErrMalformedGraph, util.ErrBadParamInput, "duplicate node id %d", n.ID)
		}
		g.idToIndex[n.ID] = Index(i)
		v := Vertex{id: n.ID}
		if n.Position != nil {
			if !n.Position.IsValid() {
				return nil, util.WrapErrorf(ErrMalformedGraph, util.ErrBadParamInput,
					"node %d has invalid position (%v, %v)", n.ID, n.Position.Lat, n.Position.Lon)
			}
			v.lat, v.lon, v.hasPosition = n.Position.Lat, n.Position.Lon, true
		}
		g.vertices[i] = v
	}

	nameIds := map[string]Index{"": 0}
	outDegree := make([]Index, len(nodes)+1)
	heads := make([]Index, len(edges))
	for i, e := range edges {
		tail, ok := g.idToIndex[e.Source]
		if !ok {
			return nil, util.WrapErrorf(ErrMalformedGraph, util.ErrBadParamInput,
				"edge %d references unknown source node %d", i, e.Source)
		}
		head, ok := g.idToIndex[e.Target]
		if !ok {
			return nil, util.WrapErrorf(ErrMalformedGraph, util.ErrBadParamInput,
				"edge %d references unknown target node %d", i, e.Target)
		}
		if !util.IsFinite(e.Length) || e.Length < 0 {
			return nil, util.WrapErrorf(ErrMalformedGraph, util.ErrBadParamInput,
				"edge %d (%d -> %d) has invalid length %v", i, e.Source, e.Target, e.Length)
		}
		g.edgeTail[i] = tail
		heads[i] = head
		outDegree[tail]++
	}

	// counting sort by tail, stable so parallel edges keep their input order
	offset := Index(0)
	for u := range g.vertices {
		g.vertices[u].firstOut = offset
		offset += outDegree[u]
	}
	next := make([]Index, len(nodes))
	for u := range next {
		next[u] = g.vertices[u].firstOut
	}

	for i, e := range edges {
		nameId, ok := nameIds[e.Name]
		if !ok {
			nameId = Index(len(g.streetNames))
			nameIds[e.Name] = nameId
			g.streetNames = append(g.streetNames, e.Name)
		}
		tail := g.edgeTail[i]
		slot := next[tail]
		next[tail]++
		g.outEdges[slot] = OutEdge{
			length: e.Length,
			edgeId: Index(i),
			head:   heads[i],
			nameId: nameId,
		}
		g.edgeSlot[i] = slot
	}

	return g, nil
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

// IndexOf. dense index of a node id, false if the node is not part of the graph.
func (g *Graph) IndexOf(id NodeID) (Index, bool) {
	u, ok := g.idToIndex[id]
	return u, ok
}

func (g *Graph) NodeIDOf(u Index) NodeID {
	return g.vertices[u].id
}

// Position. coordinate of u, false if the node was materialized without one.
func (g *Graph) Position(u Index) (geo.Coordinate, bool) {
	v := &g.vertices[u]
	return v.GetCoordinate(), v.hasPosition
}

func (g *Graph) OutDegree(u Index) int {
	return int(g.vertices[u+1].firstOut - g.vertices[u].firstOut)
}

// OutEdges returns the out edge range of u, in input order. callers must not modify it.
func (g *Graph) OutEdges(u Index) []OutEdge {
	return g.outEdges[g.vertices[u].firstOut:g.vertices[u+1].firstOut]
}

// ForEachVertex visits the vertices in index order.
func (g *Graph) ForEachVertex(handle func(u Index, v *Vertex)) {
	for u := 0; u < g.NumberOfVertices(); u++ {
		handle(Index(u), &g.vertices[u])
	}
}

// ForOutEdges visits every edge together with its tail.
func (g *Graph) ForOutEdges(handle func(tail Index, e *OutEdge)) {
	for u := 0; u < g.NumberOfVertices(); u++ {
		for i := g.vertices[u].firstOut; i < g.vertices[u+1].firstOut; i++ {
			handle(Index(u), &g.outEdges[i])
		}
	}
}

// EdgeByID returns the out edge built from the id-th input edge record.
func (g *Graph) EdgeByID(id Index) *OutEdge {
	return &g.outEdges[g.edgeSlot[id]]
}

// EdgeTail. tail vertex of the id-th input edge record.
func (g *Graph) EdgeTail(id Index) Index {
	return g.edgeTail[id]
}

func (g *Graph) GetStreetName(e *OutEdge) string {
	return g.streetNames[e.GetNameId()]
}

// StreetNames. every distinct, non-empty edge name.
func (g *Graph) StreetNames() []string {
	return g.streetNames[1:]
}

// Records returns the node and edge records of the graph in their original input order.
func (g *Graph) Records() ([]NodeRecord, []EdgeRecord) {
	nodes := make([]NodeRecord, g.NumberOfVertices())
	g.ForEachVertex(func(u Index, v *Vertex) {
		nodes[u] = NodeRecord{ID: v.id}
		if v.hasPosition {
			pos := v.GetCoordinate()
			nodes[u].Position = &pos
		}
	})

	edges := make([]EdgeRecord, len(g.outEdges))
	for i := range edges {
		e := &g.outEdges[g.edgeSlot[i]]
		edges[i] = EdgeRecord{
			Source: g.vertices[g.edgeTail[i]].id,
			Target: g.vertices[e.head].id,
			Length: e.length,
			Name:   g.streetNames[e.nameId],
		}
	}
	return nodes, edges
}

func (g *Graph) String() string {
	return fmt.Sprintf("graph{vertices: %d, edges: %d}", g.NumberOfVertices(), g.NumberOfEdges())
}
