package osmparser

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

// OsmParser turns the drivable ways of an openstreetmap extract into node and edge records. graph nodes
// are way end points, junctions and barrier splits. the nodes between them only shape the length of an
// edge.
type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]geo.Coordinate
	barrierNodes    map[int64]bool
	maxNodeID       int64
	ways            []osmWay

	nodeSeen map[int64]struct{}
	nodes    []datastructure.NodeRecord
	edges    []datastructure.EdgeRecord
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]geo.Coordinate),
		barrierNodes:    make(map[int64]bool),
		ways:            make([]osmWay, 0),
		nodeSeen:        make(map[int64]struct{}),
		nodes:           make([]datastructure.NodeRecord, 0),
		edges:           make([]datastructure.EdgeRecord, 0),
	}
}

// ParseFile reads an .osm.pbf file, or an .osm xml file when the name ends with .osm.
func (p *OsmParser) ParseFile(mapFile string, logger *zap.Logger) ([]datastructure.NodeRecord,
	[]datastructure.EdgeRecord, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	format := PBF
	if strings.HasSuffix(mapFile, ".osm") {
		format = XML
	}
	return p.Parse(context.Background(), f, format, logger)
}

func newScanner(ctx context.Context, r io.Reader, format Format) osm.Scanner {
	if format == XML {
		return osmxml.New(ctx, r)
	}
	return osmpbf.New(ctx, r, 0)
}

// Parse scans r twice: the first pass finds the nodes used by drivable ways and the junctions between
// them, the second one collects their coordinates and the ways themselves.
func (p *OsmParser) Parse(ctx context.Context, r io.ReadSeeker, format Format,
	logger *zap.Logger) ([]datastructure.NodeRecord, []datastructure.EdgeRecord, error) {

	scanner := newScanner(ctx, r, format)
	// must not be parallel
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, node := range way.Nodes {
			if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[int64(node.ID)] = END_NODE
				} else {
					p.wayNodeMap[int64(node.ID)] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[int64(node.ID)] = JUNCTION_NODE
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, nil, err
	}
	scanner.Close()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, nil, err
	}
	scanner = newScanner(ctx, r, format)
	defer scanner.Close()

	countNodes := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if (countNodes+1)%500000 == 0 {
				logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			p.processNode(o)
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			p.ways = append(p.ways, newOsmWay(o))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	for _, way := range p.ways {
		p.processWay(way)
	}

	logger.Info("openstreetmap extract parsed", zap.Int("ways", len(p.ways)),
		zap.Int("nodes", len(p.nodes)), zap.Int("edges", len(p.edges)))
	return p.nodes, p.edges, nil
}

func (p *OsmParser) processNode(n *osm.Node) {
	p.maxNodeID = max(p.maxNodeID, int64(n.ID))
	if _, ok := p.wayNodeMap[int64(n.ID)]; !ok {
		return
	}
	p.acceptedNodeMap[int64(n.ID)] = geo.NewCoordinate(n.Lat, n.Lon)

	accessType := n.Tags.Find("access")
	barrierType := n.Tags.Find("barrier")
	if _, ok := acceptedBarrierType[barrierType]; ok && accessType == "no" {
		p.barrierNodes[int64(n.ID)] = true
	}
}

func newOsmWay(way *osm.Way) osmWay {
	w := osmWay{
		id:      int64(way.ID),
		nodes:   make([]int64, len(way.Nodes)),
		name:    way.Tags.Find("name"),
		forward: true,
	}
	if w.name == "" {
		w.name = way.Tags.Find("ref")
	}
	for i, n := range way.Nodes {
		w.nodes[i] = int64(n.ID)
	}

	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	oneway := way.Tags.Find("oneway")
	if oneway == "yes" || oneway == "1" || oneway == "-1" || okvf || okmvf || okvb || okmvb ||
		way.Tags.Find("junction") == "roundabout" || way.Tags.Find("highway") == "motorway" {
		w.oneWay = true
	}
	if oneway == "no" && !(okvf || okmvf || okvb || okmvb) {
		w.oneWay = false
	}
	if oneway == "-1" || okvf || okmvf {
		// okvf / omvf = restricted/not allowed forward.
		w.forward = false
	}
	return w
}

// processWay splits a way at junctions and barriers and emits one edge per piece, in both directions
// unless the way is one way.
func (p *OsmParser) processWay(way osmWay) {
	segment := make([]node, 0, len(way.nodes))
	for i, id := range way.nodes {
		coord, ok := p.acceptedNodeMap[id]
		if !ok {
			// node missing from the extract, the way is cut there
			p.addEdge(segment, way)
			segment = segment[:0]
			continue
		}
		cur := node{id: id, coord: coord}

		if p.barrierNodes[id] {
			if len(segment) != 0 {
				segment = append(segment, cur)
				p.addEdge(segment, way)
			}
			// the piece after the barrier starts at a copy of it, so both pieces stay disconnected
			segment = append(segment[:0], p.copyNode(cur))
			continue
		}

		segment = append(segment, cur)
		if len(segment) > 1 && (p.wayNodeMap[id] == JUNCTION_NODE || i == len(way.nodes)-1) {
			p.addEdge(segment, way)
			segment = append(segment[:0], cur)
		}
	}
}

func (p *OsmParser) copyNode(n node) node {
	p.maxNodeID++
	return node{id: p.maxNodeID, coord: n.coord}
}

func (p *OsmParser) addEdge(segment []node, way osmWay) {
	if len(segment) < 2 {
		return
	}
	from := segment[0]
	to := segment[len(segment)-1]
	if from.id == to.id && len(segment) == 2 {
		return
	}

	length := 0.0
	for i := 1; i < len(segment); i++ {
		length += geo.CalculateHaversineDistance(segment[i-1].coord, segment[i].coord)
	}

	p.addNode(from)
	p.addNode(to)

	if !way.oneWay || way.forward {
		p.edges = append(p.edges, datastructure.NewEdgeRecord(datastructure.NodeID(from.id),
			datastructure.NodeID(to.id), length, way.name))
	}
	if !way.oneWay || !way.forward {
		p.edges = append(p.edges, datastructure.NewEdgeRecord(datastructure.NodeID(to.id),
			datastructure.NodeID(from.id), length, way.name))
	}
}

func (p *OsmParser) addNode(n node) {
	if _, ok := p.nodeSeen[n.id]; ok {
		return
	}
	p.nodeSeen[n.id] = struct{}{}
	p.nodes = append(p.nodes, datastructure.NewNodeRecord(datastructure.NodeID(n.id), n.coord.Lat, n.coord.Lon))
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward),
		isRestricted(motorVehicleBackward)
}

// acceptOsmWay keeps the drive network: drivable highway classes and junction ways, unless motor
// vehicles are excluded.
func acceptOsmWay(way *osm.Way) bool {
	if access := way.Tags.Find("motor_vehicle"); access == "no" {
		return false
	}
	if access := way.Tags.Find("access"); access == "no" || access == "private" {
		return false
	}
	highway := way.Tags.Find("highway")
	if highway != "" {
		return pkg.GetHighwayType(highway).IsDrivable()
	}
	return way.Tags.Find("junction") != ""
}
