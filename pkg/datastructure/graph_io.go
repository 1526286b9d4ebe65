package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

const (
	missingValue           = "-"
	maxPreallocatedRecords = 1 << 20
)

// WriteGraph writes the graph records as a bzip2 compressed snapshot.
func (g *Graph) WriteGraph(filename string) error {
	nodes, edges := g.Records()
	return WriteRecords(filename, nodes, edges)
}

// WriteRecords writes node and edge records as a bzip2 compressed snapshot:
//
//	<numNodes> <numEdges>
//	<id> <lat|-> <lon|->            (numNodes lines)
//	<source> <target> <length> [name] (numEdges lines, name query-escaped)
func WriteRecords(filename string, nodes []NodeRecord, edges []EdgeRecord) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	if err := encodeRecords(bz, nodes, edges); err != nil {
		bz.Close()
		return err
	}
	if err := bz.Close(); err != nil {
		return err
	}
	return f.Sync()
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return missingValue
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func encodeRecords(dst io.Writer, nodes []NodeRecord, edges []EdgeRecord) error {
	w := bufio.NewWriter(dst)

	fmt.Fprintf(w, "%d %d\n", len(nodes), len(edges))

	for _, n := range nodes {
		if n.Position == nil {
			fmt.Fprintf(w, "%d %s %s\n", n.ID, missingValue, missingValue)
			continue
		}
		fmt.Fprintf(w, "%d %s %s\n", n.ID, formatFloat(n.Position.Lat), formatFloat(n.Position.Lon))
	}

	for _, e := range edges {
		fmt.Fprintf(w, "%d %d %s", e.Source, e.Target, formatFloat(e.Length))
		if e.Name != "" {
			fmt.Fprintf(w, " %s", url.QueryEscape(e.Name))
		}
		fmt.Fprintf(w, "\n")
	}

	return w.Flush()
}

func fields(s string) []string {
	return strings.Fields(s)
}

func parseNodeID(s string) (NodeID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return NodeID(id), nil
}

func parseFloat(s string) (float64, error) {
	if s == missingValue {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// ReadGraph reads a snapshot written by WriteRecords and materializes it.
func ReadGraph(filename string) (*Graph, error) {
	nodes, edges, err := ReadRecords(filename)
	if err != nil {
		return nil, err
	}
	return Materialize(nodes, edges)
}

// ReadRecords reads the node and edge records of a snapshot. a missing length is returned as NaN, so
// Materialize rejects it.
func ReadRecords(filename string) ([]NodeRecord, []EdgeRecord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, nil, err
	}
	defer bz.Close()

	return decodeRecords(bz)
}

var errSnapshotFormat = errors.New("invalid graph snapshot")

func snapshotErrorf(lineNo int, format string, a ...interface{}) error {
	return util.WrapErrorf(errSnapshotFormat, util.ErrBadParamInput, "line %d: %s", lineNo,
		fmt.Sprintf(format, a...))
}

func decodeRecords(src io.Reader) ([]NodeRecord, []EdgeRecord, error) {
	br := bufio.NewReader(src)
	lineNo := 1

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, nil, snapshotErrorf(lineNo, "missing header: %v", err)
	}

	tokens := fields(line)
	if len(tokens) != 2 {
		return nil, nil, snapshotErrorf(lineNo, "header must have 2 fields, got %d", len(tokens))
	}

	numNodes, err := strconv.ParseUint(tokens[0], 10, 32)
	if err != nil {
		return nil, nil, snapshotErrorf(lineNo, "number of nodes: %v", err)
	}
	numEdges, err := strconv.ParseUint(tokens[1], 10, 32)
	if err != nil {
		return nil, nil, snapshotErrorf(lineNo, "number of edges: %v", err)
	}

	// the header is not trusted for allocation, a truncated body must fail on its missing lines
	nodes := make([]NodeRecord, 0, min(int(numNodes), maxPreallocatedRecords))
	for i := 0; i < int(numNodes); i++ {
		lineNo++
		nodeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, snapshotErrorf(lineNo, "node %d: %v", i, err)
		}
		node, err := parseNode(nodeLine)
		if err != nil {
			return nil, nil, snapshotErrorf(lineNo, "node %d: %v", i, err)
		}
		nodes = append(nodes, node)
	}

	edges := make([]EdgeRecord, 0, min(int(numEdges), maxPreallocatedRecords))
	for i := 0; i < int(numEdges); i++ {
		lineNo++
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, nil, snapshotErrorf(lineNo, "edge %d: %v", i, err)
		}
		edge, err := parseEdge(edgeLine)
		if err != nil {
			return nil, nil, snapshotErrorf(lineNo, "edge %d: %v", i, err)
		}
		edges = append(edges, edge)
	}

	return nodes, edges, nil
}

func parseNode(line string) (NodeRecord, error) {
	tokens := fields(line)
	if len(tokens) != 3 {
		return NodeRecord{}, fmt.Errorf("expected 3 fields, got %d", len(tokens))
	}
	id, err := parseNodeID(tokens[0])
	if err != nil {
		return NodeRecord{}, err
	}
	if tokens[1] == missingValue || tokens[2] == missingValue {
		return NodeRecord{ID: id}, nil
	}
	lat, err := parseFloat(tokens[1])
	if err != nil {
		return NodeRecord{}, err
	}
	lon, err := parseFloat(tokens[2])
	if err != nil {
		return NodeRecord{}, err
	}
	return NewNodeRecord(id, lat, lon), nil
}

func parseEdge(line string) (EdgeRecord, error) {
	tokens := fields(line)
	if len(tokens) != 3 && len(tokens) != 4 {
		return EdgeRecord{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(tokens))
	}
	source, err := parseNodeID(tokens[0])
	if err != nil {
		return EdgeRecord{}, err
	}
	target, err := parseNodeID(tokens[1])
	if err != nil {
		return EdgeRecord{}, err
	}
	length, err := parseFloat(tokens[2])
	if err != nil {
		return EdgeRecord{}, err
	}
	name := ""
	if len(tokens) == 4 {
		name, err = url.QueryUnescape(tokens[3])
		if err != nil {
			return EdgeRecord{}, err
		}
	}
	return NewEdgeRecord(source, target, length, name), nil
}

// NodeRecordWithoutPosition is a convenience for stores that have no coordinates for a node.
func NodeRecordWithoutPosition(id NodeID) NodeRecord {
	return NodeRecord{ID: id}
}
