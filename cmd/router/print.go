package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lintang-b-s/roadrouter/pkg/datastructure"
	"github.com/lintang-b-s/roadrouter/pkg/engine/routing"
	"github.com/lintang-b-s/roadrouter/pkg/geo"
)

func printRoute(w io.Writer, graph *datastructure.Graph, res routing.Result) error {
	if !res.Found() {
		_, err := fmt.Fprintf(w, "no path (settled %d nodes)\n", res.Settled)
		return err
	}

	ids := make([]string, len(res.Path))
	for i, id := range res.Path {
		ids[i] = fmt.Sprint(id)
	}
	coords := routing.RouteCoordinates(graph, res)

	lines := []string{
		fmt.Sprintf("cost: %.3f m", res.Cost),
		fmt.Sprintf("path: %s", strings.Join(ids, " -> ")),
		fmt.Sprintf("streets: %s", strings.Join(routing.RouteStreetNames(graph, res), ", ")),
		fmt.Sprintf("straight line length: %.3f m", geo.PathLength(coords)),
		fmt.Sprintf("polyline: %s", geo.PolylineFromCoords(coords)),
		fmt.Sprintf("settled: %d", res.Settled),
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
