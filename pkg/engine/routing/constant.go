package routing

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/roadrouter/pkg/util"
)

type Algorithm int

const (
	UNIFORM_COST Algorithm = iota
	HEURISTIC
)

func (a Algorithm) String() string {
	switch a {
	case UNIFORM_COST:
		return "dijkstra"
	case HEURISTIC:
		return "astar"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "dijkstra", "ucs":
		return UNIFORM_COST, nil
	case "astar", "a*":
		return HEURISTIC, nil
	default:
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown algorithm %q", name)
	}
}
