package datastructure

// Components holds the strongly connected components of a graph. two vertices are mutually reachable iff
// they share a component.
type Components struct {
	componentOf []Index
	sizes       []int
}

func (c *Components) Count() int {
	return len(c.sizes)
}

func (c *Components) ComponentOf(u Index) Index {
	return c.componentOf[u]
}

func (c *Components) SameComponent(u, v Index) bool {
	return c.ComponentOf(u) == c.ComponentOf(v)
}

// Largest. id and size of the biggest component, ties go to the lower id.
func (c *Components) Largest() (Index, int) {
	best := INVALID_VERTEX_ID
	bestSize := 0
	for i, size := range c.sizes {
		if size > bestSize {
			best, bestSize = Index(i), size
		}
	}
	return best, bestSize
}

// RunKosaraju finds the strongly connected components with two iterative depth first searches, the
// second one over the reversed edges. self loops and parallel edges do not matter.
func (g *Graph) RunKosaraju() *Components {
	n := g.NumberOfVertices()

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	type frame struct {
		v    Index
		next Index // next out edge slot to look at
	}
	stack := make([]frame, 0, 64)
	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		stack = append(stack, frame{Index(root), g.vertices[root].firstOut})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == g.vertices[top.v+1].firstOut {
				order = append(order, top.v)
				stack = stack[:len(stack)-1]
				continue
			}
			head := g.outEdges[top.next].head
			top.next++
			if !visited[head] {
				visited[head] = true
				stack = append(stack, frame{head, g.vertices[head].firstOut})
			}
		}
	}

	// reversed adjacency in the same firstOut layout
	firstIn := make([]Index, n+1)
	g.ForOutEdges(func(tail Index, e *OutEdge) {
		firstIn[e.head+1]++
	})
	for u := 0; u < n; u++ {
		firstIn[u+1] += firstIn[u]
	}
	tails := make([]Index, g.NumberOfEdges())
	next := append([]Index(nil), firstIn[:n]...)
	g.ForOutEdges(func(tail Index, e *OutEdge) {
		tails[next[e.head]] = tail
		next[e.head]++
	})

	c := &Components{
		componentOf: make([]Index, n),
		sizes:       make([]int, 0),
	}
	for u := range c.componentOf {
		c.componentOf[u] = INVALID_VERTEX_ID
	}
	queue := make([]Index, 0, 64)
	for i := len(order) - 1; i >= 0; i-- {
		root := order[i]
		if c.componentOf[root] != INVALID_VERTEX_ID {
			continue
		}
		id := Index(len(c.sizes))
		size := 0
		c.componentOf[root] = id
		queue = append(queue[:0], root)
		for len(queue) > 0 {
			v := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			size++
			for _, w := range tails[firstIn[v]:firstIn[v+1]] {
				if c.componentOf[w] == INVALID_VERTEX_ID {
					c.componentOf[w] = id
					queue = append(queue, w)
				}
			}
		}
		c.sizes = append(c.sizes, size)
	}
	return c
}
