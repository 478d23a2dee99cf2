// Package starmap implements the hex graph of systems linked by jump
// lanes and the shortest-path search over it (spec.md section 2 row 3,
// section 4.1 Reachability). Grounded on maps/map.go's MongoMap
// (generalized from a flat player-list record into an explicit
// hex-coordinate topology, since the teacher has no inter-system graph
// of its own — see DESIGN.md).
package starmap

import (
	"container/heap"

	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

// Graph is a read-only view over a canonical state's systems/lanes,
// used for pathfinding. It holds no state of its own beyond adjacency
// caches derived from the state it was built from.
type Graph struct {
	st    *state.State
	adj   map[id.ID][]id.ID // System -> incident Lane ids
}

// Build constructs a Graph from the current canonical state. Cheap
// enough to rebuild once per validation/resolution call; the engine
// does not cache it across turns because lanes are immutable but
// crippling state (which affects traversal) is not.
func Build(st *state.State) *Graph {
	g := &Graph{st: st, adj: make(map[id.ID][]id.ID, len(st.Systems))}
	for sysID, sys := range st.Systems {
		g.adj[sysID] = append([]id.ID(nil), sys.Lanes...)
	}
	return g
}

// CanTraverse reports whether a lane can be crossed by a fleet whose
// every ship is of the given classes and whose crippling status is
// isCrippled (any member ship Crippled/Destroyed-adjacent state blocks
// Restricted lanes per spec.md section 3: "Restricted lanes traversable
// only by uncrippled specific ship types").
func CanTraverse(l *state.JumpLane, shipClasses []state.ShipClass, isCrippled bool) bool {
	switch l.Class {
	case state.LaneMajor, state.LaneMinor:
		return true
	case state.LaneRestricted:
		if isCrippled {
			return false
		}
		allowed := make(map[state.ShipClass]bool, len(l.RestrictedTo))
		for _, c := range l.RestrictedTo {
			allowed[c] = true
		}
		for _, c := range shipClasses {
			if !allowed[c] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

type pqItem struct {
	sys  id.ID
	dist int
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra (uniform edge weight 1, one system per
// hop) from src to dst respecting lane permissions for shipClasses and
// isCrippled. Returns the path excluding src, or (nil, false) if no
// path exists.
func (g *Graph) ShortestPath(src, dst id.ID, shipClasses []state.ShipClass, isCrippled bool) ([]id.ID, bool) {
	if src == dst {
		return nil, true
	}
	dist := map[id.ID]int{src: 0}
	prev := map[id.ID]id.ID{}
	visited := map[id.ID]bool{}

	pq := &priorityQueue{{sys: src, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.sys] {
			continue
		}
		visited[cur.sys] = true
		if cur.sys == dst {
			break
		}
		for _, laneID := range g.adj[cur.sys] {
			lane := g.st.Lanes[laneID]
			if lane == nil {
				continue
			}
			if !CanTraverse(lane, shipClasses, isCrippled) {
				continue
			}
			next := lane.Other(cur.sys)
			nd := cur.dist + 1
			if d, ok := dist[next]; !ok || nd < d {
				dist[next] = nd
				prev[next] = cur.sys
				heap.Push(pq, pqItem{sys: next, dist: nd})
			}
		}
	}

	if _, ok := dist[dst]; !ok {
		return nil, false
	}

	// Reconstruct path dst -> src, then reverse.
	path := []id.ID{dst}
	cur := dst
	for cur != src {
		p, ok := prev[cur]
		if !ok {
			return nil, false
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path[1:], true
}

// HexDistance returns the axial-hex distance between two coordinates,
// used for "within range" scans (fallback colonization, pact windows).
func HexDistance(a, b state.HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := (-a.Q - a.R) - (-b.Q - b.R)
	return maxAbs3(dq, dr, ds)
}

func maxAbs3(a, b, c int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if c < 0 {
		c = -c
	}
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return (m)
}
