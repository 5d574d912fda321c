package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/mesh"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
)

// EdgeInfo describes one mesh edge. Edges shared by two faces are listed once.
type EdgeInfo struct {
	Start     geometry.Vect3
	End       geometry.Vect3
	Length    float64
	Component int
	FaceID    int
}

// MeshStats contains measurements of a structure
type MeshStats struct {
	BoundingBox    geometry.BoundingBox
	Dimensions     geometry.Vect3
	Volume         float64
	SurfaceArea    float64
	ComponentCount int
	VertexCount    int
	FaceCount      int
	EdgeCount      int
	MinEdgeLength  float64
	MaxEdgeLength  float64
	AvgEdgeLength  float64
	AllEdges       []EdgeInfo
}

// AnalyzeStructure measures every component of s
func AnalyzeStructure(s *mesh.Structure) *MeshStats {
	result := &MeshStats{
		BoundingBox:    s.BoundingBox(),
		ComponentCount: s.Len(),
		AllEdges:       make([]EdgeInfo, 0),
	}
	result.VertexCount, result.FaceCount = s.Counts()
	if !result.BoundingBox.IsEmpty() {
		result.Dimensions = result.BoundingBox.Size()
		result.Volume = result.BoundingBox.Volume()
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for ci, c := range s.Components() {
		seen := make(map[[2]int]bool)
		for fi := range c.FaceCount() {
			ids, err := c.FaceVertices(fi)
			if err != nil {
				continue
			}
			corners, err := c.FaceCorners(fi)
			if err != nil {
				continue
			}
			result.SurfaceArea += geometry.TriangleArea(corners[0], corners[1], corners[2])

			for k := range 3 {
				a, b := ids[k], ids[(k+1)%3]
				key := [2]int{min(a, b), max(a, b)}
				if seen[key] {
					continue
				}
				seen[key] = true

				start, end := corners[k], corners[(k+1)%3]
				length := start.Distance(end)
				result.AllEdges = append(result.AllEdges, EdgeInfo{
					Start:     start,
					End:       end,
					Length:    length,
					Component: ci,
					FaceID:    fi,
				})

				totalLength += length
				minLength = min(minLength, length)
				maxLength = max(maxLength, length)
			}
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}
	return result
}

// GraphStats contains measurements of a node graph
type GraphStats struct {
	BoundingBox geometry.BoundingBox
	NodeCount   int
	EdgeCount   int
	// EndPoints have exactly one neighbour, Junctions three or more
	EndPoints   int
	Junctions   int
	Isolated    int
	TotalLength float64
	MinWidth    float64
	MaxWidth    float64
	AvgWidth    float64
}

// AnalyzeGraph measures g. Edge lengths are the distances between their
// endpoints.
func AnalyzeGraph(g *nodegraph.NodeGraph) *GraphStats {
	nodes := g.Nodes()
	edges := g.Edges()

	result := &GraphStats{
		BoundingBox: geometry.NewBoundingBox(),
		NodeCount:   len(nodes),
		EdgeCount:   len(edges),
		EndPoints:   lo.CountBy(nodes, func(n nodegraph.Node) bool { return n.Degree() == 1 }),
		Junctions:   lo.CountBy(nodes, func(n nodegraph.Node) bool { return n.Degree() >= 3 }),
		Isolated:    lo.CountBy(nodes, func(n nodegraph.Node) bool { return n.Degree() == 0 }),
	}

	coords := lo.SliceToMap(nodes, func(n nodegraph.Node) (int, geometry.Vect3) {
		return n.Index, n.Coordinate
	})
	for _, c := range coords {
		result.BoundingBox.Extend(c)
	}

	result.TotalLength = lo.SumBy(edges, func(e nodegraph.Edge) float64 {
		a, b, err := e.Endpoints()
		if err != nil {
			return 0
		}
		return coords[a].Distance(coords[b])
	})

	if len(edges) > 0 {
		widths := lo.Map(edges, func(e nodegraph.Edge, _ int) float64 { return e.Width })
		result.MinWidth = lo.Min(widths)
		result.MaxWidth = lo.Max(widths)
		result.AvgWidth = lo.Sum(widths) / float64(len(widths))
	}
	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeshStats, minLength, maxLength float64) []EdgeInfo {
	return lo.Filter(result.AllEdges, func(e EdgeInfo, _ int) bool {
		return e.Length >= minLength && e.Length <= maxLength
	})
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeshStats, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeshStats, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeshStats, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FindNearestNode finds the graph node nearest to point. ok is false for an
// empty graph.
func FindNearestNode(g *nodegraph.NodeGraph, point geometry.Vect3) (node nodegraph.Node, distance float64, ok bool) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nodegraph.Node{}, 0, false
	}
	node = lo.MinBy(nodes, func(a, b nodegraph.Node) bool {
		return point.Distance(a.Coordinate) < point.Distance(b.Coordinate)
	})
	return node, point.Distance(node.Coordinate), true
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vect3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
