// Package persist stores node graphs as XML, JSON or YAML documents.
package persist

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/meshgraph/pkg/geometry"
	"github.com/philipparndt/meshgraph/pkg/nodegraph"
)

var (
	// ErrUnknownFormat is returned for format names and extensions without a codec
	ErrUnknownFormat = errors.New("persist: unknown format")
	// ErrNeighborMismatch is returned when a node's neighbour list disagrees
	// with the edge list
	ErrNeighborMismatch = errors.New("persist: neighbour list does not match edges")
)

// Format selects the document encoding
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported encodings
var Formats = []Format{FormatXML, FormatJSON, FormatYAML}

// ParseFormat accepts a format name case-insensitively. "yml" is an alias
// for yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// FormatFor derives the format from the extension of path
func FormatFor(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%s has no extension: %w", path, ErrUnknownFormat)
	}
	return ParseFormat(ext)
}

// Document is the serialized form of a node graph
type Document struct {
	XMLName xml.Name  `xml:"NodeGraph" json:"-" yaml:"-"`
	Nodes   []NodeDoc `xml:"Nodes>Node" json:"nodes" yaml:"nodes"`
	Edges   []EdgeDoc `xml:"Edges>Edge" json:"edges" yaml:"edges"`
}

// NodeDoc is one node with its neighbour list
type NodeDoc struct {
	Index     int           `xml:"index,attr" json:"index" yaml:"index"`
	X         float64       `xml:"x,attr" json:"x" yaml:"x"`
	Y         float64       `xml:"y,attr" json:"y" yaml:"y"`
	Z         float64       `xml:"z,attr" json:"z" yaml:"z"`
	Neighbors []NeighborDoc `xml:"Neighbor" json:"neighbors,omitempty" yaml:"neighbors,omitempty"`
}

// NeighborDoc names an adjacent node and the edge leading to it
type NeighborDoc struct {
	Node int `xml:"node,attr" json:"node" yaml:"node"`
	Edge int `xml:"edge,attr" json:"edge" yaml:"edge"`
}

// EdgeDoc is one edge
type EdgeDoc struct {
	Index int     `xml:"index,attr" json:"index" yaml:"index"`
	Node1 int     `xml:"node1,attr" json:"node1" yaml:"node1"`
	Node2 int     `xml:"node2,attr" json:"node2" yaml:"node2"`
	Width float64 `xml:"width,attr" json:"width" yaml:"width"`
}

// FromGraph builds the document for g
func FromGraph(g *nodegraph.NodeGraph) (Document, error) {
	doc := Document{
		Nodes: make([]NodeDoc, 0, g.NodeCount()),
		Edges: make([]EdgeDoc, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		nd := NodeDoc{
			Index: n.Index,
			X:     n.Coordinate.X,
			Y:     n.Coordinate.Y,
			Z:     n.Coordinate.Z,
		}
		for _, p := range n.Neighbors {
			node, err := p.NodeIndex()
			if err != nil {
				return Document{}, fmt.Errorf("node %d: %w", n.Index, err)
			}
			edge, err := p.EdgeIndex()
			if err != nil {
				return Document{}, fmt.Errorf("node %d: %w", n.Index, err)
			}
			nd.Neighbors = append(nd.Neighbors, NeighborDoc{Node: node, Edge: edge})
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, e := range g.Edges() {
		a, b, err := e.Endpoints()
		if err != nil {
			return Document{}, fmt.Errorf("edge %d: %w", e.Index, err)
		}
		doc.Edges = append(doc.Edges, EdgeDoc{Index: e.Index, Node1: a, Node2: b, Width: e.Width})
	}
	return doc, nil
}

// Graph rebuilds the node graph. The neighbour lists in the document must
// agree with the edges.
func (d Document) Graph() (*nodegraph.NodeGraph, error) {
	nodes := make([]nodegraph.NodeRecord, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes = append(nodes, nodegraph.NodeRecord{
			Index:      n.Index,
			Coordinate: geometry.NewVect3(n.X, n.Y, n.Z),
		})
	}
	edges := make([]nodegraph.EdgeRecord, 0, len(d.Edges))
	for _, e := range d.Edges {
		edges = append(edges, nodegraph.EdgeRecord{
			Index: e.Index,
			Node1: e.Node1,
			Node2: e.Node2,
			Width: e.Width,
		})
	}
	g, err := nodegraph.Restore(nodes, edges)
	if err != nil {
		return nil, err
	}

	for _, nd := range d.Nodes {
		n, ok := g.GetNode(nodegraph.ByIndex(nd.Index))
		if !ok {
			return nil, fmt.Errorf("node %d: %w", nd.Index, ErrNeighborMismatch)
		}
		if !sameNeighbors(n, nd.Neighbors) {
			return nil, fmt.Errorf("node %d: %w", nd.Index, ErrNeighborMismatch)
		}
	}
	return g, nil
}

func sameNeighbors(n nodegraph.Node, docs []NeighborDoc) bool {
	if len(n.Neighbors) != len(docs) {
		return false
	}
	have := make([]NeighborDoc, 0, len(n.Neighbors))
	for _, p := range n.Neighbors {
		node, _ := p.NodeIndex()
		edge, _ := p.EdgeIndex()
		have = append(have, NeighborDoc{Node: node, Edge: edge})
	}
	byNode := func(a, b NeighborDoc) int {
		if a.Node != b.Node {
			return a.Node - b.Node
		}
		return a.Edge - b.Edge
	}
	want := slices.Clone(docs)
	slices.SortFunc(have, byNode)
	slices.SortFunc(want, byNode)
	return slices.Equal(have, want)
}

// Encode writes g to w in the given format
func Encode(w io.Writer, g *nodegraph.NodeGraph, format Format) error {
	doc, err := FromGraph(g)
	if err != nil {
		return err
	}

	switch format {
	case FormatXML:
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode xml: %w", err)
		}
		_, err = io.WriteString(w, "\n")
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// Decode reads a graph in the given format from r
func Decode(r io.Reader, format Format) (*nodegraph.NodeGraph, error) {
	var doc Document
	switch format {
	case FormatXML:
		if err := xml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode xml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatYAML:
		// An empty stream is an empty graph.
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return doc.Graph()
}

// Save writes g to path. An empty format is derived from the extension.
func Save(path string, g *nodegraph.NodeGraph, format Format) (err error) {
	if format == "" {
		if format, err = FormatFor(path); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, g, format)
}

// Load reads a graph from path, picking the format from its extension
func Load(path string) (*nodegraph.NodeGraph, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	g, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
