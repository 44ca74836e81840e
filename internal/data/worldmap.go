package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldMap holds the layered grid description of one world: named tile
// layers (flat gid arrays) and object layers (placed objects with float
// geometry and free-form properties). Immutable after load.
type WorldMap struct {
	Width    int
	Height   int
	TileSize float64

	tileLayers       map[string]*TileLayer
	objectLayers     map[string]*ObjectLayer
	tileLayerOrder   []string
	objectLayerOrder []string
}

// TileLayer is a named 2D array of global tile identifiers, 0 = empty.
type TileLayer struct {
	Name   string
	Width  int
	Height int
	cells  []int // row-major [y*Width+x]
}

// GID returns the global tile id at (x, y), or 0 when out of bounds.
func (l *TileLayer) GID(x, y int) int {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return 0
	}
	return l.cells[y*l.Width+x]
}

// ObjectLayer is a named list of placed objects.
type ObjectLayer struct {
	Name    string
	Objects []PlacedObject
}

// PlacedObject is one placed map object. GID is 0 for plain shapes
// (e.g. hand-authored obstacle rectangles); position and size are in
// unscaled map units.
type PlacedObject struct {
	Name       string
	GID        int
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Properties map[string]any
}

// TileLayer returns the named tile layer, or nil when absent. A missing
// layer is never an error; callers treat nil as an empty layer.
func (m *WorldMap) TileLayer(name string) *TileLayer {
	return m.tileLayers[name]
}

// ObjectLayer returns the named object layer, or nil when absent.
func (m *WorldMap) ObjectLayer(name string) *ObjectLayer {
	return m.objectLayers[name]
}

// TileLayers returns all tile layers in the order they were declared.
func (m *WorldMap) TileLayers() []*TileLayer {
	out := make([]*TileLayer, 0, len(m.tileLayers))
	for _, name := range m.tileLayerOrder {
		out = append(out, m.tileLayers[name])
	}
	return out
}

// ObjectLayers returns all object layers in declaration order.
func (m *WorldMap) ObjectLayers() []*ObjectLayer {
	out := make([]*ObjectLayer, 0, len(m.objectLayers))
	for _, name := range m.objectLayerOrder {
		out = append(out, m.objectLayers[name])
	}
	return out
}

// --- YAML document shapes ---

type worldFile struct {
	Width    int         `yaml:"width"`
	Height   int         `yaml:"height"`
	TileSize float64     `yaml:"tile_size"`
	Layers   []layerNode `yaml:"layers"`
}

type layerNode struct {
	Name    string       `yaml:"name"`
	Type    string       `yaml:"type"` // "tiles" or "objects"
	Data    []int        `yaml:"data,omitempty"`
	Objects []objectNode `yaml:"objects,omitempty"`
}

type objectNode struct {
	Name       string         `yaml:"name"`
	GID        int            `yaml:"gid"`
	X          float64        `yaml:"x"`
	Y          float64        `yaml:"y"`
	Width      float64        `yaml:"width"`
	Height     float64        `yaml:"height"`
	Properties map[string]any `yaml:"properties"`
}

// LoadWorldMap loads a world document from a YAML file.
func LoadWorldMap(path string) (*WorldMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world map %s: %w", path, err)
	}
	var f worldFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse world map %s: %w", path, err)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("world map %s: bad dimensions %dx%d", path, f.Width, f.Height)
	}
	if f.TileSize <= 0 {
		return nil, fmt.Errorf("world map %s: bad tile_size %v", path, f.TileSize)
	}

	m := &WorldMap{
		Width:        f.Width,
		Height:       f.Height,
		TileSize:     f.TileSize,
		tileLayers:   make(map[string]*TileLayer),
		objectLayers: make(map[string]*ObjectLayer),
	}

	for _, node := range f.Layers {
		switch node.Type {
		case "", "tiles":
			cells := make([]int, f.Width*f.Height)
			// Short data is padded with empty tiles, excess is dropped.
			copy(cells, node.Data)
			m.tileLayers[node.Name] = &TileLayer{
				Name:   node.Name,
				Width:  f.Width,
				Height: f.Height,
				cells:  cells,
			}
			m.tileLayerOrder = append(m.tileLayerOrder, node.Name)
		case "objects":
			layer := &ObjectLayer{Name: node.Name}
			for _, o := range node.Objects {
				layer.Objects = append(layer.Objects, PlacedObject{
					Name:       o.Name,
					GID:        o.GID,
					X:          o.X,
					Y:          o.Y,
					Width:      o.Width,
					Height:     o.Height,
					Properties: o.Properties,
				})
			}
			m.objectLayers[node.Name] = layer
			m.objectLayerOrder = append(m.objectLayerOrder, node.Name)
		default:
			return nil, fmt.Errorf("world map %s: layer %q has unknown type %q", path, node.Name, node.Type)
		}
	}

	return m, nil
}

// NewWorldMap builds a world map in memory. Used by tests and tools that
// generate synthetic worlds instead of loading an asset file.
func NewWorldMap(width, height int, tileSize float64) *WorldMap {
	return &WorldMap{
		Width:        width,
		Height:       height,
		TileSize:     tileSize,
		tileLayers:   make(map[string]*TileLayer),
		objectLayers: make(map[string]*ObjectLayer),
	}
}

// SetTileLayer installs a tile layer from row-major cells. Panics on a
// size mismatch; synthetic worlds are built before the index, never after.
func (m *WorldMap) SetTileLayer(name string, cells []int) *TileLayer {
	if len(cells) != m.Width*m.Height {
		panic(fmt.Sprintf("tile layer %s: %d cells for %dx%d grid", name, len(cells), m.Width, m.Height))
	}
	l := &TileLayer{Name: name, Width: m.Width, Height: m.Height, cells: cells}
	if m.tileLayers[name] == nil {
		m.tileLayerOrder = append(m.tileLayerOrder, name)
	}
	m.tileLayers[name] = l
	return l
}

// SetObjectLayer installs an object layer.
func (m *WorldMap) SetObjectLayer(name string, objects []PlacedObject) *ObjectLayer {
	l := &ObjectLayer{Name: name, Objects: objects}
	if m.objectLayers[name] == nil {
		m.objectLayerOrder = append(m.objectLayerOrder, name)
	}
	m.objectLayers[name] = l
	return l
}
