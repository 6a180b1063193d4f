package world

import (
	"os"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/stride-sim/stride/oerror"
)

// arenaFile is the on-disk YAML layout of a world.
type arenaFile struct {
	Name  string     `yaml:"name"`
	Spawn []float32  `yaml:"spawn"`
	Boxes []arenaBox `yaml:"boxes"`
}

type arenaBox struct {
	Min    []float32 `yaml:"min"`
	Max    []float32 `yaml:"max"`
	Layers []string  `yaml:"layers"`
}

// LoadArena reads a world definition from a YAML file.
func LoadArena(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerror.New("world: unable to read arena file: %v", err)
	}
	return ParseArena(data)
}

// ParseArena decodes a world definition from YAML data.
func ParseArena(data []byte) (*World, error) {
	var file arenaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, oerror.New("world: malformed arena file: %v", err)
	}

	spawn := mgl32.Vec3{}
	if len(file.Spawn) != 0 {
		if len(file.Spawn) != 3 {
			return nil, oerror.New("world: arena spawn must have 3 components, got %d", len(file.Spawn))
		}
		spawn = mgl32.Vec3{file.Spawn[0], file.Spawn[1], file.Spawn[2]}
	}

	boxes := make([]Box, 0, len(file.Boxes))
	for i, b := range file.Boxes {
		if len(b.Min) != 3 || len(b.Max) != 3 {
			return nil, oerror.New("world: arena box %d must have 3-component min and max", i)
		}
		for axis := 0; axis < 3; axis++ {
			if b.Min[axis] >= b.Max[axis] {
				return nil, oerror.New("world: arena box %d has min >= max on axis %d", i, axis)
			}
		}

		layers, err := parseLayers(b.Layers)
		if err != nil {
			return nil, oerror.New("world: arena box %d: %v", i, err)
		}
		boxes = append(boxes, Box{
			Bounds: cube.Box(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2]),
			Layers: layers,
		})
	}

	return New(file.Name, spawn, boxes), nil
}

// parseLayers maps layer names to the Layer bitmask. Boxes with no layer list
// default to colliding and obstructing.
func parseLayers(names []string) (Layer, error) {
	if len(names) == 0 {
		return LayerAll, nil
	}

	var mask Layer
	for _, name := range names {
		switch name {
		case "world":
			mask |= LayerWorld
		case "obstacle":
			mask |= LayerObstacle
		default:
			return 0, oerror.New("unknown layer %q", name)
		}
	}
	return mask, nil
}
