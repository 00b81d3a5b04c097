package emit

import "fmt"

// Dialect holds the Java names one mapping set uses for the shape API.
type Dialect struct {
	Name       string
	Imports    []string
	Cuboid     string // factory for one box in 0..16 units
	Union      string // varargs union of shapes
	Empty      string // shape with no boxes
	SupplierOf string // wraps the initializer of every field
}

var (
	// MCP is the Forge mapping set up to 1.16.
	MCP = Dialect{
		Name: "mcp",
		Imports: []string{
			"net.minecraft.block.Block",
			"net.minecraft.util.Util",
			"net.minecraft.util.math.shapes.VoxelShape",
			"net.minecraft.util.math.shapes.VoxelShapes",
		},
		Cuboid:     "Block.makeCuboidShape",
		Union:      "VoxelShapes.or",
		Empty:      "VoxelShapes.empty()",
		SupplierOf: "Util.make",
	}

	// Yarn is the Fabric mapping set.
	Yarn = Dialect{
		Name: "yarn",
		Imports: []string{
			"net.minecraft.block.Block",
			"net.minecraft.util.Util",
			"net.minecraft.util.shape.VoxelShape",
			"net.minecraft.util.shape.VoxelShapes",
		},
		Cuboid:     "Block.createCuboidShape",
		Union:      "VoxelShapes.union",
		Empty:      "VoxelShapes.empty()",
		SupplierOf: "Util.make",
	}

	// Mojang is the official mapping set (Forge and NeoForge from 1.17,
	// every loader once the game ships unobfuscated).
	Mojang = Dialect{
		Name: "mojang",
		Imports: []string{
			"net.minecraft.Util",
			"net.minecraft.world.level.block.Block",
			"net.minecraft.world.phys.shapes.Shapes",
			"net.minecraft.world.phys.shapes.VoxelShape",
		},
		Cuboid:     "Block.box",
		Union:      "Shapes.or",
		Empty:      "Shapes.empty()",
		SupplierOf: "Util.make",
	}
)

// DialectByName returns the dialect called name.
func DialectByName(name string) (Dialect, error) {
	for _, d := range []Dialect{MCP, Yarn, Mojang} {
		if d.Name == name {
			return d, nil
		}
	}
	return Dialect{}, fmt.Errorf("unknown mappings %q", name)
}
