package scene

// Material describes how a model's surface responds to light. The concrete
// types are *DiffuseMaterial, *SpecularMaterial, *EmissiveMaterial and
// *MaterialGroup. A nil Material leaves the model undrawn.
type Material interface {
	material()
}

// DiffuseMaterial scatters incoming ambient and direct light evenly.
type DiffuseMaterial struct {
	Name  string
	Brush Brush
}

// SpecularMaterial adds highlights. Higher SpecularPower gives smaller,
// sharper highlights.
type SpecularMaterial struct {
	Name          string
	Brush         Brush
	SpecularPower float64
}

// EmissiveMaterial adds its brush color regardless of lighting.
type EmissiveMaterial struct {
	Name  string
	Brush Brush
}

// MaterialGroup layers its children in order, each one adding to the
// result of those before it.
type MaterialGroup struct {
	Name     string
	Children []Material
}

func NewDiffuseMaterial(b Brush) *DiffuseMaterial { return &DiffuseMaterial{Brush: b} }

func NewSpecularMaterial(b Brush, power float64) *SpecularMaterial {
	return &SpecularMaterial{Brush: b, SpecularPower: power}
}

func NewEmissiveMaterial(b Brush) *EmissiveMaterial { return &EmissiveMaterial{Brush: b} }

func NewMaterialGroup(children ...Material) *MaterialGroup {
	return &MaterialGroup{Children: children}
}

func (*DiffuseMaterial) material()  {}
func (*SpecularMaterial) material() {}
func (*EmissiveMaterial) material() {}
func (*MaterialGroup) material()    {}

// Layers flattens m into the ordered list of leaf materials to draw.
// Nested groups are expanded depth-first and nil entries are skipped.
func Layers(m Material) []Material {
	var out []Material
	var walk func(Material)
	walk = func(m Material) {
		switch m := m.(type) {
		case nil:
		case *MaterialGroup:
			if m == nil {
				return
			}
			for _, c := range m.Children {
				walk(c)
			}
		default:
			out = append(out, m)
		}
	}
	walk(m)
	return out
}

// LayerBrush returns the brush of a leaf material, or nil.
func LayerBrush(m Material) Brush {
	switch m := m.(type) {
	case *DiffuseMaterial:
		return m.Brush
	case *SpecularMaterial:
		return m.Brush
	case *EmissiveMaterial:
		return m.Brush
	}
	return nil
}
