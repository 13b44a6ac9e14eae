package scene

import (
	"lightlab/mesh"
)

// Node is anything a Group can hold: a *Model or a Light.
type Node interface {
	node()
}

// Model pairs a mesh with the material it is drawn with. Several models
// may share one mesh.
type Model struct {
	Name     string
	Mesh     *mesh.Mesh
	Material Material
}

func NewModel(name string, m *mesh.Mesh, mat Material) *Model {
	return &Model{Name: name, Mesh: m, Material: mat}
}

func (*Model) node() {}

// Group is an ordered collection of models and lights. Membership is by
// identity, so the same light added twice is stored twice.
type Group struct {
	children []Node
}

func NewGroup(children ...Node) *Group {
	g := &Group{}
	for _, c := range children {
		g.Add(c)
	}
	return g
}

// Add appends n. Nil nodes are ignored.
func (g *Group) Add(n Node) {
	if n == nil {
		return
	}
	g.children = append(g.children, n)
}

// Remove deletes the first occurrence of n and reports whether it was
// present.
func (g *Group) Remove(n Node) bool {
	for i, c := range g.children {
		if c == n {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

func (g *Group) Contains(n Node) bool {
	for _, c := range g.children {
		if c == n {
			return true
		}
	}
	return false
}

// Replace swaps old for n in place, keeping its position. If old is not
// present n is appended.
func (g *Group) Replace(old, n Node) {
	for i, c := range g.children {
		if c == old {
			g.children[i] = n
			return
		}
	}
	g.Add(n)
}

func (g *Group) Len() int {
	return len(g.children)
}

// Children returns a copy of the group's nodes in order.
func (g *Group) Children() []Node {
	return append([]Node(nil), g.children...)
}

func (g *Group) Lights() []Light {
	var out []Light
	for _, c := range g.children {
		if l, ok := c.(Light); ok {
			out = append(out, l)
		}
	}
	return out
}

func (g *Group) Models() []*Model {
	var out []*Model
	for _, c := range g.children {
		if m, ok := c.(*Model); ok {
			out = append(out, m)
		}
	}
	return out
}
