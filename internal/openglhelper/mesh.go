package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex represents a 3D vertex with position, texture coordinates and normal
type Vertex struct {
	Position  mgl32.Vec3
	TexCoords mgl32.Vec2
	Normal    mgl32.Vec3
}

// floatsPerVertex is the interleaved layout: position (3), texcoord (2), normal (3)
const floatsPerVertex = 8

// PatchMesh is indexed geometry drawn as tessellation patches
type PatchMesh struct {
	vao           *VertexArrayObject
	vbo           *BufferObject
	ebo           *BufferObject
	indexCount    int32
	patchVertices int32
}

// NewPatchMesh uploads vertices and indices; every patchVertices indices form one patch
func NewPatchMesh(vertices []Vertex, indices []uint16, patchVertices int32) *PatchMesh {
	data := make([]float32, 0, len(vertices)*floatsPerVertex)
	for _, v := range vertices {
		data = append(data,
			v.Position[0], v.Position[1], v.Position[2],
			v.TexCoords[0], v.TexCoords[1],
			v.Normal[0], v.Normal[1], v.Normal[2],
		)
	}

	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(data, StaticDraw)
	ebo := NewEBO(indices, StaticDraw)

	stride := int32(floatsPerVertex * 4)
	// Position attribute (3 floats)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, stride, 0)
	// Texture coordinates attribute (2 floats)
	vao.SetVertexAttribPointer(1, 2, gl.FLOAT, false, stride, 3*4)
	// Normal attribute (3 floats)
	vao.SetVertexAttribPointer(2, 3, gl.FLOAT, false, stride, 5*4)

	// Unbind VAO
	vao.Unbind()

	return &PatchMesh{
		vao:           vao,
		vbo:           vbo,
		ebo:           ebo,
		indexCount:    int32(len(indices)),
		patchVertices: patchVertices,
	}
}

// Draw issues the patches with whatever program is bound
func (m *PatchMesh) Draw() {
	m.vao.Bind()
	gl.PatchParameteri(gl.PATCH_VERTICES, m.patchVertices)
	gl.DrawElements(gl.PATCHES, m.indexCount, gl.UNSIGNED_SHORT, nil)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *PatchMesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// NewQuad creates a unit quad in the XZ plane facing +Y, split into two
// triangle patches.
func NewQuad() *PatchMesh {
	up := mgl32.Vec3{0, 1, 0}
	vertices := []Vertex{
		{Position: mgl32.Vec3{-1, 0, -1}, TexCoords: mgl32.Vec2{0, 0}, Normal: up},
		{Position: mgl32.Vec3{1, 0, -1}, TexCoords: mgl32.Vec2{1, 0}, Normal: up},
		{Position: mgl32.Vec3{1, 0, 1}, TexCoords: mgl32.Vec2{1, 1}, Normal: up},
		{Position: mgl32.Vec3{-1, 0, 1}, TexCoords: mgl32.Vec2{0, 1}, Normal: up},
	}
	indices := []uint16{
		3, 2, 0,
		0, 2, 1,
	}
	return NewPatchMesh(vertices, indices, 3)
}
