package graphics

import (
	"voxmesh/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GPUMesh holds the GL objects for one uploaded MeshBuffer.
type GPUMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// UploadMesh copies buf into a new VAO with interleaved position, normal
// and UV attributes at locations 0, 1 and 2. buf is not retained.
func UploadMesh(buf *meshing.MeshBuffer) *GPUMesh {
	m := &GPUMesh{indexCount: int32(buf.IndexCount())}
	if buf.Empty() {
		return m
	}
	vertices := buf.Interleaved()

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(buf.Indices)*4, gl.Ptr(buf.Indices), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	// unbind to reduce accidental state changes
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return m
}

// Draw issues one indexed draw call.
func (m *GPUMesh) Draw() {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// Delete frees the GL objects.
func (m *GPUMesh) Delete() {
	if m.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
