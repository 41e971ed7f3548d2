// Package renderer draws ribbon meshes and debug overlays with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/uispline/internal/engine/extrude"
	"github.com/Faultbox/uispline/internal/engine/shader"
	"github.com/Faultbox/uispline/internal/engine/uispline"
	"github.com/Faultbox/uispline/internal/logger"
	"github.com/Faultbox/uispline/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [4]float32
}

const vertexStride = int32(unsafe.Sizeof(extrude.Vertex{}))

// Renderer uploads ribbon meshes to the GPU and draws them with overlays.
type Renderer struct {
	config Config

	ribbon *shader.Program
	flat   *shader.Program

	meshVAO, meshVBO, meshEBO uint32
	indexCount                int32

	lineVAO, lineVBO uint32
	lineCount        int32

	quadVAO, quadVBO uint32

	viewProj math.Mat4
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg, viewProj: math.Identity()}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Ribbons are flat and may be seen from either side; blending handles
	// gradient alpha.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])

	var err error
	if r.ribbon, err = shader.NewProgram(shader.RibbonVertex, shader.RibbonFragment); err != nil {
		return nil, fmt.Errorf("ribbon program: %w", err)
	}
	if r.flat, err = shader.NewProgram(shader.FlatVertex, shader.FlatFragment); err != nil {
		r.ribbon.Delete()
		return nil, fmt.Errorf("flat program: %w", err)
	}

	r.createMeshBuffers()
	r.createLineBuffers()
	r.createQuad()
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vao := range []*uint32{&r.meshVAO, &r.lineVAO, &r.quadVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, buf := range []*uint32{&r.meshVBO, &r.meshEBO, &r.lineVBO, &r.quadVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
		}
	}
	if r.ribbon != nil {
		r.ribbon.Delete()
	}
	if r.flat != nil {
		r.flat.Delete()
	}
}

// Resize handles framebuffer resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// SetViewProj sets the camera matrix for subsequent draws.
func (r *Renderer) SetViewProj(m math.Mat4) {
	r.viewProj = m
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// UploadMesh replaces the GPU copy of the ribbon mesh.
func (r *Renderer) UploadMesh(m *extrude.Mesh) {
	gl.BindVertexArray(r.meshVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		r.indexCount = 0
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(vertexStride), unsafe.Pointer(&m.Vertices[0]), gl.DYNAMIC_DRAW)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.DYNAMIC_DRAW)
		r.indexCount = int32(len(m.Indices))
	}
	gl.BindVertexArray(0)
	logger.Debug("mesh uploaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
	)
}

// DrawMesh draws the uploaded ribbon. tint multiplies every vertex color;
// stripe in [0,1] darkens alternate UV tiles.
func (r *Renderer) DrawMesh(tint [4]float32, stripe float32) {
	if r.indexCount == 0 {
		return
	}
	r.ribbon.Use()
	r.ribbon.SetMat4("uViewProj", r.viewProj)
	r.ribbon.SetVec4("uTint", tint)
	r.ribbon.SetFloat("uStripe", stripe)
	gl.BindVertexArray(r.meshVAO)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// DrawLines draws points as a line list.
func (r *Renderer) DrawLines(points []math.Vec3, color [4]float32) {
	if len(points) < 2 {
		return
	}
	data := make([]float32, 0, len(points)*3)
	for _, p := range points {
		data = append(data, p.X, p.Y, p.Z)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STREAM_DRAW)
	r.lineCount = int32(len(points))

	r.flat.Use()
	r.flat.SetMat4("uViewProj", r.viewProj)
	r.flat.SetMat4("uModel", math.Identity())
	r.flat.SetVec4("uColor", color)
	gl.BindVertexArray(r.lineVAO)
	gl.DrawArrays(gl.LINES, 0, r.lineCount)
	gl.BindVertexArray(0)
}

// DrawMarkers draws each marker as a unit quad scaled by its size.
func (r *Renderer) DrawMarkers(markers []uispline.Marker) {
	if len(markers) == 0 {
		return
	}
	r.flat.Use()
	r.flat.SetMat4("uViewProj", r.viewProj)
	gl.BindVertexArray(r.quadVAO)
	for _, m := range markers {
		r.flat.SetMat4("uModel", m.Transform())
		r.flat.SetVec4("uColor", m.Color.Array())
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) createMeshBuffers() {
	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)
	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	gl.GenBuffers(1, &r.meshEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, unsafe.Offsetof(extrude.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)
	// UV (location = 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride, unsafe.Offsetof(extrude.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)
	// Color (location = 2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, vertexStride, unsafe.Offsetof(extrude.Vertex{}.Color))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	logger.Debug("mesh buffers created", zap.Uint32("vao", r.meshVAO))
}

func (r *Renderer) createLineBuffers() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

func (r *Renderer) createQuad() {
	quad := []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		-0.5, 0.5, 0,
		0.5, 0.5, 0,
	}
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, unsafe.Pointer(&quad[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}
