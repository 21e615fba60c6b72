// Package renderer provides OpenGL rendering for the wireframe viewer.
//
// Geometry is submitted every frame as world-space line segments with
// per-vertex color, batched on the CPU, and drawn in a single call with one
// view-projection uniform. At the viewer's scale (a few hundred segments)
// this keeps the GL surface tiny.
package renderer

import (
	"fmt"
	gomath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubelink/internal/engine/shader"
	"github.com/Faultbox/cubelink/internal/logger"
	"github.com/Faultbox/cubelink/pkg/math"
)

const vertexShaderSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uMVP;

out vec3 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const fragmentShaderSrc = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vColor, 1.0);
}
`

// floatsPerVertex is position xyz plus color rgb.
const floatsPerVertex = 6

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float64 // vertical field of view, degrees
	Near   float64
	Far    float64
}

// Color is an RGB line color.
type Color [3]float32

// Renderer batches world-space line segments and draws them with a single
// view-projection matrix.
type Renderer struct {
	config Config

	program *shader.Program
	vao     uint32
	vbo     uint32

	verts  []float32
	vboCap int // floats currently allocated on the GPU
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.08, 0.09, 0.12, 1.0) // Dark blue-gray background

	var err error
	r.program, err = shader.Build(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.createLineBuffer()

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Projection returns the perspective projection for the current size.
func (r *Renderer) Projection() math.Mat4 {
	aspect := float64(r.config.Width) / float64(r.config.Height)
	fovRad := r.config.FOV * gomath.Pi / 180
	return math.Perspective(fovRad, aspect, r.config.Near, r.config.Far)
}

// Begin starts a new frame: clears the screen and the line batch.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.verts = r.verts[:0]
}

// Line batches one world-space segment.
func (r *Renderer) Line(a, b math.Vec3, c Color) {
	r.verts = append(r.verts,
		float32(a.X), float32(a.Y), float32(a.Z), c[0], c[1], c[2],
		float32(b.X), float32(b.Y), float32(b.Z), c[0], c[1], c[2],
	)
}

// Corner numbering encodes the sign of each axis in one bit: bit 0 is x,
// bit 1 is y, bit 2 is z. Each edge joins two corners differing in one bit.
var boxEdges = [12][2]int{
	{0, 1}, {0, 2}, {0, 4},
	{3, 1}, {3, 2}, {3, 7},
	{5, 1}, {5, 4}, {5, 7},
	{6, 2}, {6, 4}, {6, 7},
}

// Box batches the 12 edges of an axis-aligned cube of the given half size,
// placed by the transform.
func (r *Renderer) Box(t math.Transform, half float64, c Color) {
	var corners [8]math.Vec3
	for i := range corners {
		local := math.Vec3{X: -half, Y: -half, Z: -half}
		if i&1 != 0 {
			local.X = half
		}
		if i&2 != 0 {
			local.Y = half
		}
		if i&4 != 0 {
			local.Z = half
		}
		corners[i] = t.Apply(local)
	}
	for _, e := range boxEdges {
		r.Line(corners[e[0]], corners[e[1]], c)
	}
}

// Cross batches a small axis-aligned marker centered on p.
func (r *Renderer) Cross(p math.Vec3, size float64, c Color) {
	r.Line(math.Vec3{X: p.X - size, Y: p.Y, Z: p.Z}, math.Vec3{X: p.X + size, Y: p.Y, Z: p.Z}, c)
	r.Line(math.Vec3{X: p.X, Y: p.Y - size, Z: p.Z}, math.Vec3{X: p.X, Y: p.Y + size, Z: p.Z}, c)
	r.Line(math.Vec3{X: p.X, Y: p.Y, Z: p.Z - size}, math.Vec3{X: p.X, Y: p.Y, Z: p.Z + size}, c)
}

// Grid batches a square XZ reference grid centered on p with the given half
// extent and line spacing.
func (r *Renderer) Grid(p math.Vec3, half, step float64, c Color) {
	if step <= 0 {
		return
	}
	for d := -half; d <= half+step/2; d += step {
		r.Line(
			math.Vec3{X: p.X - half, Y: p.Y, Z: p.Z + d},
			math.Vec3{X: p.X + half, Y: p.Y, Z: p.Z + d},
			c,
		)
		r.Line(
			math.Vec3{X: p.X + d, Y: p.Y, Z: p.Z - half},
			math.Vec3{X: p.X + d, Y: p.Y, Z: p.Z + half},
			c,
		)
	}
}

// End uploads the batch and draws it with the given view-projection matrix.
func (r *Renderer) End(viewProj math.Mat4) {
	if len(r.verts) == 0 {
		return
	}

	r.program.Use()
	r.program.SetMat4("uMVP", viewProj.Float32())

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(r.verts) > r.vboCap {
		// Grow the GPU buffer; orphaning keeps uploads cheap per frame.
		r.vboCap = len(r.verts) * 2
		gl.BufferData(gl.ARRAY_BUFFER, r.vboCap*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.verts)*4, unsafe.Pointer(&r.verts[0]))

	gl.DrawArrays(gl.LINES, 0, int32(len(r.verts)/floatsPerVertex))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// ReadPixels reads back the current framebuffer as tightly packed RGBA
// bytes, rows bottom-up as GL delivers them.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// createLineBuffer creates the dynamic VAO/VBO for the line batch.
func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	r.vboCap = 8192 * floatsPerVertex
	gl.BufferData(gl.ARRAY_BUFFER, r.vboCap*4, nil, gl.DYNAMIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, floatsPerVertex*4, nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, floatsPerVertex*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("line buffer created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
}
