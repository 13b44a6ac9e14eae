// Package opengl draws scene groups with OpenGL 4.1. A model is drawn once
// per material layer; the first layer writes color and depth, later layers
// are added on top.
package opengl

import (
	"fmt"
	"log/slog"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"lightlab/camera"
	"lightlab/core"
	"lightlab/internal/shading"
	"lightlab/mesh"
	"lightlab/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

type pointLocs struct {
	color, pos, atten, rng int32
}

type spotLocs struct {
	pointLocs
	dir, cosOuter, cosInner int32
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	viewProjLoc  int32
	cameraPosLoc int32

	ambientLoc  int32
	dirCountLoc int32
	dirColorLoc [shading.MaxDirectional]int32
	dirDirLoc   [shading.MaxDirectional]int32

	pointCountLoc int32
	pointLoc      [shading.MaxPoint]pointLocs

	spotCountLoc int32
	spotLoc      [shading.MaxSpot]spotLocs

	passKindLoc      int32
	passColorLoc     int32
	specularPowerLoc int32
	brushTexLoc      int32
	hasBrushTexLoc   int32

	// Background is the clear color.
	Background core.Color

	viewportW int32
	viewportH int32

	wireframe     bool
	warnedDropped bool

	gpuMeshes map[*mesh.Mesh]*GPUMesh
	textures  map[scene.Brush]uint32
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// Meshes are already in world space, so one matrix serves every model.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 viewProj;

out vec3 fragNormal;
out vec2 fragUV;
out vec3 fragWorldPos;

void main() {
    fragNormal   = inNormal;
    fragUV       = inUV;
    fragWorldPos = inPosition;
    gl_Position  = viewProj * vec4(inPosition, 1.0);
}
` + "\x00"

const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec2 fragUV;
in vec3 fragWorldPos;

out vec4 outColor;

#define MAX_DIR_LIGHTS   4
#define MAX_POINT_LIGHTS 8
#define MAX_SPOT_LIGHTS  4

#define PASS_DIFFUSE  0
#define PASS_SPECULAR 1
#define PASS_EMISSIVE 2

uniform vec3 ambientColor;

uniform int  dirLightCount;
uniform vec3 dirLightColor[MAX_DIR_LIGHTS];
uniform vec3 dirLightDir[MAX_DIR_LIGHTS];

uniform int   pointLightCount;
uniform vec3  pointLightColor[MAX_POINT_LIGHTS];
uniform vec3  pointLightPos[MAX_POINT_LIGHTS];
uniform vec3  pointLightAtten[MAX_POINT_LIGHTS];
uniform float pointLightRange[MAX_POINT_LIGHTS];

uniform int   spotLightCount;
uniform vec3  spotLightColor[MAX_SPOT_LIGHTS];
uniform vec3  spotLightPos[MAX_SPOT_LIGHTS];
uniform vec3  spotLightAtten[MAX_SPOT_LIGHTS];
uniform float spotLightRange[MAX_SPOT_LIGHTS];
uniform vec3  spotLightDir[MAX_SPOT_LIGHTS];
uniform float spotLightCosOuter[MAX_SPOT_LIGHTS];
uniform float spotLightCosInner[MAX_SPOT_LIGHTS];

uniform vec3 cameraPos;

uniform int       passKind;
uniform vec4      passColor;
uniform float     specularPower;
uniform sampler2D brushTex;
uniform bool      hasBrushTex;

// range 0 means unlimited
float attenuation(vec3 k, float range, float d) {
    if (range > 0.0 && d > range) return 0.0;
    return 1.0 / max(k.x + k.y * d + k.z * d * d, 1e-4);
}

vec3 reflected(vec3 N, vec3 L, vec3 V, vec3 color) {
    float NdL = dot(N, L);
    if (NdL <= 0.0) return vec3(0.0);
    if (passKind == PASS_SPECULAR) {
        vec3 H = normalize(L + V);
        return color * pow(max(dot(N, H), 0.0), specularPower);
    }
    return color * NdL;
}

void main() {
    vec4 tint = passColor;
    if (hasBrushTex) {
        tint *= texture(brushTex, fragUV);
    }
    vec3 base = tint.rgb;
    if (passKind == PASS_EMISSIVE) {
        outColor = vec4(base, tint.a);
        return;
    }

    vec3 N = normalize(fragNormal);
    vec3 V = normalize(cameraPos - fragWorldPos);
    vec3 light = vec3(0.0);
    if (passKind == PASS_DIFFUSE) {
        light += ambientColor;
    }

    for (int i = 0; i < dirLightCount; i++) {
        light += reflected(N, -dirLightDir[i], V, dirLightColor[i]);
    }
    for (int i = 0; i < pointLightCount; i++) {
        vec3 toLight = pointLightPos[i] - fragWorldPos;
        float d = length(toLight);
        vec3 L = toLight / max(d, 1e-6);
        light += reflected(N, L, V, pointLightColor[i]) *
                 attenuation(pointLightAtten[i], pointLightRange[i], d);
    }
    for (int i = 0; i < spotLightCount; i++) {
        vec3 toLight = spotLightPos[i] - fragWorldPos;
        float d = length(toLight);
        vec3 L = toLight / max(d, 1e-6);
        float cd = dot(-L, spotLightDir[i]);
        float width = max(spotLightCosInner[i] - spotLightCosOuter[i], 1e-4);
        float cone = clamp((cd - spotLightCosOuter[i]) / width, 0.0, 1.0);
        light += reflected(N, L, V, spotLightColor[i]) * cone *
                 attenuation(spotLightAtten[i], spotLightRange[i], d);
    }

    outColor = vec4(base * light, tint.a);
}
` + "\x00"

// NewRenderer initialises OpenGL on the current context and compiles the
// shaders.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	slog.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Only front faces are drawn; models have no back material.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)

	loc := func(name string) int32 {
		return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	}
	at := func(name string, i int) int32 {
		return loc(fmt.Sprintf("%s[%d]", name, i))
	}

	r := &Renderer{
		program:      prog,
		viewProjLoc:  loc("viewProj"),
		cameraPosLoc: loc("cameraPos"),

		ambientLoc:    loc("ambientColor"),
		dirCountLoc:   loc("dirLightCount"),
		pointCountLoc: loc("pointLightCount"),
		spotCountLoc:  loc("spotLightCount"),

		passKindLoc:      loc("passKind"),
		passColorLoc:     loc("passColor"),
		specularPowerLoc: loc("specularPower"),
		brushTexLoc:      loc("brushTex"),
		hasBrushTexLoc:   loc("hasBrushTex"),

		Background: core.ColorBlack,

		gpuMeshes: make(map[*mesh.Mesh]*GPUMesh),
		textures:  make(map[scene.Brush]uint32),
	}
	for i := range r.dirColorLoc {
		r.dirColorLoc[i] = at("dirLightColor", i)
		r.dirDirLoc[i] = at("dirLightDir", i)
	}
	for i := range r.pointLoc {
		r.pointLoc[i] = pointLocs{
			color: at("pointLightColor", i),
			pos:   at("pointLightPos", i),
			atten: at("pointLightAtten", i),
			rng:   at("pointLightRange", i),
		}
	}
	for i := range r.spotLoc {
		r.spotLoc[i] = spotLocs{
			pointLocs: pointLocs{
				color: at("spotLightColor", i),
				pos:   at("spotLightPos", i),
				atten: at("spotLightAtten", i),
				rng:   at("spotLightRange", i),
			},
			dir:      at("spotLightDir", i),
			cosOuter: at("spotLightCosOuter", i),
			cosInner: at("spotLightCosInner", i),
		}
	}

	// brush textures on unit 0
	gl.UseProgram(prog)
	gl.Uniform1i(r.brushTexLoc, 0)

	return r, nil
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ── Wireframe ─────────────────────────────────────────────────────────────────

// SetWireframe toggles wireframe rendering mode.
func (r *Renderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// IsWireframe returns whether wireframe mode is active.
func (r *Renderer) IsWireframe() bool {
	return r.wireframe
}

// ── Draw ──────────────────────────────────────────────────────────────────────

// Draw clears the frame and renders every model in g lit by every light in
// g. Models without material layers are skipped.
func (r *Renderer) Draw(g *scene.Group, cam *camera.Camera, aspect float64) {
	gl.ClearColor(r.Background.R, r.Background.G, r.Background.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	vp := cam.ViewProjection(aspect).Float32()
	gl.UniformMatrix4fv(r.viewProjLoc, 1, false, &vp[0])
	eye := cam.Position.Float32()
	gl.Uniform3f(r.cameraPosLoc, eye[0], eye[1], eye[2])
	r.applyLights(shading.PackLights(g.Lights()))

	for _, m := range g.Models() {
		passes := shading.Passes(m.Material)
		if len(passes) == 0 {
			continue
		}
		gpu := r.ensureUploaded(m.Mesh)
		if gpu == nil {
			continue
		}
		r.drawPasses(gpu, passes)
	}
}

func (r *Renderer) drawPasses(gpu *GPUMesh, passes []shading.Pass) {
	gl.BindVertexArray(gpu.VAO)
	for i, p := range passes {
		if i == 1 {
			gl.Enable(gl.BLEND)
			gl.DepthFunc(gl.LEQUAL)
			gl.DepthMask(false)
		}
		if i > 0 {
			switch p.Blend {
			case shading.BlendAdd:
				gl.BlendFunc(gl.ONE, gl.ONE)
			default:
				gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			}
		}
		r.applyPass(p)
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	}
	if len(passes) > 1 {
		gl.Disable(gl.BLEND)
		gl.DepthFunc(gl.LESS)
		gl.DepthMask(true)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) applyLights(l shading.Lights) {
	if l.Dropped > 0 && !r.warnedDropped {
		slog.Warn("too many lights, extra lights ignored", "dropped", l.Dropped)
		r.warnedDropped = true
	}

	gl.Uniform3f(r.ambientLoc, l.Ambient[0], l.Ambient[1], l.Ambient[2])

	gl.Uniform1i(r.dirCountLoc, int32(len(l.Directional)))
	for i, d := range l.Directional {
		gl.Uniform3fv(r.dirColorLoc[i], 1, &d.Color[0])
		gl.Uniform3fv(r.dirDirLoc[i], 1, &d.Direction[0])
	}

	gl.Uniform1i(r.pointCountLoc, int32(len(l.Point)))
	for i, p := range l.Point {
		setPoint(r.pointLoc[i], p)
	}

	gl.Uniform1i(r.spotCountLoc, int32(len(l.Spot)))
	for i, s := range l.Spot {
		locs := r.spotLoc[i]
		setPoint(locs.pointLocs, s.PointLight)
		gl.Uniform3fv(locs.dir, 1, &s.Direction[0])
		gl.Uniform1f(locs.cosOuter, s.CosOuter)
		gl.Uniform1f(locs.cosInner, s.CosInner)
	}
}

func setPoint(locs pointLocs, p shading.PointLight) {
	gl.Uniform3fv(locs.color, 1, &p.Color[0])
	gl.Uniform3fv(locs.pos, 1, &p.Position[0])
	gl.Uniform3fv(locs.atten, 1, &p.Attenuation[0])
	gl.Uniform1f(locs.rng, p.Range)
}

func (r *Renderer) applyPass(p shading.Pass) {
	gl.Uniform1i(r.passKindLoc, int32(p.Kind))
	gl.Uniform4f(r.passColorLoc, p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	gl.Uniform1f(r.specularPowerLoc, p.SpecularPower)

	if p.Brush == nil {
		gl.Uniform1i(r.hasBrushTexLoc, 0)
		return
	}
	tex, err := r.brushTexture(p.Brush)
	if err != nil {
		slog.Error("brush texture", "err", err)
		gl.Uniform1i(r.hasBrushTexLoc, 0)
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(r.hasBrushTexLoc, 1)
}

// ── Resource management ───────────────────────────────────────────────────────

func (r *Renderer) ensureUploaded(m *mesh.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[m]; ok {
		return gpu
	}
	if m == nil || m.IsEmpty() {
		return nil
	}

	vertices := shading.PackVertices(m)
	indices := m.Indices()
	const stride = int32(shading.VertexStride * 4)

	gpu := &GPUMesh{IndexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	slog.Debug("mesh uploaded", "vertices", m.VertexCount(), "triangles", m.TriangleCount())
	r.gpuMeshes[m] = gpu
	return gpu
}

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(m *mesh.Mesh) {
	if gpu, ok := r.gpuMeshes[m]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		delete(r.gpuMeshes, m)
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for m := range r.gpuMeshes {
		r.ReleaseMesh(m)
	}
	for b, tex := range r.textures {
		deleteTexture(tex)
		delete(r.textures, b)
	}
	gl.DeleteProgram(r.program)
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
