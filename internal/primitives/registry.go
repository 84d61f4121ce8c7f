package primitives

import (
	"silly-billy/internal/mesh"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// cached holds the unit mesh and lit material for one mesh kind. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps mesh kinds to GPU meshes. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[mesh.Kind]cached
	lightDir [3]float32 // direction to light (normalized)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[mesh.Kind]cached),
		lightDir: [3]float32{0.5, 1, 0.5}, // from above-right
	}
}

// SetLight sets the direction to the light.
func (r *Registry) SetLight(lightDir [3]float32) {
	r.lightDir = lightDir
}

const (
	sphereRings  = 16
	sphereSlices = 16
)

// ensure creates the unit mesh for kind: a 1×1×1 cube, a diameter-1 sphere or a 1×1 XZ plane.
// Mesh.Transform scales them to size.
func (r *Registry) ensure(kind mesh.Kind) (cached, bool) {
	if c, ok := r.cache[kind]; ok {
		return c, true
	}
	var m rl.Mesh
	switch kind {
	case mesh.KindBox:
		m = rl.GenMeshCube(1, 1, 1)
	case mesh.KindSphere:
		m = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	case mesh.KindPlane:
		m = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: m, mtl: mtl}
	r.cache[kind] = c
	return c, true
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragNormal = normalize(mat3(matNormal) * vertexNormal);
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS is a Lambert shade: ambient plus one directional light, no highlight.
	litFS = `#version 330
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor * lightIntensity;
  finalColor = vec4(ambient.rgb * colDiffuse.rgb + diffuse, colDiffuse.a);
}
`
)

// ambient is the soft fill so faces turned away from the light keep their colour.
var ambient = [4]float32{0.6, 0.6, 0.6, 1.0}

var lightColor = [3]float32{1.0, 1.0, 1.0}

const lightIntensity = float32(0.8)

// setUniforms sets lightDir, ambient and light color on the given shader (cgo-safe: local arrays).
func (r *Registry) setUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{ambient[0], ambient[1], ambient[2], ambient[3]}
	col := [3]float32{lightColor[0], lightColor[1], lightColor[2]}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, col[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{lightIntensity}, rl.ShaderUniformFloat)
	}
}

// Draw draws m with its colour at its current pose. Must be called between BeginMode3D and EndMode3D.
// Unknown kinds are skipped.
func (r *Registry) Draw(m *mesh.Mesh) {
	c, ok := r.ensure(m.Kind)
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = m.Color
	}
	r.setUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, Matrix(m.Transform()))
}

// Unload frees every cached GPU mesh and material. Call before closing the window.
func (r *Registry) Unload() {
	for kind, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, kind)
	}
}

// Matrix converts a column-major mgl32 matrix into raylib's layout.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
