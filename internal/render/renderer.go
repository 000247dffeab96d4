// Package render draws the editor's scene with OpenGL. It must be used on
// the thread that owns the GL context.
package render

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog"

	"scene-editor/editor"
	"scene-editor/math"
	"scene-editor/scene"
)

// gpuMesh holds the OpenGL buffer objects for an uploaded mesh.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	count      int32
	hasIndices bool
}

type uniforms struct {
	projection, modelView, bone           int32
	light1, light2                        int32
	ambient1, diffuse1, specular1         int32
	ambient2, diffuse2, specular2         int32
	shininess, texScale, alpha, texSample int32
}

// Renderer uploads meshes and textures on first use and issues one draw
// call per visible object.
type Renderer struct {
	program  uint32
	loc      uniforms
	meshes   scene.MeshProvider
	textures scene.TextureProvider
	poses    scene.PoseEvaluator
	log      zerolog.Logger

	gpuMeshes   map[scene.MeshID]*gpuMesh
	gpuTextures map[scene.TextureID]uint32
	failed      map[string]bool
}

const vertSrc = `
#version 410 core
layout(location = 0) in vec3 vPosition;
layout(location = 1) in vec3 vNormal;
layout(location = 2) in vec2 vTexCoord;

uniform mat4 Projection;
uniform mat4 ModelView;
uniform mat4 BoneTransform;

out vec3 fPosition;
out vec3 fNormal;
out vec2 fTexCoord;

void main() {
    vec4 pos = ModelView * BoneTransform * vec4(vPosition, 1.0);
    fPosition = pos.xyz;
    fNormal = normalize((ModelView * BoneTransform * vec4(vNormal, 0.0)).xyz);
    fTexCoord = vTexCoord;
    gl_Position = Projection * pos;
}
` + "\x00"

const fragSrc = `
#version 410 core
in vec3 fPosition;
in vec3 fNormal;
in vec2 fTexCoord;

uniform vec4 LightPosition1;
uniform vec4 LightPosition2;
uniform vec3 AmbientProduct1, DiffuseProduct1, SpecularProduct1;
uniform vec3 AmbientProduct2, DiffuseProduct2, SpecularProduct2;
uniform float Shininess;
uniform float TexScale;
uniform float Alpha;
uniform sampler2D Texture;

out vec4 outColor;

vec3 shade(vec4 light, vec3 ambient, vec3 diffuse, vec3 specular) {
    vec3 toLight = light.xyz - fPosition;
    float dist = length(toLight);
    vec3 L = toLight / dist;
    vec3 E = normalize(-fPosition);
    vec3 H = normalize(L + E);
    vec3 N = normalize(fNormal);
    float kd = max(dot(L, N), 0.0);
    float ks = kd > 0.0 ? pow(max(dot(N, H), 0.0), Shininess) : 0.0;
    float atten = 1.0 / (1.0 + 0.5 * dist * dist);
    return ambient + atten * (kd * diffuse + ks * specular);
}

void main() {
    vec3 lit = shade(LightPosition1, AmbientProduct1, DiffuseProduct1, SpecularProduct1)
             + shade(LightPosition2, AmbientProduct2, DiffuseProduct2, SpecularProduct2);
    vec4 tex = texture(Texture, fTexCoord * TexScale);
    outColor = vec4(lit * tex.rgb, Alpha * tex.a);
}
` + "\x00"

// New compiles the shaders. The GL context must be current.
func New(meshes scene.MeshProvider, textures scene.TextureProvider, poses scene.PoseEvaluator, log zerolog.Logger) (*Renderer, error) {
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Info().Str("version", version).Msg("OpenGL ready")

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}
	u := func(name string) int32 {
		return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	}
	return &Renderer{
		program: prog,
		loc: uniforms{
			projection: u("Projection"),
			modelView:  u("ModelView"),
			bone:       u("BoneTransform"),
			light1:     u("LightPosition1"),
			light2:     u("LightPosition2"),
			ambient1:   u("AmbientProduct1"),
			diffuse1:   u("DiffuseProduct1"),
			specular1:  u("SpecularProduct1"),
			ambient2:   u("AmbientProduct2"),
			diffuse2:   u("DiffuseProduct2"),
			specular2:  u("SpecularProduct2"),
			shininess:  u("Shininess"),
			texScale:   u("TexScale"),
			alpha:      u("Alpha"),
			texSample:  u("Texture"),
		},
		meshes:      meshes,
		textures:    textures,
		poses:       poses,
		log:         log,
		gpuMeshes:   make(map[scene.MeshID]*gpuMesh),
		gpuTextures: make(map[scene.TextureID]uint32),
		failed:      make(map[string]bool),
	}, nil
}

// Draw renders one frame of ed's scene. Objects whose mesh or texture
// cannot be loaded are skipped and reported once.
func (r *Renderer) Draw(ed *editor.Editor) {
	gl.UseProgram(r.program)
	projection := ed.Projection().Matrix()
	setMat4(r.loc.projection, &projection)
	lights := ed.Lights()
	gl.Uniform4f(r.loc.light1, lights[0].X, lights[0].Y, lights[0].Z, lights[0].W)
	gl.Uniform4f(r.loc.light2, lights[1].X, lights[1].Y, lights[1].Z, lights[1].W)
	gl.Uniform1i(r.loc.texSample, 0)

	for item := range ed.Draws() {
		mesh := r.mesh(item.Mesh)
		tex, ok := r.texture(item.Texture)
		if mesh == nil || !ok {
			continue
		}
		bones, err := r.poses.EvaluatePose(item.Mesh, 0, item.PoseTime)
		if err != nil {
			r.report(fmt.Sprintf("pose %d", item.Mesh), err)
			continue
		}
		setMat4(r.loc.modelView, &item.ModelView)
		setMat4(r.loc.bone, &bones[0])
		setProducts(r.loc.ambient1, r.loc.diffuse1, r.loc.specular1, item.Lights[0])
		setProducts(r.loc.ambient2, r.loc.diffuse2, r.loc.specular2, item.Lights[1])
		gl.Uniform1f(r.loc.shininess, item.Shininess)
		gl.Uniform1f(r.loc.texScale, item.TextureScale)
		gl.Uniform1f(r.loc.alpha, item.Alpha)

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.BindVertexArray(mesh.vao)
		if mesh.hasIndices {
			gl.DrawElements(gl.TRIANGLES, mesh.count, gl.UNSIGNED_INT, nil)
		} else {
			gl.DrawArrays(gl.TRIANGLES, 0, mesh.count)
		}
	}
	gl.BindVertexArray(0)
}

// Mat4 rows are contiguous, which is the column-major layout of the
// transposed matrix GLSL multiplies from the left.
func setMat4(loc int32, m *math.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, (*float32)(unsafe.Pointer(&m[0][0])))
}

func setProducts(ambient, diffuse, specular int32, p scene.Products) {
	gl.Uniform3f(ambient, p.Ambient.R, p.Ambient.G, p.Ambient.B)
	gl.Uniform3f(diffuse, p.Diffuse.R, p.Diffuse.G, p.Diffuse.B)
	gl.Uniform3f(specular, p.Specular.R, p.Specular.G, p.Specular.B)
}

func (r *Renderer) report(key string, err error) {
	if r.failed[key] {
		return
	}
	r.failed[key] = true
	r.log.Warn().Err(err).Str("resource", key).Msg("skipping object")
}

// mesh uploads interleaved position/normal/uv data on first use.
func (r *Renderer) mesh(id scene.MeshID) *gpuMesh {
	if gpu, ok := r.gpuMeshes[id]; ok {
		return gpu
	}
	key := fmt.Sprintf("mesh %d", id)
	if r.failed[key] {
		return nil
	}
	data, err := r.meshes.Mesh(id)
	if err != nil {
		r.report(key, err)
		return nil
	}
	if len(data.Positions) == 0 {
		r.report(key, fmt.Errorf("mesh %q has no vertices", data.Name))
		return nil
	}

	const stride = 8
	verts := make([]float32, 0, len(data.Positions)*stride)
	for i, p := range data.Positions {
		var n [3]float32
		var uv [2]float32
		if i < len(data.Normals) {
			n = data.Normals[i]
		}
		if i < len(data.UVs) {
			uv = data.UVs[i]
		}
		verts = append(verts, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}

	gpu := &gpuMesh{
		count:      int32(len(data.Positions)),
		hasIndices: len(data.Indices) > 0,
	}
	if gpu.hasIndices {
		gpu.count = int32(len(data.Indices))
	}

	gl.GenVertexArrays(1, &gpu.vao)
	gl.GenBuffers(1, &gpu.vbo)
	gl.BindVertexArray(gpu.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride*4, gl.PtrOffset(6*4))

	if gpu.hasIndices {
		gl.GenBuffers(1, &gpu.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	r.gpuMeshes[id] = gpu
	return gpu
}

func (r *Renderer) texture(id scene.TextureID) (uint32, bool) {
	if tex, ok := r.gpuTextures[id]; ok {
		return tex, true
	}
	key := fmt.Sprintf("texture %d", id)
	if r.failed[key] {
		return 0, false
	}
	img, err := r.textures.Texture(id)
	if err != nil {
		r.report(key, err)
		return 0, false
	}
	if len(img.Pixels) == 0 {
		r.report(key, fmt.Errorf("texture %q is empty", img.Name))
		return 0, false
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Width), int32(img.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	r.gpuTextures[id] = tex
	return tex, true
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for id, gpu := range r.gpuMeshes {
		gl.DeleteVertexArrays(1, &gpu.vao)
		gl.DeleteBuffers(1, &gpu.vbo)
		if gpu.hasIndices {
			gl.DeleteBuffers(1, &gpu.ebo)
		}
		delete(r.gpuMeshes, id)
	}
	for id, tex := range r.gpuTextures {
		gl.DeleteTextures(1, &tex)
		delete(r.gpuTextures, id)
	}
	gl.DeleteProgram(r.program)
}

// ── shader helpers ────────────────────────────────────────────────────────────

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
