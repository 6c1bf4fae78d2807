package engine2D

import (
	"fmt"
	"math"
	"strings"

	"mode7/internal/mode7"
	"mode7/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// planeVertexShader is raylib's default GLSL 330 vertex stage.
const planeVertexShader = `#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;

uniform mat4 mvp;

out vec2 fragTexCoord;
out vec4 fragColor;

void main() {
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// planeFragmentShader maps every target pixel back onto the plane.
// fragTexCoord is the normalised position in the target, v growing downwards.
const planeFragmentShader = `#version 330

in vec2 fragTexCoord;
in vec4 fragColor;

out vec4 finalColor;

uniform sampler2D map;
uniform vec2 mapSize;
uniform vec2 camPos;
uniform vec4 camRot;
uniform float offset;
uniform float zoom;
uniform float fov;
uniform int wrap;

void main() {
    vec2 p = (vec2(0.5, offset) - fragTexCoord) * vec2(zoom, zoom / fov);
    vec2 r = vec2(p.x * camRot.x + p.y * camRot.y, p.x * camRot.z + p.y * camRot.w);
    vec2 uv = (r / fragTexCoord.y + camPos) / mapSize;

    if (wrap == 0 && (uv.x < 0.0 || uv.x > 1.0 || uv.y < 0.0 || uv.y > 1.0)) {
        finalColor = vec4(0.0);
        return;
    }

    finalColor = texture(map, fract(uv));
}
`

type planeProgram struct {
	shader    rl.Shader
	locations map[string]int32
	texture   *Texture
}

func loadPlaneProgram() (*planeProgram, error) {
	var shader rl.Shader
	var panicErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = fmt.Errorf("engine2D: plane shader compilation panic: %v", r)
			}
		}()
		shader = rl.LoadShaderFromMemory(planeVertexShader, planeFragmentShader)
	}()
	if panicErr != nil {
		return nil, panicErr
	}
	if shader.ID == 0 {
		return nil, fmt.Errorf("engine2D: plane shader failed to compile")
	}

	p := &planeProgram{
		shader:    shader,
		locations: make(map[string]int32, len(mode7.PlaneUniforms)),
	}

	var missing []string
	for _, name := range mode7.PlaneUniforms {
		loc := rl.GetShaderLocation(shader, name)
		if loc == -1 {
			missing = append(missing, name)
			continue
		}
		p.locations[name] = loc
	}
	if len(missing) > 0 {
		rl.UnloadShader(shader)
		return nil, fmt.Errorf("engine2D: plane shader is missing uniforms %s", strings.Join(missing, ", "))
	}

	utils.Info("Shader: plane - Loaded successfully (ID: %d)", shader.ID)
	return p, nil
}

func (p *planeProgram) set(name string, values []float32, uniformType rl.ShaderUniformDataType) {
	loc, ok := p.locations[name]
	if !ok {
		utils.Warn("Shader: plane - unknown uniform %s", name)
		return
	}
	rl.SetShaderValue(p.shader, loc, values, uniformType)
}

func (p *planeProgram) SetFloat(name string, v float32) {
	p.set(name, []float32{v}, rl.ShaderUniformFloat)
}

// SetInt passes the integer bit pattern; raylib reads int uniforms from the
// same float slice.
func (p *planeProgram) SetInt(name string, v int32) {
	p.set(name, []float32{math.Float32frombits(uint32(v))}, rl.ShaderUniformInt)
}

func (p *planeProgram) SetVec2(name string, v mode7.Vec2) {
	p.set(name, []float32{v.X, v.Y}, rl.ShaderUniformVec2)
}

func (p *planeProgram) SetMat2(name string, m mode7.Mat2) {
	p.set(name, mat2Values(m), rl.ShaderUniformVec4)
}

// SetTexture keeps the map for the next DrawPlane. Samplers are only bound
// while the shader is active.
func (p *planeProgram) SetTexture(name string, t mode7.Texture) {
	if name != mode7.UniformMap {
		utils.Warn("Shader: plane - unknown sampler %s", name)
		return
	}
	tex, ok := t.(*Texture)
	if !ok {
		utils.Warn("Shader: plane - map is not a raylib texture (%T)", t)
		return
	}
	p.texture = tex
}

func (p *planeProgram) bindTexture() {
	if p.texture != nil {
		rl.SetShaderValueTexture(p.shader, p.locations[mode7.UniformMap], p.texture.Texture2D)
	}
}

func (p *planeProgram) Unload() {
	if p.shader.ID != 0 {
		rl.UnloadShader(p.shader)
		p.shader = rl.Shader{}
	}
	p.texture = nil
}

// mat2Values packs m in the order the shader reads camRot.
func mat2Values(m mode7.Mat2) []float32 {
	return []float32{m.M0, m.M1, m.M2, m.M3}
}
