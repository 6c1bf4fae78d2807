package ebiten2D

import (
	"fmt"

	"mode7/internal/mode7"
	"mode7/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
)

// uniformTargetSize is set by the device on every draw; ebiten has no
// normalised destination coordinate.
const uniformTargetSize = "TargetSize"

// Kage only exposes exported uniforms.
var kageUniforms = map[string]string{
	mode7.UniformMapSize: "MapSize",
	mode7.UniformCamPos:  "CamPos",
	mode7.UniformCamRot:  "CamRot",
	mode7.UniformOffset:  "Offset",
	mode7.UniformZoom:    "Zoom",
	mode7.UniformFOV:     "FOV",
	mode7.UniformWrap:    "Wrap",
}

var planeShaderSource = []byte(`//kage:unit pixels

package main

var TargetSize vec2
var MapSize vec2
var CamPos vec2
var CamRot vec4
var Offset float
var Zoom float
var FOV float
var Wrap int

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	st := (dstPos.xy - imageDstOrigin()) / TargetSize
	p := (vec2(0.5, Offset) - st) * vec2(Zoom, Zoom/FOV)
	r := vec2(p.x*CamRot.x+p.y*CamRot.y, p.x*CamRot.z+p.y*CamRot.w)
	uv := (r/st.y + CamPos) / MapSize

	if Wrap == 0 && (uv.x < 0 || uv.x > 1 || uv.y < 0 || uv.y > 1) {
		return vec4(0)
	}

	return imageSrc0At(imageSrc0Origin() + fract(uv)*imageSrc0Size())
}
`)

type planeProgram struct {
	shader   *ebiten.Shader
	uniforms map[string]any
	texture  *Texture
}

func loadPlaneProgram() (*planeProgram, error) {
	shader, err := ebiten.NewShader(planeShaderSource)
	if err != nil {
		return nil, fmt.Errorf("ebiten2D: compile plane shader: %w", err)
	}
	utils.Info("Shader: plane - compiled Kage kernel")
	return &planeProgram{
		shader:   shader,
		uniforms: make(map[string]any, len(kageUniforms)+1),
	}, nil
}

func (p *planeProgram) set(name string, v any) {
	kname, ok := kageUniforms[name]
	if !ok {
		utils.Warn("Shader: plane - unknown uniform %s", name)
		return
	}
	p.uniforms[kname] = v
}

func (p *planeProgram) SetFloat(name string, v float32)   { p.set(name, v) }
func (p *planeProgram) SetInt(name string, v int32)       { p.set(name, int(v)) }
func (p *planeProgram) SetVec2(name string, v mode7.Vec2) { p.set(name, []float32{v.X, v.Y}) }
func (p *planeProgram) SetMat2(name string, m mode7.Mat2) {
	p.set(name, []float32{m.M0, m.M1, m.M2, m.M3})
}

func (p *planeProgram) SetTexture(name string, t mode7.Texture) {
	if name != mode7.UniformMap {
		utils.Warn("Shader: plane - unknown sampler %s", name)
		return
	}
	tex, ok := t.(*Texture)
	if !ok {
		utils.Warn("Shader: plane - map is not an ebiten image (%T)", t)
		return
	}
	p.texture = tex
}

func (p *planeProgram) Unload() {
	if p.shader != nil {
		p.shader.Deallocate()
		p.shader = nil
	}
	p.texture = nil
}
