package ebiten2D

import (
	"regexp"
	"testing"

	"mode7/internal/mode7"
)

func TestKageUniforms(t *testing.T) {
	for _, name := range mode7.PlaneUniforms {
		if name == mode7.UniformMap {
			continue
		}
		kname, ok := kageUniforms[name]
		if !ok {
			t.Errorf("uniform %q has no Kage name", name)
			continue
		}
		re := regexp.MustCompile(`(?m)^var ` + kname + ` \w+$`)
		if !re.Match(planeShaderSource) {
			t.Errorf("Kage kernel is expected to declare %s", kname)
		}
	}
	if !regexp.MustCompile(`(?m)^var ` + uniformTargetSize + ` vec2$`).Match(planeShaderSource) {
		t.Errorf("Kage kernel is expected to declare %s", uniformTargetSize)
	}
}

type otherTexture struct{}

func (otherTexture) Size() (int, int) { return 1, 1 }

func TestPlaneProgramUniforms(t *testing.T) {
	p := &planeProgram{uniforms: map[string]any{}}

	p.SetFloat(mode7.UniformZoom, 80)
	p.SetInt(mode7.UniformWrap, 1)
	p.SetVec2(mode7.UniformCamPos, mode7.Vec2{X: 3, Y: 4})
	p.SetMat2(mode7.UniformCamRot, mode7.Mat2{M0: 1, M1: 2, M2: 3, M3: 4})
	p.SetFloat("unknown", 1)

	if v, ok := p.uniforms["Zoom"].(float32); !ok || v != 80 {
		t.Errorf("Zoom is expected to be float32 80, got %#v", p.uniforms["Zoom"])
	}
	if v, ok := p.uniforms["Wrap"].(int); !ok || v != 1 {
		t.Errorf("Wrap is expected to be int 1, got %#v", p.uniforms["Wrap"])
	}
	if v, ok := p.uniforms["CamPos"].([]float32); !ok || len(v) != 2 || v[0] != 3 || v[1] != 4 {
		t.Errorf("CamPos is expected to be [3 4], got %#v", p.uniforms["CamPos"])
	}
	if v, ok := p.uniforms["CamRot"].([]float32); !ok || len(v) != 4 || v[1] != 2 || v[2] != 3 {
		t.Errorf("CamRot is expected to be [1 2 3 4], got %#v", p.uniforms["CamRot"])
	}
	if len(p.uniforms) != 4 {
		t.Errorf("unknown uniforms are expected to be dropped, got %v", p.uniforms)
	}

	p.SetTexture(mode7.UniformMap, otherTexture{})
	if p.texture != nil {
		t.Error("foreign texture is expected to be ignored")
	}
}

func TestKeyBindings(t *testing.T) {
	for a := mode7.ActionLeft; a <= mode7.ActionOffsetDown; a++ {
		if len(KeyBindings[a]) == 0 {
			t.Errorf("action %d has no key", a)
		}
	}
}
