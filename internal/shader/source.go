package shader

import (
	"embed"
	"fmt"
	"math"
)

//go:embed glsl/sine.vert glsl/sine.frag
var sources embed.FS

func header(d Dialect) string {
	if d == GLSLES300 {
		return "#version 300 es\nprecision highp float;\n"
	}
	return "#version 330 core\n"
}

// Source returns the shader for stage in the given dialect.
func Source(d Dialect, stage Stage) (string, error) {
	name := "glsl/sine.vert"
	if stage == FragmentStage {
		name = "glsl/sine.frag"
	}
	body, err := sources.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return header(d) + string(body), nil
}

// WaveY evaluates the vertex shader's curve on the CPU: the vertical pixel
// position of column x, measured from the bottom edge.
func WaveY(x, height, amplitude, wavelength, speed, t float64) float64 {
	return height*0.5 + amplitude*math.Sin(2*math.Pi*(x-speed*t)/wavelength)
}
