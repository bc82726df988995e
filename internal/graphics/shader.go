package graphics

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Uniform and attribute names shared by the mesh shader pair.
const (
	UniformLight = "light"
	UniformMVP   = "mvp"

	AttribVertex = "in_vert"
	AttribNormal = "in_norm"
	AttribColor  = "in_color"
)

// MeshVertexShader passes position, normal and color through and projects the
// position with the mvp uniform.
const MeshVertexShader = `#version 410 core

uniform mat4 mvp;
in vec3 in_vert;
in vec3 in_norm;
in vec3 in_color;
out vec3 v_vert;
out vec3 v_norm;
out vec3 v_color;

void main() {
    v_vert = in_vert;
    v_norm = in_norm;
    v_color = in_color;
    gl_Position = mvp * vec4(v_vert, 1.0);
}
`

// MeshFragmentShader darkens the color by the angle between the normal and the
// direction from the light to the fragment. See Luminance.
const MeshFragmentShader = `#version 410 core

uniform vec3 light;
in vec3 v_vert;
in vec3 v_norm;
in vec3 v_color;

out vec4 f_color;

void main() {
    float lum = dot(normalize(v_norm), normalize(v_vert - light));
    lum = acos(lum) / 3.14159265;
    lum = clamp(lum, 0.0, 1.0);

    f_color = vec4(v_color * lum, 1.0);
}
`

// shaderDriver is the part of GL that building a program needs.
type shaderDriver interface {
	compileShader(source string, shaderType uint32) (uint32, error)
	createProgram() uint32
	linkProgram(program, vertexShader, fragmentShader uint32) error
	deleteShader(shader uint32)
}

// buildProgram compiles and links the pair. The shader objects are released
// on every path; a linked program keeps what it needs.
func buildProgram(d shaderDriver, vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := d.compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer d.deleteShader(vertexShader)

	fragmentShader, err := d.compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer d.deleteShader(fragmentShader)

	program := d.createProgram()
	if program == 0 {
		return 0, fmt.Errorf("%w: glCreateProgram returned 0", ErrRenderResource)
	}
	if err := d.linkProgram(program, vertexShader, fragmentShader); err != nil {
		return 0, err
	}
	return program, nil
}

// glDriver talks to the current GL context.
type glDriver struct{}

func (glDriver) createProgram() uint32 {
	return gl.CreateProgram()
}

func (glDriver) deleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (glDriver) linkProgram(program, vertexShader, fragmentShader uint32) error {
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return fmt.Errorf("%w: failed to link program: %v", ErrRenderResource, log)
	}
	return nil
}

func (glDriver) compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: failed to compile shader: %v", ErrRenderResource, log)
	}
	return shader, nil
}
