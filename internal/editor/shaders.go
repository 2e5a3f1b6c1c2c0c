package editor

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Particle vertex shader: expands each particle's 6 identical center
// vertices into a quad according to the render mode. Velocity and age ride
// along so orientation and the atlas frame are computed here instead of on
// the CPU.
const particleVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aTexCoord;
layout(location = 2) in vec4 aColor;
layout(location = 3) in float aSize;
layout(location = 4) in vec3 aVelocity;
layout(location = 5) in float aAge;

uniform mat4 view;
uniform mat4 projection;
uniform int renderMode; // 0=Normal 1=Linked 2=Billboard_Local_Z 3=Billboard_World_Z 4=Aligned_World_Z 5=Aligned_Particle_Dir 6=Motion_Blur
uniform int xGrid;
uniform int yGrid;
uniform float fps;
uniform float frameStart;
uniform float frameEnd;

out vec2 TexCoord;
out vec4 Color;

void main() {
    vec3 right, up;

    if (renderMode == 0) { // face camera
        right = normalize(vec3(view[0][0], view[1][0], view[2][0]));
        up = normalize(vec3(view[0][1], view[1][1], view[2][1]));
        vec3 pos = aPos + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * view * vec4(pos, 1.0);
    }
    else if (renderMode == 2 || renderMode == 3) { // axis-locked billboards
        right = vec3(1.0, 0.0, 0.0);
        up = vec3(0.0, 1.0, 0.0);
        vec3 pos = aPos + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * view * vec4(pos, 1.0);
    }
    else if (renderMode == 4) { // perpendicular to ground
        right = vec3(1.0, 0.0, 0.0);
        up = vec3(0.0, 0.0, 1.0);
        vec3 pos = aPos + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * view * vec4(pos, 1.0);
    }
    else if (renderMode == 5) { // track motion direction
        vec3 dir = normalize(aVelocity);
        right = normalize(cross(dir, vec3(0.0, 0.0, 1.0)));
        up = cross(right, dir);
        vec3 pos = aPos + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * view * vec4(pos, 1.0);
    }
    else if (renderMode == 6) { // stretch along velocity
        float speed = length(aVelocity);
        vec3 dir = speed > 0.01 ? normalize(aVelocity) : vec3(0.0, 0.0, 1.0);
        float stretch = min(speed * 0.1, 2.0);
        right = normalize(cross(dir, vec3(0.0, 0.0, 1.0)));
        up = dir;
        vec3 pos = aPos + (right * (aTexCoord.x - 0.5) * aSize + up * (aTexCoord.y - 0.5) * aSize * (1.0 + stretch));
        gl_Position = projection * view * vec4(pos, 1.0);
    }
    else { // Linked: offset in camera space, perspective-correct
        vec4 viewPos = view * vec4(aPos, 1.0);
        right = vec3(view[0][0], view[1][0], view[2][0]);
        up = vec3(view[0][1], view[1][1], view[2][1]);
        vec3 pos = viewPos.xyz + (right * (aTexCoord.x - 0.5) + up * (aTexCoord.y - 0.5)) * aSize;
        gl_Position = projection * vec4(pos, 1.0);
    }

    vec2 tc = aTexCoord;
    if (xGrid > 1 || yGrid > 1) {
        float totalFrames = frameEnd - frameStart + 1.0;
        float currentFrame = frameStart + mod(aAge * fps, totalFrames);
        int frameIndex = int(currentFrame);
        int frameX = frameIndex % xGrid;
        int frameY = frameIndex / xGrid;
        vec2 frameSize = vec2(1.0 / float(xGrid), 1.0 / float(yGrid));
        tc = vec2(float(frameX), float(frameY)) * frameSize + aTexCoord * frameSize;
    }

    TexCoord = tc;
    Color = aColor;
}
` + "\x00"

// Particle fragment shader: texture or soft circular fallback, with the
// alpha test that makes punch-through blending work.
const particleFragSrc = `#version 410 core

in vec2 TexCoord;
in vec4 Color;
out vec4 FragColor;

uniform sampler2D particleTexture;
uniform bool hasTexture;

void main() {
    vec4 texColor = vec4(1.0);
    if (hasTexture) {
        texColor = texture(particleTexture, TexCoord);
    } else {
        float dist = distance(TexCoord, vec2(0.5));
        texColor = vec4(1.0, 1.0, 1.0, 1.0 - smoothstep(0.3, 0.5, dist));
    }

    FragColor = Color * texColor;
    if (FragColor.a < 0.01) {
        discard;
    }
}
` + "\x00"

// Line vertex shader for grid, wireframes and gizmos.
const lineVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;

uniform mat4 view;
uniform mat4 projection;
uniform mat4 model;

void main() {
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
` + "\x00"

const lineFragSrc = `#version 410 core

out vec4 FragColor;
uniform vec3 lineColor;

void main() {
    FragColor = vec4(lineColor, 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
