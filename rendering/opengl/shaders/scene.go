package shaders

// Mesh vertex layout shared by spheres and rings: position, normal, uv
const meshVertex = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in vec3 normal;
layout (location = 2) in vec2 uv;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 worldPos;
out vec3 worldNormal;
out vec2 texCoord;

void main() {
    vec4 wp = model * vec4(position, 1.0);
    worldPos = wp.xyz;
    worldNormal = normalize(mat3(model) * normal);
    texCoord = uv;
    gl_Position = projection * view * wp;
}
`

// Planets: lit by the sun at the origin plus a directional fill, with a
// little emission from the texture so the night side is never black.
const bodyFragment = `
#version 410 core

in vec3 worldPos;
in vec3 worldNormal;
in vec2 texCoord;

uniform sampler2D albedo;
uniform vec3 tint;
uniform float emissive;
uniform float sunLight;

out vec4 outColor;

void main() {
    vec3 base = texture(albedo, texCoord).rgb * tint;
    vec3 n = normalize(worldNormal);

    vec3 toSun = normalize(-worldPos);
    float point = max(dot(n, toSun), 0.0) * 2.0 * sunLight;
    float fill = max(dot(n, normalize(vec3(5.0, 3.0, 5.0))), 0.0) * 0.5;
    float ambient = 0.4;

    vec3 lit = base * (ambient + point + fill) + base * emissive * 0.2;
    outColor = vec4(lit, 1.0);
}
`

// Glow shells and the sun halo: flat color, alpha blended
const glowFragment = `
#version 410 core

in vec3 worldPos;
in vec3 worldNormal;
in vec2 texCoord;

uniform vec3 color;
uniform float opacity;

out vec4 outColor;

void main() {
    outColor = vec4(color, opacity);
}
`

// Rings: translucent band, slightly brighter toward the inner edge
const ringFragment = `
#version 410 core

in vec3 worldPos;
in vec3 worldNormal;
in vec2 texCoord;

uniform vec3 color;
uniform float opacity;

out vec4 outColor;

void main() {
    float edge = 1.0 - 0.4 * texCoord.y;
    outColor = vec4(color * edge, opacity);
}
`

// Points: stars, sparkles, particles. Size is in world units and
// attenuates with distance.
const pointVertex = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in vec4 color;
layout (location = 2) in float size;

uniform mat4 view;
uniform mat4 projection;
uniform float viewportHeight;

out vec4 fragColor;

void main() {
    vec4 eye = view * vec4(position, 1.0);
    gl_Position = projection * eye;
    gl_PointSize = max(1.0, size * viewportHeight * 0.5 / max(-eye.z, 0.001));
    fragColor = color;
}
`

const pointFragment = `
#version 410 core

in vec4 fragColor;
out vec4 outColor;

void main() {
    vec2 c = gl_PointCoord * 2.0 - 1.0;
    float d = dot(c, c);
    if (d > 1.0) {
        discard;
    }
    outColor = vec4(fragColor.rgb, fragColor.a * (1.0 - d * 0.5));
}
`

// Lines reuse the point layout; size is ignored
const lineVertex = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in vec4 color;
layout (location = 2) in float size;

uniform mat4 view;
uniform mat4 projection;

out vec4 fragColor;

void main() {
    gl_Position = projection * view * vec4(position, 1.0);
    fragColor = color;
}
`

const lineFragment = `
#version 410 core

in vec4 fragColor;
out vec4 outColor;

void main() {
    outColor = fragColor;
}
`

// NewBodyProgram compiles the textured, lit planet shader
func NewBodyProgram() (*Program, error) {
	return NewProgram("body", meshVertex, bodyFragment)
}

// NewGlowProgram compiles the flat translucent shell shader
func NewGlowProgram() (*Program, error) {
	return NewProgram("glow", meshVertex, glowFragment)
}

// NewRingProgram compiles the ring band shader
func NewRingProgram() (*Program, error) {
	return NewProgram("ring", meshVertex, ringFragment)
}

// NewPointProgram compiles the round point sprite shader
func NewPointProgram() (*Program, error) {
	return NewProgram("point", pointVertex, pointFragment)
}

// NewLineProgram compiles the shooting star line shader
func NewLineProgram() (*Program, error) {
	return NewProgram("line", lineVertex, lineFragment)
}
