package shader

// RibbonVertex matches extrude.Vertex: position, uv, color.
const RibbonVertex = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;

uniform mat4 uViewProj;

out vec2 vUV;
out vec4 vColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vUV = aUV;
	vColor = aColor;
}
`

// RibbonFragment shades the vertex color, darkening alternate UV tiles
// by uStripe so the UV mode is visible without a texture.
const RibbonFragment = `
#version 410 core

in vec2 vUV;
in vec4 vColor;

uniform vec4 uTint;
uniform float uStripe;

out vec4 FragColor;

void main() {
	float band = step(0.5, fract(vUV.y));
	vec4 c = vColor * uTint;
	c.rgb *= 1.0 - uStripe * band;
	FragColor = c;
}
`

// FlatVertex transforms bare positions by a model and view-projection.
const FlatVertex = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;
uniform mat4 uModel;

void main() {
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
}
`

// FlatFragment fills with a uniform color.
const FlatFragment = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`
