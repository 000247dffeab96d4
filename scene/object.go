package scene

import (
	"scene-editor/core"
	"scene-editor/math"
)

// MeshID and TextureID are opaque references resolved by the mesh and
// texture providers.
type (
	MeshID    int
	TextureID int
)

// Mesh ids with fixed meaning: the ground square and the sphere used for lights.
const (
	GroundMesh MeshID = 0
	SphereMesh MeshID = 55
)

// Reserved store slots.
const (
	GroundIndex = 0
	Light1Index = 1
	Light2Index = 2
)

// Material holds the per-object light response factors.
type Material struct {
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}

// SceneObject is one placed entity. Angles are degrees about X, Y and Z,
// composed Z·Y·X so the X rotation is applied to the mesh first.
type SceneObject struct {
	Position     math.Vec4
	Scale        float32
	Angles       math.Vec3
	Material     Material
	Color        core.Color
	Alpha        float32
	Brightness   float32
	Mesh         MeshID
	Texture      TextureID
	TextureScale float32
}

// NewSceneObject returns an object at the origin with the default appearance.
// Meshes other than the ground and the light sphere are imported at a large
// scale, so they start shrunk to 0.005.
func NewSceneObject(mesh MeshID, texture TextureID) SceneObject {
	scale := float32(1)
	if mesh != GroundMesh && mesh != SphereMesh {
		scale = 0.005
	}
	return SceneObject{
		Position: math.Point(0, 0, 0),
		Scale:    scale,
		Angles:   math.NewVec3(0, 180, 0),
		Material: Material{
			Ambient:   0.7,
			Diffuse:   1.0,
			Specular:  0.5,
			Shininess: 10.0,
		},
		Color:        core.Gray(0.7),
		Alpha:        1.0,
		Brightness:   1.0,
		Mesh:         mesh,
		Texture:      texture,
		TextureScale: 2.0,
	}
}

// Model returns translate(position)·rotZ·rotY·rotX·scale.
func (o SceneObject) Model() math.Mat4 {
	return math.Mat4UniformScale(o.Scale).
		Then(math.Mat4EulerZYX(o.Angles)).
		Then(math.Mat4Translation(o.Position.ToVec3()))
}

// Attribute names one scalar field of a SceneObject.
type Attribute int

const (
	AttrPositionX Attribute = iota
	AttrPositionY
	AttrPositionZ
	AttrScale
	AttrAngleX
	AttrAngleY
	AttrAngleZ
	AttrAmbient
	AttrDiffuse
	AttrSpecular
	AttrShininess
	AttrRed
	AttrGreen
	AttrBlue
	AttrAlpha
	AttrBrightness
	AttrTextureScale
)

var attributeNames = [...]string{
	"position.x", "position.y", "position.z", "scale",
	"angle.x", "angle.y", "angle.z",
	"ambient", "diffuse", "specular", "shininess",
	"red", "green", "blue", "alpha", "brightness", "texture-scale",
}

func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return "unknown"
	}
	return attributeNames[a]
}

// field returns a pointer to the attribute inside o, or nil when a is unknown.
func (a Attribute) field(o *SceneObject) *float32 {
	switch a {
	case AttrPositionX:
		return &o.Position.X
	case AttrPositionY:
		return &o.Position.Y
	case AttrPositionZ:
		return &o.Position.Z
	case AttrScale:
		return &o.Scale
	case AttrAngleX:
		return &o.Angles.X
	case AttrAngleY:
		return &o.Angles.Y
	case AttrAngleZ:
		return &o.Angles.Z
	case AttrAmbient:
		return &o.Material.Ambient
	case AttrDiffuse:
		return &o.Material.Diffuse
	case AttrSpecular:
		return &o.Material.Specular
	case AttrShininess:
		return &o.Material.Shininess
	case AttrRed:
		return &o.Color.R
	case AttrGreen:
		return &o.Color.G
	case AttrBlue:
		return &o.Color.B
	case AttrAlpha:
		return &o.Alpha
	case AttrBrightness:
		return &o.Brightness
	case AttrTextureScale:
		return &o.TextureScale
	}
	return nil
}

// Value reads attribute a. Unknown attributes read as zero.
func (o *SceneObject) Value(a Attribute) float32 {
	if f := a.field(o); f != nil {
		return *f
	}
	return 0
}

// Adjust adds delta to attribute a. Unknown attributes are ignored.
func (o *SceneObject) Adjust(a Attribute, delta float32) {
	if f := a.field(o); f != nil {
		*f += delta
	}
}
