package scene

import (
	"scene-editor/core"
	"scene-editor/math"
)

// Products are the colour terms handed to the shader for one light.
type Products struct {
	Ambient  core.Color
	Diffuse  core.Color
	Specular core.Color
}

// LightProducts combines an object with a light object. Both colours are
// scaled by their brightness before the material factors are applied.
func LightProducts(obj, light SceneObject) Products {
	rgb := obj.Color.Mul(light.Color).Scale(obj.Brightness * light.Brightness)
	return Products{
		Ambient:  rgb.Scale(obj.Material.Ambient),
		Diffuse:  rgb.Scale(obj.Material.Diffuse),
		Specular: rgb.Scale(obj.Material.Specular),
	}
}

// EyePosition transforms a light's position into eye space.
func EyePosition(light SceneObject, view math.Mat4) math.Vec4 {
	return light.Position.MulMat(view)
}
