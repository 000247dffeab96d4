package editor

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-editor/scene"
)

// rows builds a 2x2 matrix from its rows.
func rows(a, b, c, d float32) mgl32.Mat2 {
	return mgl32.Mat2FromRows(mgl32.Vec2{a, b}, mgl32.Vec2{c, d})
}

var identity2 = mgl32.Ident2()

// adjust adds delta[0]*sx to ax and delta[1]*sy to ay on one object.
func adjust(store *scene.Store, index int, ax scene.Attribute, sx float32, ay scene.Attribute, sy float32) Effect {
	return EffectFunc(func(delta mgl32.Vec2) error {
		obj, err := store.At(index)
		if err != nil {
			return err
		}
		obj.Adjust(ax, delta.X()*sx)
		obj.Adjust(ay, delta.Y()*sy)
		return nil
	})
}

// adjustOne only reads the horizontal component of the drag.
func adjustOne(store *scene.Store, index int, attr scene.Attribute) Effect {
	return EffectFunc(func(delta mgl32.Vec2) error {
		obj, err := store.At(index)
		if err != nil {
			return err
		}
		obj.Adjust(attr, delta.X())
		return nil
	})
}

// groundMatrix maps a drag onto the ground plane as seen from an orbit
// camera turned sideways by the given angle.
func groundMatrix(sideways float32) mgl32.Mat2 {
	return mgl32.Rotate2D(mgl32.DegToRad(-sideways)).Mul2(rows(10, 0, 0, -10))
}

func cameraBinding(orbit *scene.OrbitView) Binding {
	return Binding{
		Name:   "camera",
		Target: -1,
		Primary: Axis{
			Effect: EffectFunc(func(d mgl32.Vec2) error {
				orbit.Sideways += d.X()
				orbit.Distance += d.Y() * 10
				return nil
			}),
			Transform: rows(400, 0, 0, -2),
		},
		Secondary: Axis{
			Effect: EffectFunc(func(d mgl32.Vec2) error {
				orbit.Orbit(d.X(), d.Y())
				return nil
			}),
			Transform: rows(400, 0, 0, -90),
		},
	}
}

func placementBinding(store *scene.Store, index int, sideways float32) Binding {
	return Binding{
		Name:   "position/scale",
		Target: index,
		Primary: Axis{
			Effect:    adjust(store, index, scene.AttrPositionX, 1, scene.AttrPositionZ, 1),
			Transform: groundMatrix(sideways),
		},
		Secondary: Axis{
			Effect:    adjust(store, index, scene.AttrScale, 1, scene.AttrPositionY, 1),
			Transform: rows(0.05, 0, 0, 10),
		},
	}
}

func lightMoveBinding(store *scene.Store, light int, sideways float32) Binding {
	return Binding{
		Name:   "move light",
		Target: light,
		Primary: Axis{
			Effect:    adjust(store, light, scene.AttrPositionX, 1, scene.AttrPositionZ, 1),
			Transform: groundMatrix(sideways),
		},
		Secondary: Axis{
			Effect:    adjust(store, light, scene.AttrBrightness, 1, scene.AttrPositionY, 1),
			Transform: rows(1, 0, 0, 10),
		},
	}
}

func colorBinding(store *scene.Store, index int) Binding {
	return Binding{
		Name:   "r/g/b/all",
		Target: index,
		Primary: Axis{
			Effect:    adjust(store, index, scene.AttrRed, 1, scene.AttrGreen, 1),
			Transform: identity2,
		},
		Secondary: Axis{
			Effect:    adjust(store, index, scene.AttrBlue, 1, scene.AttrBrightness, 1),
			Transform: identity2,
		},
	}
}

func lightingBinding(store *scene.Store, index int) Binding {
	return Binding{
		Name:   "ambient/diffuse/specular/shine",
		Target: index,
		Primary: Axis{
			Effect:    adjust(store, index, scene.AttrAmbient, 1, scene.AttrDiffuse, 1),
			Transform: identity2,
		},
		Secondary: Axis{
			Effect:    adjust(store, index, scene.AttrSpecular, 1, scene.AttrShininess, 10),
			Transform: identity2,
		},
	}
}

func alphaBinding(store *scene.Store, index int) Binding {
	return Binding{
		Name:      "alpha",
		Target:    index,
		Primary:   Axis{Effect: adjustOne(store, index, scene.AttrAlpha), Transform: identity2},
		Secondary: Axis{Effect: adjustOne(store, index, scene.AttrAlpha), Transform: identity2},
	}
}

func rotationBinding(store *scene.Store, index int) Binding {
	return Binding{
		Name:   "rotation/texture scale",
		Target: index,
		Primary: Axis{
			Effect:    adjust(store, index, scene.AttrAngleY, 1, scene.AttrAngleX, 1),
			Transform: rows(400, 0, 0, -400),
		},
		Secondary: Axis{
			Effect:    adjust(store, index, scene.AttrAngleZ, 1, scene.AttrTextureScale, 1),
			Transform: rows(400, 0, 0, 15),
		},
	}
}
