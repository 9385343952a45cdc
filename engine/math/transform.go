package math

func NewRigidTransformIdentity() RigidTransform {
	return RigidTransform{Rotation: NewQuatIdentity()}
}

func NewRigidTransform(rotation Quaternion, translation Vec3) RigidTransform {
	return RigidTransform{Rotation: rotation.Normalize(), Translation: translation}
}

func NewRigidTransformFromTranslation(translation Vec3) RigidTransform {
	return RigidTransform{Rotation: NewQuatIdentity(), Translation: translation}
}

// ToMat4 returns the homogeneous matrix of the pose: rotate, then translate.
func (t RigidTransform) ToMat4() Mat4 {
	return t.Rotation.ToMat4().Mul(NewMat4Translation(t.Translation))
}

// TransformPoint maps p from the posed frame into the parent frame.
func (t RigidTransform) TransformPoint(p Vec3) Vec3 {
	return p.Transform(t.ToMat4())
}

// Compose returns the pose t*other: other is expressed in t's frame.
func (t RigidTransform) Compose(other RigidTransform) RigidTransform {
	return RigidTransform{
		Rotation:    t.Rotation.Mul(other.Rotation).Normalize(),
		Translation: t.TransformPoint(other.Translation),
	}
}

// ScaledMat4 returns the model matrix for geometry scaled about its own
// origin by scale and then placed at t.
func (t RigidTransform) ScaledMat4(scale Vec3) Mat4 {
	return NewMat4Scale(scale).Mul(t.ToMat4())
}
