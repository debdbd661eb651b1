package component

type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyFixed
	BodyKinematic
)

// RigidBody makes an entity simulated. Entities with a Collider but no
// RigidBody are attached to the static body.
type RigidBody struct {
	Type BodyType
}

var RigidBodyComponent = NewComponent[RigidBody]()

type ColliderShape int

const (
	ColliderCuboid ColliderShape = iota
	ColliderBall
)

// Collider sizes are half extents for cuboids and the radius for balls.
type Collider struct {
	Shape      ColliderShape
	HalfWidth  float64
	HalfHeight float64
	Radius     float64
	Friction   float64
	Sensor     bool
}

var ColliderComponent = NewComponent[Collider]()

type Restitution struct {
	Coefficient float64
}

var RestitutionComponent = NewComponent[Restitution]()

type Damping struct {
	Linear  float64
	Angular float64
}

var DampingComponent = NewComponent[Damping]()

// Velocity is read before and written after every physics step, so writes
// from gameplay systems take effect on the next step.
type Velocity struct {
	X       float64
	Y       float64
	Angular float64
}

var VelocityComponent = NewComponent[Velocity]()

// ExternalImpulse is applied once on the next physics step and then zeroed.
type ExternalImpulse struct {
	X       float64
	Y       float64
	PointX  float64
	PointY  float64
	AtPoint bool
	Torque  float64
}

var ExternalImpulseComponent = NewComponent[ExternalImpulse]()

func (i ExternalImpulse) IsZero() bool {
	return i.X == 0 && i.Y == 0 && i.Torque == 0
}

// ColliderMass overrides the density derived mass of a body.
type ColliderMass struct {
	Mass float64
}

var ColliderMassComponent = NewComponent[ColliderMass]()

// CollisionGroups mirror cp shape filter categories and mask. Two colliders
// interact only when each one's memberships intersect the other's filters.
type CollisionGroups struct {
	Memberships uint32
	Filters     uint32
}

var CollisionGroupsComponent = NewComponent[CollisionGroups]()

// ImpulseJoint pins this body to Parent with a pivot. Anchors are in each
// body's local space.
type ImpulseJoint struct {
	Parent        uint64
	AnchorParentX float64
	AnchorParentY float64
	AnchorChildX  float64
	AnchorChildY  float64
}

var ImpulseJointComponent = NewComponent[ImpulseJoint]()
