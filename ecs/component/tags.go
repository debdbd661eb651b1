package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// LookAt rotates an entity to face the cursor.
type LookAt struct{}

var LookAtComponent = NewComponent[LookAt]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()
