package ecs

import "fmt"

// Entity is an opaque 64-bit identifier for a game object. Entities are
// allocated from a monotonically increasing counter in the World;
// identifiers are never recycled. Equality and ordering are by integer
// value.
type Entity uint64

// String renders the entity for debug output.
func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d)", uint64(e))
}

// invalidEntity is never handed out by a World's allocator; it is used as
// a zero value sentinel.
const invalidEntity Entity = 0
