package ecs

import "reflect"

// typeID is the runtime token that keys every registry. reflect.Type is
// already comparable, hashable, and stable within one process execution,
// so it is used directly rather than introducing a separate interning
// table.
type typeID = reflect.Type

func typeOf[T any]() typeID {
	return reflect.TypeFor[T]()
}
