package ecs_test

import (
	"fmt"
	"time"

	ecs "github.com/driftforge/ecs"
)

type Position struct{ X, Y int64 }
type Velocity struct{ X, Y int64 }

// Example_basic shows entity creation and a two-column join, mirroring
// the package doc's "Basic Usage" walkthrough.
func Example_basic() {
	world := ecs.Factory.NewWorld()

	ecs.CreateEntity2(world, Position{0, 0}, Velocity{1, 1})
	ecs.CreateEntity1(world, Position{10, 0})
	ecs.CreateEntity2(world, Velocity{0, 1}, Position{5, 5})

	positionsMut, _ := ecs.GetComponentExclusive[Position](world)
	velocities, _ := ecs.GetComponentShared[Velocity](world)
	moved := 0
	for row := range ecs.Join2(positionsMut.Column(), velocities.Column()) {
		row.V1.X += row.V2.X
		row.V1.Y += row.V2.Y
		moved++
	}
	positionsMut.Release()
	velocities.Release()

	positions, _ := ecs.GetComponentShared[Position](world)
	defer positions.Release()
	fmt.Printf("moved %d of %d entities\n", moved, positions.Column().Len())

	// Output:
	// moved 2 of 3 entities
}

type Clock struct{ Frame int }

type tickResources struct {
	Clock ecs.ResMut[Clock]
}

type tickSystem struct{}

func (tickSystem) Execute(resources *tickResources, components *struct{}) {
	resources.Clock.Get().Frame++
}

// Example_dispatcher shows building a single-system dispatcher, running it
// to completion, and recovering the world via Shutdown.
func Example_dispatcher() {
	world := ecs.Factory.NewWorld()
	ecs.AddResources1(world, Clock{Frame: 0})

	ex := ecs.NewExecutor[tickResources, struct{}](tickSystem{})
	d := ecs.Factory.NewDispatcherBuilder().WithThreads(1).WithSystem(ex).Build(world)
	d.Dispatch()

	for {
		g, ok := ecs.TryGetResource[Clock](world.Resources())
		if ok {
			frame := g.Get().Frame
			g.Release()
			if frame >= 3 {
				break
			}
		}
		time.Sleep(time.Millisecond)
	}

	final := d.Shutdown()
	g, _ := ecs.GetResource[Clock](final.Resources())
	defer g.Release()
	fmt.Printf("clock advanced: %v\n", g.Get().Frame >= 3)

	// Output:
	// clock advanced: true
}
