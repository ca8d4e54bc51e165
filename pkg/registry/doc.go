// Package registry holds the motorcycle builds served by the daemon.
//
// Registry is the store every HTTP handler is given at construction time.
// Memory, the only implementation, keeps builds in process memory behind two
// levels of locking: a map-wide RWMutex guarding membership and a per-build
// RWMutex guarding contents. Builds with different ids never contend.
//
// Reads return clones taken under the shared lock. Update runs the caller's
// function against a private copy under the exclusive lock and commits the copy
// only when the function succeeds, so readers see either the old build or the
// fully recalculated new one.
//
//	reg := registry.NewMemory()
//	reg.Put("r1", motorcycle.New("Yamaha R1", 200, 201))
//
//	bike, err := reg.Update("r1", func(m *motorcycle.Motorcycle) error {
//	    return m.AddUpgrade(part)
//	})
//
// Seed documents (kind Garage) populate a registry at startup; see LoadSeed and Apply.
package registry
