// Package testutil provides testing utilities for polyvec.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, resettable RNG and generators for randomized
// operation scripts that tests replay against a container and a plain
// reference slice side by side.
//
// # Operation Scripts
//
//	rng := testutil.NewRNG(seed)
//	for _, op := range rng.Script(1000) {
//	    switch op.Kind {
//	    case testutil.KindPush:
//	        ...
//	    }
//	}
//
// Every op in a script is valid for a container that started empty and
// replayed all earlier ops, so indices are always in range.
package testutil
