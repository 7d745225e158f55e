package lut

import "sync"

var (
	mu    sync.Mutex
	cubes = map[int]*Cube{}
)

// Shared returns the process-wide cube for a dimension, building it
// on first use. The mutex means concurrent first calls can't race to
// build duplicates or see a half-built table; after that the cube is
// read-only and free to share.
func Shared(dim int) (*Cube, error) {
	mu.Lock()
	defer mu.Unlock()

	if c, ok := cubes[dim]; ok {
		return c, nil
	}
	c, err := Build(dim)
	if err != nil {
		return nil, err
	}
	cubes[dim] = c
	return c, nil
}
