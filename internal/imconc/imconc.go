// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package imconc

import (
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/iter"
)

// Routine is a long running component owned by a ConcGroup.
type Routine interface {
	Stop(force bool)
}

type ConcGroup struct {
	routines []Routine
	wg       *conc.WaitGroup
}

func NewConcGroup() *ConcGroup {
	return &ConcGroup{
		wg: &conc.WaitGroup{},
	}
}

func (c *ConcGroup) Add(routine Routine) *ConcGroup {
	c.routines = append(c.routines, routine)
	return c
}

func (c *ConcGroup) Go(fn func()) {
	c.wg.Go(fn)
}

func (c *ConcGroup) Stop(force bool) {
	for _, routine := range c.routines {
		routine.Stop(force)
	}
}

func (c *ConcGroup) Wait() {
	c.wg.Wait()
}

// MapErr runs fn over every input concurrently, at most limit at a time
// (unbounded when limit <= 0), and returns the results in input order along
// with the joined errors of every failed call.
func MapErr[T, R any](input []T, limit int, fn func(T) (R, error)) ([]R, error) {
	mapper := iter.Mapper[T, R]{MaxGoroutines: limit}

	return mapper.MapErr(input, func(item *T) (R, error) {
		return fn(*item)
	})
}
