package systems

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-core/engine/collision"
	"github.com/spaghettifunk/anima-core/engine/core"
)

// Body is a collider tagged with the entity that owns it.
type Body struct {
	ID       uuid.UUID
	Collider collision.Collider
}

type Pair struct {
	A, B Body
}

type Report struct {
	A, B   uuid.UUID
	Result collision.Result
}

/**
 * @brief Tests many independent pairs at once by splitting them into one
 * batch per worker. Queries only read the colliders, the caller must not
 * move bodies until Test returns.
 */
type CollisionSystem struct {
	jobs     *JobSystem
	detector *collision.Detector
}

func NewCollisionSystem(jobs *JobSystem, max_iterations int) *CollisionSystem {
	return &CollisionSystem{
		jobs:     jobs,
		detector: collision.NewDetector(max_iterations),
	}
}

func (cs *CollisionSystem) SetMaxIterations(max_iterations int) {
	cs.detector = collision.NewDetector(max_iterations)
}

// Test returns one report per pair, in the order of pairs.
func (cs *CollisionSystem) Test(pairs []Pair) []Report {
	reports := make([]Report, len(pairs))
	if len(pairs) == 0 {
		return reports
	}

	detector := cs.detector
	check := func(from, to int) {
		for i := from; i < to; i++ {
			p := pairs[i]
			reports[i] = Report{A: p.A.ID, B: p.B.ID, Result: detector.Query(p.A.Collider, p.B.Collider)}
		}
	}

	if cs.jobs == nil {
		check(0, len(pairs))
		return reports
	}

	workers := cs.jobs.Workers()
	batch := (len(pairs) + workers - 1) / workers

	var wg sync.WaitGroup
	for from := 0; from < len(pairs); from += batch {
		to := min(from+batch, len(pairs))
		wg.Add(1)
		err := cs.jobs.Submit(JobTask{
			Name: fmt.Sprintf("collision pairs %d-%d", from, to),
			Run: func() error {
				check(from, to)
				return nil
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			core.LogWarn("collision batch runs inline: %s", err)
			check(from, to)
			wg.Done()
		}
	}
	wg.Wait()
	return reports
}

// Hits keeps the reports whose pair collided.
func Hits(reports []Report) []Report {
	var hits []Report
	for _, r := range reports {
		if r.Result.Collided {
			hits = append(hits, r)
		}
	}
	return hits
}
