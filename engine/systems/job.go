package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/anima-core/engine/core"
)

/**
 * @brief Describes a job to be run on the worker pool.
 */
type JobTask struct {
	/** @brief Shows up in the log when the job fails. */
	Name string
	/** @brief The work itself. Required. */
	Run func() error
	/** @brief Invoked after Run succeeds. Optional. */
	OnComplete func()
	/** @brief Invoked with the error Run returned. Optional. */
	OnFailure func(err error)
	/** @brief Invoked after either outcome. Optional. */
	OnCompletionCallback func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, core.ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, core.ErrNegativeChannelSize
	}

	jq := make(chan JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	if job.OnCompletionCallback != nil {
		defer job.OnCompletionCallback()
	}
	if err := job.Run(); err != nil {
		core.LogError("job %q failed: %s", job.Name, err)
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
		return
	}
	if job.OnComplete != nil {
		job.OnComplete()
	}
}

func (js *JobSystem) Workers() int {
	return js.numWorkers
}

/**
 * @brief Shuts the job system down. Queued jobs still run, Shutdown returns
 * once every worker has exited. Calling it again is a no-op.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	if jt.Run == nil {
		return fmt.Errorf("job %q has no Run function", jt.Name)
	}
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return core.ErrJobSystemShuttingDown
	}
	js.jobQueue <- jt
	return nil
}
