package core

import (
	"errors"
)

var (
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrUnknownLogLevel       = errors.New("unknown log level")
	ErrNoWorkers             = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize   = errors.New("attempting to create worker pool with a negative channel size")
	ErrEngineNotInitialized  = errors.New("engine not initialized")
	ErrJobSystemShuttingDown = errors.New("job system is shutting down")
	ErrUnknown               = errors.New("unknown")
)
