package parwork

import "errors"

const Namespace = "parwork"

var (
	ErrQueueClosed = errors.New(Namespace + ": queue is closed")
	ErrJoinTimeout = errors.New(
		Namespace + ": workers did not finish within the join timeout",
	)
	ErrInvalidWorkerCount = errors.New(Namespace + ": worker count must be at least 1")
	ErrInvalidLength      = errors.New(Namespace + ": length must not be negative")
	ErrInvalidState       = errors.New(Namespace + ": pipeline has already been run")
	ErrInvalidConfig      = errors.New(Namespace + ": invalid configuration")
)
