package outbound

// TaskDispatcher schedules background work on a bounded pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
