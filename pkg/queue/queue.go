package queue

// Queue represents a basic queue.
type Queue interface {
	Enqueue(item interface{}) error
	ReadAllMessages() []interface{}
	Size() int
	ClearQueue()
}
