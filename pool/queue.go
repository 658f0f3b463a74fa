package pool

import (
	"fmt"

	"github.com/Jeffail/tunny"
	"github.com/getsentry/sentry-go"
	"github.com/julender/julender/util"
	"github.com/sirupsen/logrus"
)

// Queue runs CPU-heavy work on a fixed number of workers. Callers block until their task finishes.
type Queue struct {
	pool *tunny.Pool
	name string
}

func NewQueue(workers int, name string) *Queue {
	if workers < 1 {
		workers = 1
	}
	q := &Queue{name: name}
	q.pool = tunny.NewFunc(workers, q.work)
	return q
}

func (q *Queue) work(payload interface{}) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Panic from internal queue %s", q.name)
			logrus.Error(r)
			err := util.PanicToError(r)
			sentry.CaptureException(err)
			result = fmt.Errorf("queue %s: %w", q.name, err)
		}
	}()

	task, ok := payload.(func() error)
	if !ok {
		return fmt.Errorf("queue %s: unexpected payload %T", q.name, payload)
	}
	return task()
}

// Do runs the task on one of the queue's workers and returns its error.
func (q *Queue) Do(task func() error) error {
	res := q.pool.Process(task)
	if err, ok := res.(error); ok {
		return err
	}
	return nil
}

func (q *Queue) Size() int {
	return q.pool.GetSize()
}

func (q *Queue) Close() {
	logrus.Debug("Closing internal queue " + q.name)
	q.pool.Close()
}
