// firstwins fans out a handful of randomly timed tasks and prints each
// result the moment it finishes, under an overall timeout.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jask/keyclock/internal/firstdone"
)

const (
	taskCount = 5
	timeout   = 10 * time.Second
)

func main() {
	tasks := make([]firstdone.Task, taskCount)
	for i := range tasks {
		// Each task sleeps somewhere between 1s and 2s.
		tasks[i] = firstdone.Task{
			ID:       i,
			Duration: time.Second + time.Duration(rand.Int63n(int64(time.Second))),
		}
		fmt.Printf("starting task %d (%v)\n", tasks[i].ID, tasks[i].Duration.Round(time.Millisecond))
	}

	w := firstdone.NewWaiter(nil)
	for r := range w.Wait(context.Background(), tasks, timeout) {
		fmt.Printf("task %d finished after %v\n", r.ID, r.Duration.Round(time.Millisecond))
	}
}
