// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta

package carve

import "sync"

// TaskQueue is a joinable FIFO work queue, modeled on the producer/consumer
// contract of Python's queue.Queue: workers Get a Task, process it, possibly
// Put more Tasks derived from it, then call TaskDone exactly once per Get.
// Join blocks until every Put task has had a matching TaskDone (§4.5, §5).
//
// The pack carries no ready-made equivalent of this join/task_done pair
// (errgroup and channels alone don't track "work still outstanding" the way
// a recursive producer/consumer pipeline needs), so it's hand-rolled here
// with a mutex and two condition variables, the same primitives
// WoozyMasta-pbo reaches for in its own worker-pool code (extract.go).
type TaskQueue struct {
	mu          sync.Mutex
	notEmpty    sync.Cond
	notPending  sync.Cond
	items       []Task
	unfinished  int
	closed      bool
}

// NewTaskQueue builds an empty, open TaskQueue.
func NewTaskQueue() *TaskQueue {
	q := &TaskQueue{}
	q.notEmpty.L = &q.mu
	q.notPending.L = &q.mu
	return q
}

// Put enqueues task and increments the outstanding-work counter. Safe to call
// from a worker goroutine while other workers are blocked in Join: a new
// Put after Join was entered simply keeps Join blocked longer, matching
// recursive extraction where unpacking one file discovers more files to scan.
func (q *TaskQueue) Put(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.items = append(q.items, task)
	q.unfinished++
	q.notEmpty.Signal()
	return nil
}

// Get blocks until a task is available or the queue is closed and drained,
// in which case ok is false.
func (q *TaskQueue) Get() (task Task, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.closed {
			return Task{}, false
		}
		q.notEmpty.Wait()
	}

	task = q.items[0]
	q.items = q.items[1:]
	return task, true
}

// TaskDone marks one previously Get'd task as finished. Must be called
// exactly once per successful Get.
func (q *TaskQueue) TaskDone() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.unfinished--
	if q.unfinished <= 0 {
		q.notPending.Broadcast()
	}
}

// Join blocks until unfinished work reaches zero, i.e. every Put has had a
// matching TaskDone.
func (q *TaskQueue) Join() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.unfinished > 0 {
		q.notPending.Wait()
	}
}

// Close marks the queue closed: pending Get calls on an empty queue return
// ok=false instead of blocking forever. Call after Join so workers waiting
// on Get unblock and exit cleanly.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.notEmpty.Broadcast()
}
