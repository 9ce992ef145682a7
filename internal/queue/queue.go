package queue

import (
	"context"
	"fmt"
)

// Publisher publishes batch events to a queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, event BatchEvent) error
	Close() error
}

var supportedTargets = []string{"employees", "inventory"}

// QueueName returns the per-target batch event queue name, e.g. imports.employees.
func QueueName(target string) string {
	return fmt.Sprintf("imports.%s", target)
}

// DLQName returns the dead-letter queue name for a target, e.g. dlq.imports.employees.
func DLQName(target string) string {
	return fmt.Sprintf("dlq.%s", QueueName(target))
}

// WorkQueueNames returns the batch event queues for every import target.
func WorkQueueNames() []string {
	queues := make([]string, 0, len(supportedTargets))
	for _, target := range supportedTargets {
		queues = append(queues, QueueName(target))
	}
	return queues
}

// DLQNames returns the dead-letter queues for every import target.
func DLQNames() []string {
	queues := make([]string, 0, len(supportedTargets))
	for _, target := range supportedTargets {
		queues = append(queues, DLQName(target))
	}
	return queues
}

func isSupportedTarget(target string) bool {
	for _, t := range supportedTargets {
		if t == target {
			return true
		}
	}
	return false
}
