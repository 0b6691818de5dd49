// Package domain provides definitions for Darter Jobs, Tasks and launch specs.
package domain

import (
	"fmt"
)

// Job is one scheduling request accepted by the intake layer. RequestID is
// assigned at intake and never reused within or across process lifetimes.
type Job struct {
	RequestID string
	App       string
	Tasks     []TaskDefinition
}

func (j *Job) String() string {
	return fmt.Sprintf("requestID:%s, app:%s, tasks:%d", j.RequestID, j.App, len(j.Tasks))
}

// TaskDefinition is one schedulable unit of a job. The payload is opaque to
// the placement engine; it is echoed back verbatim in the LaunchSpec handed
// to whichever worker claims the task.
type TaskDefinition struct {
	Payload []byte
}

// TaskID identifies a task by its job's request id and the task's position
// in the submitted task list.
type TaskID struct {
	RequestID string
	TaskIndex int
}

func (id TaskID) String() string {
	return fmt.Sprintf("%s_%d", id.RequestID, id.TaskIndex)
}

// LaunchSpec is the instruction returned to a worker whose pull claimed a
// task. It is the only channel that carries task content across the engine
// boundary.
type LaunchSpec struct {
	TaskID  TaskID
	Payload []byte
}

// StatusMessage is a task result/status blob flowing from a worker back to
// the frontend that owns the task. The engine routes it one hop and holds no
// copy afterwards.
type StatusMessage struct {
	TaskID  TaskID
	Status  int
	Payload []byte
}

// ValidateTasks checks a submitted task list. The payload itself is opaque
// and may legitimately be empty; only the list shape is constrained.
func ValidateTasks(tasks []TaskDefinition) error {
	if len(tasks) == 0 {
		return fmt.Errorf("invalid job. Must have at least 1 task; was empty")
	}
	return nil
}
