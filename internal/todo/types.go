// Package todo holds the session-scoped todo list an agent manages for itself.
//
// The list is replaced wholesale on every write: the agent sends the full
// desired list, including unchanged items. There is no item identity beyond
// position in the current snapshot.
//
// This package follows the same layout as the rest of the server:
// - SRP: types, errors, schema decoding and the store in separate files
// - No discipline is enforced (e.g. a single in_progress item is guidance only)
package todo

import (
	"fmt"
	"strings"
)

// --- Status enum ---

// Status is the lifecycle state of a single todo item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// validStatuses is the set of allowed item statuses.
var validStatuses = map[Status]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// StatusValues lists the statuses in display order.
var StatusValues = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the recognized statuses.
func (s Status) Valid() bool {
	return validStatuses[s]
}

// --- Action enum ---

// Action is an operation the todo tool accepts.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionList   Action = "list"
)

// ActionValues lists the accepted actions in the order they are documented.
var ActionValues = []Action{ActionCreate, ActionUpdate, ActionList}

// ParseAction returns the Action named by s, or an *UnknownActionError.
func ParseAction(s string) (Action, error) {
	for _, a := range ActionValues {
		if string(a) == s {
			return a, nil
		}
	}
	return "", &UnknownActionError{Action: s}
}

// actionNames renders the accepted actions as "create, update, list".
func actionNames() string {
	names := make([]string, len(ActionValues))
	for i, a := range ActionValues {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// --- Outcome enum ---

// Outcome is the status reported back to the caller after an action.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeListed  Outcome = "listed"
)

// --- Item ---

// Item is a single task record.
type Item struct {
	// Content is the imperative description, e.g. "Run tests".
	Content string `json:"content"`
	// ActiveForm is the present-continuous label shown while the item
	// is in progress, e.g. "Running tests".
	ActiveForm string `json:"activeForm"`
	Status     Status `json:"status"`
}

// String renders the item for log lines.
func (i Item) String() string {
	return fmt.Sprintf("%s (%s)", i.Content, i.Status)
}

// --- Counts ---

// Counts tallies a list by status.
type Counts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// Total returns the number of items counted.
func (c Counts) Total() int {
	return c.Pending + c.InProgress + c.Completed
}

// CountStatuses tallies todos by status. Items with an unrecognized status
// are not counted; a validated list never contains any.
func CountStatuses(todos []Item) Counts {
	var c Counts
	for _, t := range todos {
		switch t.Status {
		case StatusPending:
			c.Pending++
		case StatusInProgress:
			c.InProgress++
		case StatusCompleted:
			c.Completed++
		}
	}
	return c
}

// --- Result ---

// Result is the response payload for every successful action.
// Counts is embedded so its fields sit at the top level of the JSON object.
type Result struct {
	Status Outcome `json:"status"`
	Count  int     `json:"count"`
	Counts
	Todos []Item `json:"todos"`
}

// newResult builds a Result over a private copy of todos.
// Todos is never nil so it always marshals as a JSON array.
func newResult(outcome Outcome, todos []Item) *Result {
	return &Result{
		Status: outcome,
		Count:  len(todos),
		Counts: CountStatuses(todos),
		Todos:  cloneItems(todos),
	}
}

// Listed builds the list-action result for a snapshot taken elsewhere.
func Listed(todos []Item) *Result {
	return newResult(OutcomeListed, todos)
}

// Summary renders the result as a one-line log/event summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("%s: %d todos (%d pending, %d in progress, %d completed)",
		r.Status, r.Count, r.Pending, r.InProgress, r.Completed)
}

// cloneItems returns a non-nil copy of todos.
func cloneItems(todos []Item) []Item {
	out := make([]Item, len(todos))
	copy(out, todos)
	return out
}
