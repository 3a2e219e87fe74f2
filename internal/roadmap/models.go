// Package roadmap tracks milestones, their progress and the quarter they are
// delivered in.
package roadmap

import "time"

type Status string

const (
	NotStarted Status = "Not Started"
	InProgress Status = "In Progress"
	Completed  Status = "Completed"
	OnHold     Status = "On Hold"
)

var Statuses = []Status{NotStarted, InProgress, Completed, OnHold}

type Priority string

const (
	Low    Priority = "Low"
	Medium Priority = "Medium"
	High   Priority = "High"
)

var Priorities = []Priority{Low, Medium, High}

// Milestone is the stored record. Status follows Progress on every progress
// write unless the milestone is put on hold explicitly.
type Milestone struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Progress    int       `json:"progress" bson:"progress"`
	Status      Status    `json:"status" bson:"status"`
	DueDate     string    `json:"dueDate" bson:"dueDate"`
	Priority    Priority  `json:"priority" bson:"priority"`
	Assignee    string    `json:"assignee,omitempty" bson:"assignee,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (m Milestone) RecordID() string { return m.ID }

type MilestoneInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Assignee    string   `json:"assignee,omitempty"`
	Progress    *int     `json:"progress,omitempty"`
}

// MilestonePatch is the payload of Update. There is no status field: status
// moves only through progress writes and the Start/Hold/Resume actions.
type MilestonePatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Assignee    *string   `json:"assignee,omitempty"`
	Progress    *int      `json:"progress,omitempty"`
}

type Summary struct {
	Total          int            `json:"total"`
	ByStatus       map[Status]int `json:"byStatus"`
	CompletionRate int            `json:"completionRate"`
	Overdue        int            `json:"overdue"`
	QuarterEnd     string         `json:"quarterEnd"`
	DaysRemaining  int            `json:"daysRemaining"`
}
