package models

import (
	"strings"
	"time"
)

// Status is the task lifecycle column. Any status may be set from any other;
// there is no enforced forward-only ordering.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ParseStatus matches case-insensitively.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToUpper(s) {
	case string(StatusTodo):
		return StatusTodo, true
	case string(StatusInProgress):
		return StatusInProgress, true
	case string(StatusDone):
		return StatusDone, true
	}
	return "", false
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// ParsePriority matches case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical} {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Task rows reference users two ways: the creator link is mandatory and
// immutable (deleting a referenced creator is rejected), the assignee link
// is optional and cleared if the assignee is removed.
type Task struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	Status      Status    `json:"status" gorm:"size:20;not null;default:TODO"`
	Priority    Priority  `json:"priority" gorm:"size:10;not null;default:Medium"`
	CreatorID   int       `json:"creatorId" gorm:"not null;index"`
	AssigneeID  *int      `json:"assigneeId" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Creator  User  `json:"-" gorm:"foreignKey:CreatorID;constraint:OnDelete:RESTRICT"`
	Assignee *User `json:"-" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
}
