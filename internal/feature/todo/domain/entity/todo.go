// Package entity defines the domain entities for the todo feature.
package entity

import "time"

// Todo is a task owned by exactly one user.
type Todo struct {
	ID          uint
	UserID      uint
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}
