package model

import "time"

// Course is a program offered by a university.
type Course struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Priority       int       `json:"priority"`
	Category       string    `json:"category,omitempty"`
	UniversityID   int64     `json:"university_id"`
	UniversityName string    `json:"university_name,omitempty"`
	UniversitySlug string    `json:"university_slug,omitempty"`
	Qualification  string    `json:"qualification,omitempty"`
	EarliestIntake string    `json:"earliest_intake,omitempty"`
	Deadline       string    `json:"deadline,omitempty"`
	Duration       string    `json:"duration,omitempty"`
	EntryScore     string    `json:"entry_score,omitempty"`
	Fee            string    `json:"fee,omitempty"`
	Scholarship    string    `json:"scholarship,omitempty"`
	Stream         string    `json:"stream,omitempty"`
	Overview       string    `json:"overview,omitempty"`
	Tags           string    `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CourseRequest is the create/update payload for a course.
type CourseRequest struct {
	Title          string `json:"title" binding:"required,min=2,max=255"`
	Slug           string `json:"slug" binding:"required,min=2,max=255"`
	Priority       int    `json:"priority"`
	Category       string `json:"category" binding:"omitempty,max=100"`
	UniversityID   int64  `json:"university_id" binding:"required"`
	Qualification  string `json:"qualification" binding:"omitempty,max=100"`
	EarliestIntake string `json:"earliest_intake" binding:"omitempty,max=100"`
	Deadline       string `json:"deadline" binding:"omitempty,max=100"`
	Duration       string `json:"duration" binding:"omitempty,max=100"`
	EntryScore     string `json:"entry_score" binding:"omitempty,max=100"`
	Fee            string `json:"fee" binding:"omitempty,max=100"`
	Scholarship    string `json:"scholarship" binding:"omitempty,max=255"`
	Stream         string `json:"stream" binding:"omitempty,max=100"`
	Overview       string `json:"overview"`
	Tags           string `json:"tags" binding:"omitempty,max=500"`
}
