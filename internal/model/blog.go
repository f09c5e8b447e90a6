package model

import "time"

// Blog is a published article.
type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Priority  int       `json:"priority"`
	Category  string    `json:"category,omitempty"`
	Content   string    `json:"content,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	ImageAlt  string    `json:"image_alt,omitempty"`
	Tags      string    `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogRequest is the create/update payload for a blog post.
type BlogRequest struct {
	Title    string `json:"title" binding:"required,min=2,max=255"`
	Slug     string `json:"slug" binding:"required,min=2,max=255"`
	Priority int    `json:"priority"`
	Category string `json:"category" binding:"omitempty,max=100"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=500"`
	ImageAlt string `json:"image_alt" binding:"omitempty,max=255"`
	Tags     string `json:"tags" binding:"omitempty,max=500"`
}

// InquiryRequest is the public contact-form payload; it is emailed to the
// consultancy inbox, not persisted.
type InquiryRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Mobile  string `json:"mobile" binding:"omitempty,max=20"`
	Message string `json:"message" binding:"required,min=3"`
}
