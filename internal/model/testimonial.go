package model

import "time"

// Testimonial is a published client review.
type Testimonial struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Post      string    `json:"post"`
	Review    string    `json:"review"`
	Priority  int       `json:"priority"`
	ImageURL  string    `json:"image_url,omitempty"`
	ImageAlt  string    `json:"image_alt,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TestimonialRequest is the create/update payload for a testimonial.
type TestimonialRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Post     string `json:"post" binding:"required,max=255"`
	Review   string `json:"review" binding:"required,min=3"`
	Priority int    `json:"priority"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=500"`
	ImageAlt string `json:"image_alt" binding:"omitempty,max=255"`
}
