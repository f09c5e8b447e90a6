package model

import "time"

// Faq is a question/answer pair, optionally scoped to a country.
type Faq struct {
	ID          int64     `json:"id"`
	Ques        string    `json:"ques"`
	Ans         string    `json:"ans"`
	CountryID   *int64    `json:"country_id,omitempty"`
	CountryName string    `json:"country_name,omitempty"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FaqRequest is the create/update payload for an FAQ entry.
type FaqRequest struct {
	Ques      string `json:"ques" binding:"required,min=3"`
	Ans       string `json:"ans" binding:"required,min=3"`
	CountryID *int64 `json:"country_id"`
	Priority  int    `json:"priority"`
}
