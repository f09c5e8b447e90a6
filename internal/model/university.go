package model

import "time"

// University is a partner institution in a destination country. CountryName
// is denormalized on read via a join.
type University struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Priority      int        `json:"priority"`
	CountryID     int64      `json:"country_id"`
	CountryName   string     `json:"country_name,omitempty"`
	AdmissionOpen bool       `json:"admission_open"`
	Category      string     `json:"category,omitempty"`
	Address       string     `json:"address,omitempty"`
	Link          string     `json:"link,omitempty"`
	Email         string     `json:"email,omitempty"`
	Facebook      string     `json:"fb,omitempty"`
	Instagram     string     `json:"insta,omitempty"`
	X             string     `json:"x,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Syllabus      string     `json:"syllabus,omitempty"`
	EstdDate      *time.Time `json:"estd_date,omitempty"`
	DeanMsg       string     `json:"dean_msg,omitempty"`
	Scholarship   string     `json:"scholarship,omitempty"`
	Content       string     `json:"content,omitempty"`
	Test          string     `json:"test,omitempty"`
	ApplyFee      string     `json:"apply_fee,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	LogoURL       string     `json:"logo_url,omitempty"`
	ImageAlt      string     `json:"image_alt,omitempty"`
	Tags          string     `json:"tags,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UniversityRequest is the create/update payload for a university.
type UniversityRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=255"`
	Slug          string `json:"slug" binding:"required,min=2,max=255"`
	Priority      int    `json:"priority"`
	CountryID     int64  `json:"country_id" binding:"required"`
	AdmissionOpen bool   `json:"admission_open"`
	Category      string `json:"category" binding:"omitempty,max=100"`
	Address       string `json:"address" binding:"omitempty,max=500"`
	Link          string `json:"link" binding:"omitempty,url,max=500"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	Facebook      string `json:"fb" binding:"omitempty,max=500"`
	Instagram     string `json:"insta" binding:"omitempty,max=500"`
	X             string `json:"x" binding:"omitempty,max=500"`
	Phone         string `json:"phone" binding:"omitempty,max=50"`
	Syllabus      string `json:"syllabus" binding:"omitempty,max=500"`
	EstdDate      string `json:"estd_date" binding:"omitempty,datetime=2006-01-02"`
	DeanMsg       string `json:"dean_msg"`
	Scholarship   string `json:"scholarship"`
	Content       string `json:"content"`
	Test          string `json:"test" binding:"omitempty,max=255"`
	ApplyFee      string `json:"apply_fee" binding:"omitempty,max=100"`
	ImageURL      string `json:"image_url" binding:"omitempty,url,max=500"`
	LogoURL       string `json:"logo_url" binding:"omitempty,url,max=500"`
	ImageAlt      string `json:"image_alt" binding:"omitempty,max=255"`
	Tags          string `json:"tags" binding:"omitempty,max=500"`
}
