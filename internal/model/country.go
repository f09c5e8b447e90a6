package model

import "time"

// Country is a study destination with headline tuition figures.
type Country struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Priority  int    `json:"priority"`
	ImageURL  string `json:"image_url,omitempty"`
	ImageAlt  string `json:"image_alt,omitempty"`
	PublicUG  string `json:"public_undergraduate,omitempty"`
	PublicMS  string `json:"public_masters,omitempty"`
	PrivateUG string `json:"private_undergraduate,omitempty"`
	PrivateMS string `json:"private_masters,omitempty"`
	GeneralUG string `json:"general_undergraduate,omitempty"`
	GeneralMS string `json:"general_masters,omitempty"`
	GeneralMBA string `json:"general_mba,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CountryRequest is the create/update payload for a country.
type CountryRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Priority   int    `json:"priority"`
	ImageURL   string `json:"image_url" binding:"omitempty,url,max=500"`
	ImageAlt   string `json:"image_alt" binding:"omitempty,max=255"`
	PublicUG   string `json:"public_undergraduate" binding:"omitempty,max=100"`
	PublicMS   string `json:"public_masters" binding:"omitempty,max=100"`
	PrivateUG  string `json:"private_undergraduate" binding:"omitempty,max=100"`
	PrivateMS  string `json:"private_masters" binding:"omitempty,max=100"`
	GeneralUG  string `json:"general_undergraduate" binding:"omitempty,max=100"`
	GeneralMS  string `json:"general_masters" binding:"omitempty,max=100"`
	GeneralMBA string `json:"general_mba" binding:"omitempty,max=100"`
}
