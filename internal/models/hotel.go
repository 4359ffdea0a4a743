package models

import "time"

type Hotel struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	City        string    `json:"city" yaml:"city"`
	Price       int64     `json:"price" yaml:"price"`
	MaxGuests   int       `json:"max_guests" yaml:"max_guests"`
	Category    string    `json:"category,omitempty" yaml:"category"`
	Rating      float64   `json:"rating,omitempty" yaml:"rating"`
	Images      []string  `json:"images,omitempty" yaml:"images"`
	Facilities  []string  `json:"facilities,omitempty" yaml:"facilities"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Rules       string    `json:"rules,omitempty" yaml:"rules"`
	Status      string    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"-"`
}

// HotelFilter narrows catalog listings. Zero values mean "no constraint".
type HotelFilter struct {
	City      string
	Category  string
	MinPrice  int64
	MaxPrice  int64
	MaxGuests int
	Search    string
}
