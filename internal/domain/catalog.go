package domain

import (
	"time"

	"github.com/google/uuid"
)

// Range is an inclusive integer range
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies in [Min, Max]
func (r Range) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

// Product represents an educational product in the catalog
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Ages        Range     `json:"ages"`
	Grades      Range     `json:"grades"`
	Interests   Interests `json:"interests" db:"interests"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Service represents a local tutoring or activity service
type Service struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	TutorName      string    `json:"tutor_name" db:"tutor_name"`
	Category       string    `json:"category" db:"category"`
	Description    string    `json:"description" db:"description"`
	Price          float64   `json:"price" db:"price"`
	Ages           Range     `json:"ages"`
	Location       string    `json:"location" db:"location"`
	Address        string    `json:"address" db:"address"`
	Rating         float64   `json:"rating" db:"rating"`
	ReviewsCount   int       `json:"reviews_count" db:"reviews_count"`
	Interests      Interests `json:"interests" db:"interests"`
	Experience     string    `json:"experience" db:"experience"`
	Qualifications string    `json:"qualifications" db:"qualifications"`
	Area           string    `json:"area" db:"area"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
