package project

import "time"

// Project is a portfolio entry managed from the admin area.
type Project struct {
	ID          string    `json:"_id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Link        string    `json:"link,omitempty" bson:"link,omitempty"`
	Tags        []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
