package post

import "time"

// Post is the blog-post document persisted in the content store. Content may
// embed HTML produced by the admin editor; the server treats it as opaque text.
type Post struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	Category  string    `json:"category,omitempty" bson:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Fields is the mutable subset of a Post. Updates are full replacements of
// these fields; identity and createdAt never change.
type Fields struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}
