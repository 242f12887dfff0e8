// Seed loads a handful of sample posts and projects through the public API so
// a fresh deployment has content to render. Requires the server to be running
// and the admin password in SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/folio/folio/server/internal/post"
	"github.com/folio/folio/server/internal/project"
	"github.com/folio/folio/server/pkg/client"
)

func main() {
	base := os.Getenv("SEED_API_URL")
	if base == "" {
		base = "http://localhost:5000"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := client.New(base)
	if _, err := api.Login(ctx, password); err != nil {
		log.Fatalf("login failed: %v", err)
	}

	posts := []post.Fields{
		{Title: "Hello, world", Content: "<p>First post on the new site.</p>", Category: "general", Tags: []string{"meta"}},
		{Title: "Building this blog", Content: "<p>Notes on the stack behind this site.</p>", Category: "engineering", Tags: []string{"go", "mongodb"}},
	}
	for _, f := range posts {
		created, err := api.CreatePost(ctx, f)
		if err != nil {
			log.Fatalf("create post %q: %v", f.Title, err)
		}
		log.Printf("created post %s (%s)", created.Title, created.ID)
	}

	projects := []*project.Project{
		{Title: "folio", Description: "This site: Gin + MongoDB portfolio backend.", Link: "https://github.com/folio/folio", Tags: []string{"go"}},
	}
	for _, p := range projects {
		created, err := api.CreateProject(ctx, p)
		if err != nil {
			log.Fatalf("create project %q: %v", p.Title, err)
		}
		log.Printf("created project %s (%s)", created.Title, created.ID)
	}
}
