package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the folio API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>folio API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the public surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "folio", "version": "v0.1.0" },
  "paths": {
    "/api/auth/login": {
      "post": {
        "summary": "Exchange the admin password for a bearer token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token returned" }, "400": { "description": "password missing" }, "401": { "description": "wrong password" } }
      }
    },
    "/api/auth/profile": {
      "get": { "summary": "Admin identity from the verified token", "responses": { "200": { "description": "email and role" }, "401": { "description": "unauthenticated" } } }
    },
    "/api/auth/logout": {
      "post": { "summary": "Revoke the presented access token", "responses": { "200": { "description": "logged out" }, "401": { "description": "unauthenticated" } } }
    },
    "/api/posts": {
      "get": { "summary": "List posts, newest first", "responses": { "200": { "description": "array of posts" } } },
      "post": { "summary": "Create a post (admin)", "responses": { "201": { "description": "created post" }, "400": { "description": "validation failure" }, "401": { "description": "unauthenticated" } } }
    },
    "/api/posts/{id}": {
      "get": { "summary": "Get a post", "responses": { "200": { "description": "post" }, "404": { "description": "unknown id" } } },
      "put": { "summary": "Replace a post (admin)", "responses": { "200": { "description": "updated post" }, "401": { "description": "unauthenticated" }, "404": { "description": "unknown id" } } },
      "delete": { "summary": "Delete a post (admin)", "responses": { "200": { "description": "confirmation" }, "401": { "description": "unauthenticated" }, "404": { "description": "unknown id" } } }
    },
    "/api/projects": {
      "get": { "summary": "List portfolio projects", "responses": { "200": { "description": "array of projects" } } },
      "post": { "summary": "Create a project (admin)", "responses": { "201": { "description": "created project" } } }
    },
    "/api/uploads": {
      "post": { "summary": "Upload an image (admin, multipart field 'file')", "responses": { "201": { "description": "key and url" }, "503": { "description": "object store not configured" } } }
    },
    "/api/stats": {
      "get": { "summary": "Visit/profile-view counters (admin)", "responses": { "200": { "description": "aggregate stats" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
