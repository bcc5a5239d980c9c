package server

import "net/http"

type endpoint struct {
	Description string   `json:"description"`
	Queries     []string `json:"queries,omitempty"`
	Body        []string `json:"body,omitempty"`
	Protected   bool     `json:"protected,omitempty"`
}

var endpoints = map[string]endpoint{
	"GET /api": {
		Description: "serves a description of every available endpoint",
	},
	"GET /api/topics": {
		Description: "serves an array of all topics",
	},
	"GET /api/articles": {
		Description: "serves a page of articles with the total number of matching articles",
		Queries:     []string{"topic", "q", "sort_by", "order", "limit", "p"},
	},
	"POST /api/articles": {
		Description: "creates an article and serves it",
		Body:        []string{"title", "body", "topic", "author", "img_id"},
	},
	"GET /api/articles/:article_id": {
		Description: "serves one article with its comment count",
	},
	"PATCH /api/articles/:article_id": {
		Description: "adds inc_votes to the article's votes and serves the updated article",
		Body:        []string{"inc_votes"},
	},
	"DELETE /api/articles/:article_id": {
		Description: "deletes an article written by the caller together with its comments",
		Protected:   true,
	},
	"GET /api/my-articles": {
		Description: "serves a page of articles written by the caller",
		Queries:     []string{"topic", "q", "sort_by", "order", "limit", "p"},
		Protected:   true,
	},
	"GET /api/articles/:article_id/comments": {
		Description: "serves a page of an article's comments, newest first",
		Queries:     []string{"limit", "p"},
	},
	"POST /api/articles/:article_id/comments": {
		Description: "posts a comment on an article and serves it",
		Body:        []string{"username", "body"},
	},
	"PATCH /api/comments/:comment_id": {
		Description: "adds inc_votes to the comment's votes and serves the updated comment",
		Body:        []string{"inc_votes"},
	},
	"DELETE /api/comments/:comment_id": {
		Description: "deletes a comment written by the caller",
		Protected:   true,
	},
	"GET /api/users": {
		Description: "serves an array of all users",
	},
	"GET /api/users/:username": {
		Description: "serves one user",
		Protected:   true,
	},
	"POST /api/users/register": {
		Description: "registers a user and serves the user with a session token",
		Body:        []string{"username", "name", "email", "password", "avatar_id"},
	},
	"POST /api/users/login": {
		Description: "serves the user with a session token",
		Body:        []string{"email", "password"},
	},
	"GET /api/gallery": {
		Description: "serves an array of article images",
	},
	"GET /api/avatars": {
		Description: "serves an array of user avatars",
	},
}

func endpointsHandler(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"endpoints": endpoints})
}
