package main

//go:generate go run . docs generate --dir ../../ --main cmd/server/docs.go --output ../../docs

// @title           Blog CMS API
// @version         1.0.0
// @description     Articles, categories, tags, comments and contact inquiries, with an admin area.
// @host            localhost:8080
// @BasePath        /
// @schemes         http https

// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
// @description "Bearer <token>" from /api/auth/login; the session_token cookie is accepted too.
