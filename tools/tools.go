//go:build tools
// +build tools

// Package tools documents development tool dependencies.
package tools

// Development tools:
//
// mockgen - repository mocks in internal/mocks
//   Run: go generate ./internal/mocks
//   Resolved through go.uber.org/mock in go.mod, so no separate install is needed.
//
// Air - live reload for cmd/antly
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
