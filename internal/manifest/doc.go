// Package manifest implements the post-copy configuration rewriter.
//
// After materialization, the scaffolded project still carries the
// template's own identity. This package rewrites the root package.json
// (name and packageManager fields), enforces the per-client workspace
// declaration file rule, and copies the registry dotfile — adapting the
// tree to the selected package manager.
//
// The manifest is handled as a generic map so unknown fields from the
// template survive untouched: load fully, mutate in memory, write once.
// A reader never observes a half-mutated manifest on disk.
package manifest
