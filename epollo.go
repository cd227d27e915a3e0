// Package epollo provides a distraction-free content browsing toolkit.
// It fetches web pages, strips media, filters and summarizes content
// with a local LLM, and captures rendered screenshots for vision-model
// processing.
//
// This package contains domain types, interfaces, and the pure content
// extraction algorithms following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., ollama/, rod/, sqlite/).
package epollo
