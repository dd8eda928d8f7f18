// Package app contains the application shell around the planner. It owns the
// configuration, the logger, file loading, plan rendering and publishing,
// decoupled from any specific entrypoint like a CLI.
package app
