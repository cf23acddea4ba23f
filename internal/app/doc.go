// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run, list, dependency tree and watch
// modes, decoupled from any specific entrypoint like a CLI.
package app
