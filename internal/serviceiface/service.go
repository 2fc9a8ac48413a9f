// Package serviceiface defines the lifecycle every long-running component
// registered with the app manager implements.
package serviceiface

// Service is started once in services.yaml order and stopped in reverse.
// Start must not block; servers run their loop in a goroutine.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
