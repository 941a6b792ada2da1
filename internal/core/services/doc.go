// Package services implements the driving port interfaces.
// Services contain the OCR workflow logic and orchestrate
// calls to driven ports (adapters).
//
// Engines are single-goroutine loops. Configuration is passed
// explicitly into every entry point; services hold no run state.
package services
