package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconProfile   = "◆" // Defined or extended by the shell profile
	IconSession   = " " // Inherited from the process environment only
	IconMulti     = "≡" // Multi-valued (colon separated)
	IconDuplicate = "≈" // Value repeated within the same variable
	IconAdded     = "✓" // Add succeeded
	IconError     = "✗" // Add or query failed
)
