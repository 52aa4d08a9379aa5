package schemy

// Version returns the current version of the schemy interpreter.
func Version() string {
	return "0.9.0"
}
