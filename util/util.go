package util

const (
	// Success indicates every input was hashed or verified.
	Success = iota
	// ErrLocalExe indicates an error before any input was processed, e.g.
	// bad flags or an unreadable config file.
	ErrLocalExe
	// ErrLocalParse indicates a checksum list line could not be parsed.
	ErrLocalParse
	// ErrIO indicates an input could not be opened or read.
	ErrIO
	// ErrMismatch indicates at least one digest did not verify.
	ErrMismatch
)
