// internal/core/ports/runtime.go
package ports

import "time"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// RandomSource supplies uniform integers in [0, n)
type RandomSource interface {
	IntN(n int) int
}
