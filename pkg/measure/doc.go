// Package measure computes volumes and areas for the supported shapes.
// Every function is pure: it performs no validation, holds no state and
// returns a fresh Result on each call.
package measure
