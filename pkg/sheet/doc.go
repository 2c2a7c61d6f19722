// Package sheet defines the worksheet produced by script evaluation.
// A worksheet is an ordered, name-indexed set of calculations. It is
// built once per evaluation and treated as immutable afterwards.
package sheet
