// Package sanitizer normalizes user input before it is stored in a form.
//
// A Modifier takes a field value and returns the cleaned value. String
// helpers are lifted into modifiers with Strings, which applies them to plain
// strings as well as to every string inside a list:
//
//	clean := sanitizer.Chain(
//	    sanitizer.Trim,
//	    sanitizer.CollapseSpaces,
//	    sanitizer.Lower,
//	)
//
//	clean("  Mixed CASE   Input\n") // "mixed case input"
//
// Values of other types pass through unchanged, so modifiers are safe to
// attach to any field.
package sanitizer
