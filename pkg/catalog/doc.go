// Package catalog loads the read-only metadata catalog offered when tagging a
// report task. The catalog maps category keys to display details and option
// lists; it is configuration, never mutated once loaded, and safe for
// concurrent readers.
package catalog
