// Package core implements the grammar engine: symbols, tokenizing, matching
// tokens to symbols, value conversion and completion.
//
// A parse never fails. Every problem is recorded on the ParseResult, and the
// result tree is built as far as the input allows.
package core
