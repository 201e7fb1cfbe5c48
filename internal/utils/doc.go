// Package utils provides shared low-level helpers used throughout the
// abstractreview internals: JSON stringification safe for log output,
// character- and word-level truncation, and word counting.
//
// Key entry points: [JSONToString] for loggable JSON, [ClampWords] for
// word-budget enforcement, and [WordCount] for threshold checks.
package utils
