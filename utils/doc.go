// Package utils provides internal utility functions for the subway-arrivals pipeline.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Time formatting and conversion utilities (UTC ISO8601, New York wall clock)
//   - Minutes-away arithmetic and countdown display formatting
package utils
