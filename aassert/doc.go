// Package aassert contains assertions on top of testify/assert,
// following its conventions: they take a *testing.T, report the failure and return a bool.
package aassert
