// Package mock provides function-field mock implementations of the
// ecoute interfaces for testing.
package mock
