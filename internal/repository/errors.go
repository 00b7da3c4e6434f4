// Package repository implements MySQL persistence for the reservation
// system.  Each repository owns the SQL for one table; BookingStore
// aggregates the queries the admission engine needs behind the
// booking.TxStore contract.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a unique
// constraint, such as subscribing an email twice concurrently.
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
