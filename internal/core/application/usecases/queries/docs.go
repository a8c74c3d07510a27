// Package queries contains read-only operations over the persisted shipment
// state. Handlers bypass the aggregates and read with raw SQL, returning
// flat response models shaped for the dashboard.
package queries
