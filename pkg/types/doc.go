// Package types defines the soil and parameter entities, request payloads,
// sync results, and standard errors shared by the FieldSync store, gateway,
// data service, and sync engine.
package types
