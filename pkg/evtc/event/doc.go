// Package event defines the raw EVTC combat event record and its categorizer.
//
// A record is a fixed 64-byte structure whose fields are reinterpreted
// depending on its category. This package only knows the physical layout
// and the discriminants; typed payloads live in package kind.
//
// This package is separated from the main evtc package to avoid import cycles
// between pkg/evtc and pkg/evtc/kind.
package event
