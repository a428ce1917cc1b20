// Package model holds the domain records flowing through the report pipeline.
package model

import "strings"

// Method is a canonical commute mode as it appears in the output reports.
type Method string

const (
	MethodBike     Method = "Bike"
	MethodCarpool  Method = "Carpool"
	MethodCWW      Method = "CWW"
	MethodDrive    Method = "Drive"
	MethodScooter  Method = "Scooter"
	MethodTelework Method = "Telework"
	MethodTransit  Method = "Transit"
	MethodVanpool  Method = "Vanpool"
	MethodWalk     Method = "Walk"
)

// methods lists every canonical mode in report column order.
var methods = []Method{
	MethodBike, MethodCarpool, MethodCWW, MethodDrive, MethodScooter,
	MethodTelework, MethodTransit, MethodVanpool, MethodWalk,
}

// cleanMethods lists the eight non-drive modes used for Clean rollups.
var cleanMethods = []Method{
	MethodBike, MethodCarpool, MethodCWW, MethodScooter,
	MethodTelework, MethodTransit, MethodVanpool, MethodWalk,
}

var canonicalMethods = func() map[string]Method {
	m := make(map[string]Method, len(methods))
	for _, method := range methods {
		m[strings.ToLower(string(method))] = method
	}
	return m
}()

// Methods returns the canonical mode enumeration in column order.
func Methods() []Method { return methods }

// CleanMethods returns the non-drive modes in column order.
func CleanMethods() []Method { return cleanMethods }

// CanonicalMethod maps a raw source mode value ("cww", "Bike") to its
// canonical form. Unrecognized values pass through unchanged so upstream
// data-quality problems stay visible in the long outputs.
func CanonicalMethod(raw string) Method {
	if m, ok := canonicalMethods[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return m
	}
	return Method(strings.TrimSpace(raw))
}

// Known reports whether m is one of the canonical modes.
func (m Method) Known() bool {
	_, ok := canonicalMethods[strings.ToLower(string(m))]
	return ok
}
