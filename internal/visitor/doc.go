// Package visitor models the payloads exchanged with the makerspace visitor
// endpoint.
//
// # Overview
//
//   - Record: a validated, immutable visitor profile (see NewRecord).
//   - HardwareID: the identifier of the access device a registration binds to.
//   - Visit and TimeWindow: the read side used when listing visits.
//
// All constructors validate eagerly and return *ValidationError naming the
// offending wire field. A Record never renders its password: String, GoString,
// LogValue and encoding/json all omit it. ToWire is the only accessor that
// exposes it, because the backend requires it in the request body.
package visitor
