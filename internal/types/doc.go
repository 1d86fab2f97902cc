// Package types defines the request and response shapes shared by the
// math tools.
//
// Every tool reads a single JSON object and writes a single JSON object.
// Responses form a tagged union: a success payload carries the fields of
// its operation, while a failure is always {"error": message} and nothing
// else. Callers discriminate on the presence of the "error" key, so the
// union is enforced structurally rather than with a status field.
package types
