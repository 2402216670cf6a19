// Package connector groups the resource.Connector implementations.
//
//   - hub: pools in one process, joined to an explicit registry
//   - shared: pools sharing one backing medium, discovered by scanning it
//   - multi: several connectors combined in order
//
// All of them hand out remote stubs bound to themselves, so a stub always
// resolves through the connector that listed it.
package connector
