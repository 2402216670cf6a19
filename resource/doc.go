// Package resource defines the values exchanged between resource pools.
//
// An [ID] names a resource across every pool. A [Resource] is a tagged
// variant: either a local value, or a remote stub that reads its value
// through the [Connector] that produced it each time it is accessed.
// A [Set] is the ordered, de-duplicated directory exchanged when listing
// resources across pools.
//
// # Wire form
//
// Sets marshal to a JSON list of {"id":{"pool":..,"name":..},"kind":..}
// entries. [DecodeSet] turns that list back into remote stubs bound to the
// decoding connector:
//
//	data, _ := json.Marshal(set)
//	stubs, _ := resource.DecodeSet(data, conn)
package resource
