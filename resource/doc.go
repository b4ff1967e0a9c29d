// Package resource tracks assets that stream in on the host side.
//
// Guests see loading as polling: an accessor returns a "not ready" sentinel and the
// caller asks again on a later tick. Poll wraps that contract in an explicit state
// machine:
//
//	Requested ──fetch ok──▶ Ready(value)
//	    │
//	    └──Fail──▶ Unavailable
//
// Hosts keep the resources they hand out by number in a Table:
//
//	table := resource.NewTable()
//	h := table.Insert(resource.KindTexture, tex)
//	v, ok := table.GetTyped(h, resource.KindTexture)
//	table.Remove(h) // calls Drop if the value implements Dropper
//
// Handle 0 is never issued.
package resource
