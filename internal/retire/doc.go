// Package retire implements the safe-memory-reclamation discipline
// spec.md §3 invariant 6 and §9 require but leave as an external
// collaborator ("an implementer must integrate one; leaking retired
// stores is acceptable for a first cut but must be documented").
//
// The scheme is a small hazard-pointer reclaimer: before dereferencing
// a store pointer loaded from the stack handle, every Push/Pop/View
// call acquires a Slot and Protects the store it is about to touch;
// once migration retires a store, Registry.Retire defers freeing it
// until no Slot still protects it. Slots is a pool-with-reuse
// allocator that grows only when no freed slot is available, and Registry is a rare-write, frequent-scan retirement
// store keyed by a monotonic sequence number rather than the protected
// store's identity, so concurrent retirements never collide.
package retire
