// Package volatile performs single bus transactions on device memory.
//
// Each Load or Store issues exactly one memory access of the requested
// width. Accesses are never merged, widened, elided or reordered relative
// to each other. On amd64 and arm64 this is guaranteed by hand-written
// assembly that emits the narrowest correctly-sized load/store instruction.
// Other architectures fall back to a plain pointer access behind a function
// call boundary, which the compiler cannot inline or optimize across.
//
// The given address must be naturally aligned for the access width.
package volatile
