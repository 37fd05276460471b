// Package core provides the Pigment normalized types and request-building
// blocks shared by every backend adapter.
//
// Pigment forwards image-generation requests to one of two HTTP backends and
// normalizes their differing response shapes into a single result format. The
// core package owns everything that is backend-independent:
//
//   - GenerationRequest / GenerationResult, the normalized request and result
//     shapes (see types.go)
//   - ReferenceImage, a tagged union over local path, remote URL, and inline
//     base64 sources (see refimage.go)
//   - the aspect-ratio resolver, which maps user tokens like "16:9" or
//     "square" to pixel dimensions (see aspect.go)
//   - the prompt composer, which concatenates instructional clauses in a
//     fixed, tested order (see prompt.go)
//   - the canvas synthesizer, which produces the blank dimension-hint image
//     appended last to every payload (see canvas.go)
//   - the ImageProvider interface implemented by backend adapters
//     (see provider.go)
//   - the error taxonomy: ProviderError plus sentinel errors for
//     classification (see errors.go)
//
// # Design
//
// Everything in this package is pure or I/O-free except ReferenceImage
// resolution, which may read a file or fetch a URL. Backend adapters live in
// the providers tree and depend on core; core never depends on a provider.
//
// # Concurrency
//
// All exported values are immutable after construction. The lookup tables for
// scenario prefixes and named aspect ratios are initialized once and never
// mutated, so the package is safe for concurrent use without locking.
package core
