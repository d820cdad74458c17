// Package ns3 decodes Nord Stage 3 program files into typed parameter
// trees.
//
// A program is distributed either as a raw .ns3f binary or wrapped in a
// .ns3fp zip container. Decode handles both: it unwraps the container,
// validates the CBIN header, and walks the bit-packed panel sections
// (piano, organ, synth, effects) into a Program value whose selector
// fields carry their panel labels.
//
// Decoding is tolerant by default. Reads past the end of a short buffer
// yield zero, and selector indexes outside their vocabulary come back as
// "Unknown (n)" labels rather than errors, so partial or newer dumps
// still produce a usable tree. Options tighten this where callers need
// hard failures.
package ns3
