// Package umsg is a compact, allocation-free messaging stack for byte-stream
// transports (UART, TCP, UDP, loopback).
//
// Ownership boundary:
// - Framer: COBS + CRC32 packet framing/deframing of the byte stream
// - Router: frame build/parse and handler dispatch keyed by message id
// - Node: Framer + Router + a user-supplied Transport as one engine
//
// All buffers are sized at construction; the steady-state receive and
// transmit paths allocate nothing. A single Node is not safe for concurrent
// use; independent Nodes are.
package umsg
