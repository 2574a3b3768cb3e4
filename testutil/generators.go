package testutil

import "pgregory.net/rapid"

// Shared rapid generators for property tests across the mock packages.

// Payload generates a non-empty byte payload of the size a driver would
// realistically push over a peripheral bus in one call.
func Payload() *rapid.Generator[[]byte] {
	return rapid.SliceOfN(rapid.Byte(), 1, 32)
}

// Payloads generates an ordered list of payloads, one per expected
// transaction.
func Payloads() *rapid.Generator[[][]byte] {
	return rapid.SliceOfN(Payload(), 1, 16)
}

// Addr generates a 7-bit bus address.
func Addr() *rapid.Generator[byte] {
	return rapid.Custom(func(t *rapid.T) byte {
		return byte(rapid.IntRange(0x08, 0x77).Draw(t, "addr"))
	})
}
