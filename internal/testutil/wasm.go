package testutil

// GuestSpec describes a minimal guest module for wazero-backed tests.
//
// The module exports "memory", a bump "allocate(i32) i32" starting at offset 1024,
// and an entry function "EntryName(i64, i64) i64". The entry forwards its first
// ImportParams arguments to one imported host function and returns its result
// (or 0 when the import returns nothing). With Trap set the entry executes
// unreachable instead.
type GuestSpec struct {
	ImportModule string
	ImportName   string
	EntryName    string
	ImportParams int
	ImportResult bool
	Trap         bool
	NoAllocate   bool
}

const (
	wasmI32 = 0x7f
	wasmI64 = 0x7e
)

// GuestWasm encodes guest as a WebAssembly binary.
func GuestWasm(guest GuestSpec) []byte {
	if guest.EntryName == "" {
		guest.EntryName = "run_app"
	}
	if guest.ImportParams < 1 || guest.ImportParams > 2 {
		guest.ImportParams = 2
	}

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	importType := []byte{0x60, byte(guest.ImportParams)}
	for range guest.ImportParams {
		importType = append(importType, wasmI64)
	}
	if guest.ImportResult {
		importType = append(importType, 0x01, wasmI64)
	} else {
		importType = append(importType, 0x00)
	}
	types := vec(
		[]byte{0x60, 0x01, wasmI32, 0x01, wasmI32},
		[]byte{0x60, 0x02, wasmI64, wasmI64, 0x01, wasmI64},
		importType,
	)
	out = appendSection(out, 1, types)

	imp := append(name(guest.ImportModule), name(guest.ImportName)...)
	imp = append(imp, 0x00, 0x02)
	out = appendSection(out, 2, vec(imp))

	out = appendSection(out, 3, vec([]byte{0x00}, []byte{0x01}))
	out = appendSection(out, 5, vec([]byte{0x00, 0x01}))
	// mutable i32 global initialised to 1024
	out = appendSection(out, 6, vec([]byte{wasmI32, 0x01, 0x41, 0x80, 0x08, 0x0b}))

	exports := [][]byte{
		append(name("memory"), 0x02, 0x00),
		append(name(guest.EntryName), 0x00, 0x02),
	}
	if !guest.NoAllocate {
		exports = append(exports, append(name("allocate"), 0x00, 0x01))
	}
	out = appendSection(out, 7, vec(exports...))

	allocate := []byte{0x00, 0x23, 0x00, 0x23, 0x00, 0x20, 0x00, 0x6a, 0x24, 0x00, 0x0b}
	var entry []byte
	if guest.Trap {
		entry = []byte{0x00, 0x00, 0x0b}
	} else {
		entry = []byte{0x00}
		for i := range guest.ImportParams {
			entry = append(entry, 0x20, byte(i))
		}
		entry = append(entry, 0x10, 0x00)
		if !guest.ImportResult {
			entry = append(entry, 0x42, 0x00)
		}
		entry = append(entry, 0x0b)
	}
	out = appendSection(out, 10, vec(sized(allocate), sized(entry)))
	return out
}

func appendSection(out []byte, id byte, body []byte) []byte {
	out = append(out, id)
	out = append(out, uleb(uint32(len(body)))...) //nolint:gosec // G115: test modules are tiny
	return append(out, body...)
}

func vec(items ...[]byte) []byte {
	out := uleb(uint32(len(items))) //nolint:gosec // G115: test modules are tiny
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func sized(b []byte) []byte {
	return append(uleb(uint32(len(b))), b...) //nolint:gosec // G115: test modules are tiny
}

func name(s string) []byte {
	return append(uleb(uint32(len(s))), s...) //nolint:gosec // G115: test modules are tiny
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}
