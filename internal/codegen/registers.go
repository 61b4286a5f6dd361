package codegen

// Register role names, independent of width: A and B are the scratch
// pair every BinOp/UnaryOp routes through (spec.md §4.4's "all scratch
// use %rax/%rbx"); C/D/DI/SI only appear while shuttling call arguments
// into the System V register slots.
const (
	regA  = "a"
	regB  = "b"
	regC  = "c"
	regD  = "d"
	regDI = "di"
	regSI = "si"
)

const (
	regR8 = "r8"
	regR9 = "r9"
)

var reg64Names = map[string]string{
	regA:  "rax",
	regB:  "rbx",
	regC:  "rcx",
	regD:  "rdx",
	regDI: "rdi",
	regSI: "rsi",
	regR8: "r8",
	regR9: "r9",
}

var reg8Names = map[string]string{
	regA:  "al",
	regB:  "bl",
	regC:  "cl",
	regD:  "dl",
	regDI: "dil",
	regSI: "sil",
	regR8: "r8b",
	regR9: "r9b",
}

// reg renders role at the given operand width (64 or 8 bits).
func reg(role string, width int) string {
	if width == 8 {
		return "%" + reg8Names[role]
	}
	return "%" + reg64Names[role]
}

// sfx picks the AT&T mnemonic suffix for an instruction operating at
// width bits: "q" for the 64-bit quadword form, "b" for the 8-bit form
// booleans are stored in.
func sfx(width int) string {
	if width == 8 {
		return "b"
	}
	return "q"
}

// movOp names the load/store mnemonic for an operand of the given width
// (spec.md §4.4: "movq <mem>, %rax (width-appropriate movb for 8-bit)").
func movOp(width int) string {
	return "mov" + sfx(width)
}

// argRegisters64 are the six System V integer argument registers, in
// order (spec.md §4.4).
var argRegisters64 = []string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}
