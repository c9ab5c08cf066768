/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package bytecode implements an instruction extractor: decoding a method's
// raw code array into a per-offset instruction table,
// handling the three variable-length families (tableswitch, lookupswitch,
// wide) and rewriting branch operands into table indices in a second pass.
// The opcode/operand-size table below is grounded on the constant layout in
// the thanhhungg97-jvm interpreter's opcode list, generalized from its flat
// switch-by-mnemonic style into a lookup table keyed by the same opcode
// values.
package bytecode

// operandSize reports the fixed operand byte count of a non-variable-length
// opcode; opcodes absent from the table (the large single-byte-only
// majority) default to 0 operand bytes via the zero value.
var operandSize = map[uint8]int{
	0x10: 1, // bipush
	0x11: 2, // sipush
	0x12: 1, // ldc
	0x13: 2, // ldc_w
	0x14: 2, // ldc2_w
	0x15: 1, // iload
	0x16: 1, // lload
	0x17: 1, // fload
	0x18: 1, // dload
	0x19: 1, // aload
	0x36: 1, // istore
	0x37: 1, // lstore
	0x38: 1, // fstore
	0x39: 1, // dstore
	0x3a: 1, // astore
	0xa9: 1, // ret
	0xbc: 1, // newarray

	// control-flow with a 2-byte branch offset
	0x99: 2, 0x9a: 2, 0x9b: 2, 0x9c: 2, 0x9d: 2, 0x9e: 2, // if_icmp<cond>/ifeq family
	0x9f: 2, 0xa0: 2, 0xa1: 2, 0xa2: 2, 0xa3: 2, 0xa4: 2, // if_icmp<cond> continued
	0xa5: 2, 0xa6: 2, // if_acmpeq/ne
	0xa7: 2,          // goto
	0xa8: 2,          // jsr
	0xc6: 2, 0xc7: 2, // ifnull/ifnonnull

	0xc8: 4, // goto_w
	0xc9: 4, // jsr_w

	// constant-pool index operands, 2 bytes
	0xb2: 2, 0xb3: 2, 0xb4: 2, 0xb5: 2, // getstatic/putstatic/getfield/putfield
	0xb6: 2, 0xb7: 2, 0xb8: 2, // invokevirtual/invokespecial/invokestatic
	0xb9: 4, // invokeinterface (index2 + count + 0)
	0xba: 4, // invokedynamic (index2 + 0 + 0)
	0xbb: 2, // new
	0xbd: 2, // anewarray
	0xc0: 2, // checkcast
	0xc1: 2, // instanceof
	0xc5: 3, // multianewarray (index2 + dims)

	0x84: 2, // iinc (index + const)
}

// isBranch reports whether opcode's single 2-byte operand (or 4-byte for
// goto_w/jsr_w) is a signed branch offset relative to the instruction's own
// start, the set the second pass rewrites to BranchTarget indices.
func isBranch(opcode uint8) bool {
	switch opcode {
	case 0x99, 0x9a, 0x9b, 0x9c, 0x9d, 0x9e, 0x9f, 0xa0, 0xa1, 0xa2, 0xa3, 0xa4,
		0xa5, 0xa6, 0xa7, 0xa8, 0xc6, 0xc7, 0xc8, 0xc9:
		return true
	default:
		return false
	}
}

const (
	opTableSwitch  uint8 = 0xaa
	opLookupSwitch uint8 = 0xab
	opWide         uint8 = 0xc4
)

// isWideBranch reports whether opcode carries a 4-byte (rather than 2-byte)
// branch offset.
func isWideBranch(opcode uint8) bool {
	return opcode == 0xc8 || opcode == 0xc9
}
