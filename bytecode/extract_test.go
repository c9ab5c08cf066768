/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import (
	"testing"

	"jvmcore/class"

	"github.com/stretchr/testify/require"
)

func TestExtractSimpleSequence(t *testing.T) {
	// iconst_0 (0x03), istore_1 (0x3c), return (0xb1)
	m := &class.MethodEntry{Code: []byte{0x03, 0x3c, 0xb1}, CodeLength: 3}
	require.NoError(t, ExtractInstructions(m))
	require.Len(t, m.Instructions, 3)
	require.Equal(t, 0, m.Instructions[0].Offset)
	require.Equal(t, 1, m.Instructions[1].Offset)
	require.Equal(t, 2, m.Instructions[2].Offset)
	for _, inst := range m.Instructions {
		require.Equal(t, -1, inst.BranchTarget)
	}
}

func TestExtractGotoRewritesBranchTarget(t *testing.T) {
	// offset 0: goto +3 (0xa7 0x00 0x03) -> targets offset 3
	// offset 3: return (0xb1)
	m := &class.MethodEntry{Code: []byte{0xa7, 0x00, 0x03, 0xb1}, CodeLength: 4}
	require.NoError(t, ExtractInstructions(m))
	require.Len(t, m.Instructions, 2)
	require.Equal(t, 1, m.Instructions[0].BranchTarget)
	require.Equal(t, 3, m.Instructions[1].Offset)
}

func TestExtractBackwardBranch(t *testing.T) {
	// offset 0: nop (0x00)
	// offset 1: goto -1 (back to offset 0)
	m := &class.MethodEntry{Code: []byte{0x00, 0xa7, 0xff, 0xff}, CodeLength: 4}
	require.NoError(t, ExtractInstructions(m))
	require.Equal(t, 0, m.Instructions[1].BranchTarget)
}

func TestExtractRejectsBranchToMidInstruction(t *testing.T) {
	// goto +2 lands in the middle of its own 3-byte encoding, not at an
	// instruction boundary.
	m := &class.MethodEntry{Code: []byte{0xa7, 0x00, 0x02}, CodeLength: 3}
	err := ExtractInstructions(m)
	require.Error(t, err)
}

func TestExtractWideIload(t *testing.T) {
	// wide iload #300 -> wide(0xc4) iload(0x15) index_hi(0x01) index_lo(0x2c)
	m := &class.MethodEntry{Code: []byte{0xc4, 0x15, 0x01, 0x2c}, CodeLength: 4}
	require.NoError(t, ExtractInstructions(m))
	require.Len(t, m.Instructions, 1)
	require.Equal(t, opWide, m.Instructions[0].Opcode)
	require.Len(t, m.Instructions[0].Operands, 3)
}

func TestExtractWideIinc(t *testing.T) {
	// wide iinc #1, +2 -> wide(0xc4) iinc(0x84) index(2 bytes) const(2 bytes)
	m := &class.MethodEntry{Code: []byte{0xc4, 0x84, 0x00, 0x01, 0x00, 0x02}, CodeLength: 6}
	require.NoError(t, ExtractInstructions(m))
	require.Len(t, m.Instructions, 1)
	require.Len(t, m.Instructions[0].Operands, 5)
}

func TestExtractTableSwitchAlignmentAndTable(t *testing.T) {
	// tableswitch at offset 0, padded to offset 4; default/jump offsets all
	// point past the switch's own operand region into trailing nops so every
	// referenced offset lands on a real instruction boundary.
	full := []byte{
		0xaa,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x18, // default -> offset 24
		0x00, 0x00, 0x00, 0x00, // low = 0
		0x00, 0x00, 0x00, 0x01, // high = 1
		0x00, 0x00, 0x00, 0x19, // jump[0] -> offset 25
		0x00, 0x00, 0x00, 0x1a, // jump[1] -> offset 26
		0x00, 0x00, 0x00, // nop nop nop -> offsets 24,25,26
	}
	m := &class.MethodEntry{Code: full, CodeLength: len(full)}
	require.NoError(t, ExtractInstructions(m))
	require.Equal(t, opTableSwitch, m.Instructions[0].Opcode)
	require.Equal(t, 24, m.Instructions[1].Offset)
	require.Len(t, m.Instructions, 4) // switch + 3 nops
}

func TestExtractLookupSwitchPairs(t *testing.T) {
	// lookupswitch at offset 0: pad to offset 4, default -> offset 20,
	// npairs=1, pair (match=5, offset=20), then nop at offset 20.
	full := []byte{
		0xab,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x14, // default -> offset 20
		0x00, 0x00, 0x00, 0x01, // npairs = 1
		0x00, 0x00, 0x00, 0x05, // match = 5
		0x00, 0x00, 0x00, 0x14, // offset -> 20
		0x00, // nop at offset 20
	}
	m := &class.MethodEntry{Code: full, CodeLength: len(full)}
	require.NoError(t, ExtractInstructions(m))
	require.Len(t, m.Instructions, 2)
	require.Equal(t, opLookupSwitch, m.Instructions[0].Opcode)
	require.Equal(t, 20, m.Instructions[1].Offset)
}
