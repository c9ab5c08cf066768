/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import (
	"encoding/binary"

	"jvmcore/class"
	"jvmcore/vmerrors"
)

// ExtractInstructions decodes method.Code into method.Instructions (spec
// §4.6). It is a two-pass operation: the first pass walks the raw byte
// stream building one class.Instruction per offset and handles the three
// variable-length families (tableswitch, lookupswitch, wide); the second
// pass rewrites every branch instruction's byte-offset operand into an
// index into the Instructions table, so interpretation never has to
// re-scan offsets to find a branch target.
func ExtractInstructions(method *class.MethodEntry) error {
	code := method.Code
	offsetToIndex := make(map[int]int, len(code))
	var insts []class.Instruction

	for pc := 0; pc < len(code); {
		start := pc
		opcode := code[pc]
		pc++

		var operands []byte
		var err error
		switch opcode {
		case opTableSwitch:
			operands, pc, err = readTableSwitch(code, pc)
		case opLookupSwitch:
			operands, pc, err = readLookupSwitch(code, pc)
		case opWide:
			operands, pc, err = readWide(code, pc)
		default:
			n := operandSize[opcode]
			if pc+n > len(code) {
				return vmerrors.Newf(vmerrors.MalformedAttribute, "method %s%s: truncated operand for opcode 0x%02x at offset %d", method.Name, method.Descriptor, opcode, start)
			}
			operands = code[pc : pc+n]
			pc += n
		}
		if err != nil {
			return err
		}

		offsetToIndex[start] = len(insts)
		insts = append(insts, class.Instruction{
			Offset:       start,
			Opcode:       opcode,
			Operands:     operands,
			BranchTarget: -1,
		})
	}

	for i := range insts {
		inst := &insts[i]
		if !isBranch(inst.Opcode) {
			continue
		}
		var delta int
		if isWideBranch(inst.Opcode) {
			delta = int(int32(binary.BigEndian.Uint32(inst.Operands)))
		} else {
			delta = int(int16(binary.BigEndian.Uint16(inst.Operands)))
		}
		target := inst.Offset + delta
		idx, ok := offsetToIndex[target]
		if !ok {
			return vmerrors.Newf(vmerrors.MalformedAttribute, "method %s%s: branch at offset %d targets non-instruction offset %d", method.Name, method.Descriptor, inst.Offset, target)
		}
		inst.BranchTarget = idx
	}

	method.Instructions = insts
	return nil
}

// readTableSwitch consumes a tableswitch instruction's padding, default
// offset, low/high bounds, and jump table, returning the whole operand
// region (everything after the opcode byte) and the new pc.
func readTableSwitch(code []byte, pc int) ([]byte, int, error) {
	opStart := pc
	pc = align4(pc)
	if pc+12 > len(code) {
		return nil, 0, vmerrors.New(vmerrors.MalformedAttribute, "truncated tableswitch header")
	}
	low := int32(binary.BigEndian.Uint32(code[pc+4 : pc+8]))
	high := int32(binary.BigEndian.Uint32(code[pc+8 : pc+12]))
	pc += 12
	if high < low {
		return nil, 0, vmerrors.New(vmerrors.MalformedAttribute, "tableswitch high < low")
	}
	count := int(high-low) + 1
	end := pc + count*4
	if end > len(code) {
		return nil, 0, vmerrors.New(vmerrors.MalformedAttribute, "truncated tableswitch jump table")
	}
	pc = end
	return code[opStart:pc], pc, nil
}

// readLookupSwitch consumes a lookupswitch instruction's padding, default
// offset, pair count, and match/offset pairs.
func readLookupSwitch(code []byte, pc int) ([]byte, int, error) {
	opStart := pc
	pc = align4(pc)
	if pc+8 > len(code) {
		return nil, 0, vmerrors.New(vmerrors.MalformedAttribute, "truncated lookupswitch header")
	}
	npairs := int(int32(binary.BigEndian.Uint32(code[pc+4 : pc+8])))
	if npairs < 0 {
		return nil, 0, vmerrors.New(vmerrors.MalformedAttribute, "lookupswitch negative pair count")
	}
	pc += 8
	end := pc + npairs*8
	if end > len(code) {
		return nil, 0, vmerrors.New(vmerrors.MalformedAttribute, "truncated lookupswitch pairs")
	}
	pc = end
	return code[opStart:pc], pc, nil
}

// align4 returns the first position >= pc that is a multiple of 4, measured
// from the start of the method's own bytecode array (not from the
// instruction's offset) — the padding rule tableswitch/lookupswitch need so
// defaultbyte1 lands on a 4-byte boundary.
func align4(pc int) int {
	for pc%4 != 0 {
		pc++
	}
	return pc
}

// readWide consumes the modified instruction that follows a wide prefix: a
// 2-byte index for most opcodes, or a 2-byte index plus a 2-byte constant
// for iinc.
func readWide(code []byte, pc int) ([]byte, int, error) {
	opStart := pc
	if pc >= len(code) {
		return nil, 0, vmerrors.New(vmerrors.MalformedAttribute, "truncated wide instruction")
	}
	modified := code[pc]
	pc++
	n := 2
	if modified == 0x84 { // iinc
		n = 4
	}
	if pc+n > len(code) {
		return nil, 0, vmerrors.New(vmerrors.MalformedAttribute, "truncated wide operand")
	}
	pc += n
	return code[opStart:pc], pc, nil
}
