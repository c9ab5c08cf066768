/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"jvmcore/class"
	"jvmcore/constpool"
	"jvmcore/vmerrors"
)

// parseMethods reads methods_count then that many method_info structures,
// extracting the Code attribute's max_stack, max_locals, code bytes, and
// exception table when present.
func parseMethods(c *cursor, pool *constpool.Pool, entry *class.ClassEntry) error {
	count, err := c.u2()
	if err != nil {
		return err
	}
	entry.Methods = make([]class.MethodEntry, 0, count)

	for i := 0; i < int(count); i++ {
		accessFlags, err := c.u2()
		if err != nil {
			return err
		}
		nameIdx, err := c.u2()
		if err != nil {
			return err
		}
		descIdx, err := c.u2()
		if err != nil {
			return err
		}

		name, err := pool.Utf8At(nameIdx)
		if err != nil {
			return err
		}
		desc, err := pool.Utf8At(descIdx)
		if err != nil {
			return err
		}

		method := class.MethodEntry{
			Owning:     entry,
			Name:       name,
			Descriptor: desc,
			Access:     class.MethodAccessFlags(accessFlags),
			ArgCount:   argCountFromDescriptor(desc),
		}

		attrCount, err := c.u2()
		if err != nil {
			return err
		}
		for a := 0; a < int(attrCount); a++ {
			attrNameIdx, err := c.u2()
			if err != nil {
				return err
			}
			attrLen, err := c.u4()
			if err != nil {
				return err
			}
			attrName, err := pool.Utf8At(attrNameIdx)
			if err != nil {
				return err
			}
			switch attrName {
			case "Code":
				if err := parseCodeAttribute(c, pool, &method); err != nil {
					return err
				}
			case "Signature":
				if attrLen != 2 {
					return vmerrors.Newf(vmerrors.MalformedAttribute, "Signature attribute has length %d, want 2", attrLen)
				}
				idx, err := c.u2()
				if err != nil {
					return err
				}
				sig, err := pool.Utf8At(idx)
				if err != nil {
					return err
				}
				method.Signature = sig
			default:
				if err := c.skip(int(attrLen)); err != nil {
					return err
				}
			}
		}
		entry.Methods = append(entry.Methods, method)
	}
	return nil
}

// parseCodeAttribute reads max_stack, max_locals, code_length, the code
// bytes, the exception table, and (skipped) the Code attribute's own
// sub-attributes.
func parseCodeAttribute(c *cursor, pool *constpool.Pool, method *class.MethodEntry) error {
	maxStack, err := c.u2()
	if err != nil {
		return err
	}
	maxLocals, err := c.u2()
	if err != nil {
		return err
	}
	codeLength, err := c.u4()
	if err != nil {
		return err
	}
	if codeLength == 0 || codeLength > 65535 {
		return vmerrors.Newf(vmerrors.MalformedAttribute, "code_length %d out of bounds (0, 65535]", codeLength)
	}
	code, err := c.bytes(int(codeLength))
	if err != nil {
		return err
	}

	method.MaxStack = int(maxStack)
	method.MaxLocals = int(maxLocals)
	method.CodeLength = int(codeLength)
	method.Code = code

	exceptionTableLength, err := c.u2()
	if err != nil {
		return err
	}
	method.ExceptionTable = make([]class.ExceptionTableEntry, 0, exceptionTableLength)
	for i := 0; i < int(exceptionTableLength); i++ {
		startPC, err := c.u2()
		if err != nil {
			return err
		}
		endPC, err := c.u2()
		if err != nil {
			return err
		}
		handlerPC, err := c.u2()
		if err != nil {
			return err
		}
		catchType, err := c.u2()
		if err != nil {
			return err
		}
		method.ExceptionTable = append(method.ExceptionTable, class.ExceptionTableEntry{
			StartPC:   int(startPC),
			EndPC:     int(endPC),
			HandlerPC: int(handlerPC),
			CatchType: catchType,
		})
	}

	// Code attribute's own sub-attributes (LineNumberTable, LocalVariableTable,
	// StackMapTable, ...) are not materialized by this core; skip them whole.
	subAttrCount, err := c.u2()
	if err != nil {
		return err
	}
	for i := 0; i < int(subAttrCount); i++ {
		if _, err := c.u2(); err != nil { // attribute_name_index
			return err
		}
		attrLen, err := c.u4()
		if err != nil {
			return err
		}
		if err := c.skip(int(attrLen)); err != nil {
			return err
		}
	}
	return nil
}

// argCountFromDescriptor counts the formal parameters in a method
// descriptor like "(ILjava/lang/String;[I)V", skipping array dimensions and
// reference-type bodies without a full descriptor parser.
func argCountFromDescriptor(desc string) int {
	count := 0
	i := 0
	if len(desc) == 0 || desc[0] != '(' {
		return 0
	}
	i++
	for i < len(desc) && desc[i] != ')' {
		switch desc[i] {
		case '[':
			i++
			continue
		case 'L':
			for i < len(desc) && desc[i] != ';' {
				i++
			}
			i++
		default:
			i++
		}
		count++
	}
	return count
}
