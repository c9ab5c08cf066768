/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "math"

func float32FromBits(bits uint32) float32 { return math.Float32frombits(bits) }

func float64FromBits(bits uint64) float64 { return math.Float64frombits(bits) }
