/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package render

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"jvmcore/class"

	"github.com/stretchr/testify/require"
)

func buildMinimalClassBytes(name string) []byte {
	var buf bytes.Buffer
	w := func(v interface{}) { binary.Write(&buf, binary.BigEndian, v) }
	w(uint32(0xCAFEBABE))
	w(uint16(0))
	w(uint16(61))
	w(uint16(3))
	buf.WriteByte(7)
	w(uint16(2))
	buf.WriteByte(1)
	w(uint16(len(name)))
	buf.WriteString(name)
	w(uint16(0))
	w(uint16(1))
	w(uint16(0))
	w(uint16(0))
	w(uint16(0))
	w(uint16(0))
	w(uint16(0))
	return buf.Bytes()
}

func TestLoadLinkResolveEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.class")
	require.NoError(t, os.WriteFile(path, buildMinimalClassBytes("A"), 0o644))

	result, err := LoadLinkResolve(path, false)
	require.NoError(t, err)
	require.Equal(t, class.RESOLVED, result.Entry.State)
	require.NotNil(t, result.VM.SlotBuffers)

	out := Render(result)
	require.Contains(t, out, "class A")
	require.Contains(t, out, "fields (0)")
	require.Contains(t, out, "methods (0)")
	require.Contains(t, out, "execution stack pools")
}
