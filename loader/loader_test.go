/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package loader

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"jvmcore/methodarea"

	"github.com/stretchr/testify/require"
)

// buildMinimalClassBytes mirrors classfile's own test builder; duplicated
// here (rather than imported) to keep loader's tests from depending on
// classfile's unexported helpers.
func buildMinimalClassBytes(name string) []byte {
	var buf bytes.Buffer
	w := func(v interface{}) { binary.Write(&buf, binary.BigEndian, v) }
	w(uint32(0xCAFEBABE))
	w(uint16(0)) // minor
	w(uint16(61))
	w(uint16(3)) // pool count
	buf.WriteByte(7) // tagClass
	w(uint16(2))
	buf.WriteByte(1) // tagUtf8
	w(uint16(len(name)))
	buf.WriteString(name)
	w(uint16(0)) // access flags
	w(uint16(1)) // this_class
	w(uint16(0)) // super_class
	w(uint16(0)) // interfaces
	w(uint16(0)) // fields
	w(uint16(0)) // methods
	w(uint16(0)) // attributes
	return buf.Bytes()
}

func TestLoadClassFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.class")
	require.NoError(t, os.WriteFile(path, buildMinimalClassBytes("A"), 0o644))

	l := New("bootstrap", methodarea.New())
	entry, err := l.LoadClassFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "A", entry.Name)
}

func TestLoadClassFromFileCycleSafety(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.class")
	require.NoError(t, os.WriteFile(path, buildMinimalClassBytes("A"), 0o644))

	store := methodarea.New()
	l := New("bootstrap", store)
	first, err := l.LoadClassFromFile(path)
	require.NoError(t, err)

	second, err := l.LoadClassFromFile(path)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, store.Count())
}

func TestDefineClass(t *testing.T) {
	l := New("bootstrap", methodarea.New())
	entry, err := l.DefineClass("A", buildMinimalClassBytes("A"))
	require.NoError(t, err)
	require.Equal(t, "A", entry.Name)
}

func TestLoadClassFromJar(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, "app.jar")

	f, err := os.Create(jarPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("A.class")
	require.NoError(t, err)
	_, err = w.Write(buildMinimalClassBytes("A"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	l := New("bootstrap", methodarea.New())
	count, entries, err := l.LoadClassFromJar(jarPath)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, "A", entries[0].Name)
}
