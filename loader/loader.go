/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package loader acquires class bytes from a file or jar member, hands them
// to the parser, registers the result in the method area, and transitions
// it to state LOADED.
package loader

import (
	"archive/zip"
	"io"
	"os"
	"strings"

	mmap "github.com/edsrzf/mmap-go"

	"jvmcore/class"
	"jvmcore/classfile"
	"jvmcore/methodarea"
	"jvmcore/vmerrors"
	"jvmcore/vmlog"
)

// Loader is the defining class loader, identified by Name and backed by an
// explicit *methodarea.Store rather than package-level globals.
type Loader struct {
	Name  string
	Store *methodarea.Store
}

// New builds a Loader over the given method-area store. This core
// implements only the safe default for class-loader delegation: a single
// loader, no parent delegation.
func New(name string, store *methodarea.Store) *Loader {
	return &Loader{Name: name, Store: store}
}

func normalizeFilename(path string) string {
	if strings.HasSuffix(path, ".class") {
		return path
	}
	return path + ".class"
}

// LoadClassFromFile reads a .class file from disk and runs it through the
// parser. The file is mmap'd the way saferwall-pe mmaps whole PE images,
// then copied once into a buffer the parsed class owns (see below), so
// each file still costs one copy; jar members are read separately by
// LoadClassFromJar.
func (l *Loader) LoadClassFromFile(path string) (*class.ClassEntry, error) {
	filename := normalizeFilename(path)

	f, err := os.Open(filename)
	if err != nil {
		return nil, vmerrors.Wrap(vmerrors.MalformedClassFile, err, "opening class file "+filename)
	}
	defer f.Close()

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, vmerrors.Wrap(vmerrors.MalformedClassFile, err, "mapping class file "+filename)
	}
	defer mapped.Unmap()

	// Copy out of the mapping before returning: the mapping is unmapped
	// when this function returns, but class.MethodEntry.Code may reference
	// slices into the parser's input buffer, so the buffer handed to the
	// parser must outlive the mapping.
	owned := make([]byte, len(mapped))
	copy(owned, mapped)

	return l.defineFromBytes(filename, owned)
}

func (l *Loader) defineFromBytes(sourceDesc string, raw []byte) (*class.ClassEntry, error) {
	entry, err := classfile.Parse(raw, "")
	if err != nil {
		vmlog.Error("failed to parse class", "source", sourceDesc, "err", err.Error())
		return nil, err
	}
	entry.Loader = l.Name

	result, err := l.Store.LoadOnce(entry.Name, func() (*class.ClassEntry, error) {
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	vmlog.Trace("loaded class", "class", result.Name, "source", sourceDesc)
	return result, nil
}

// DefineClass is the direct parse+register entry point: given a name and a
// raw byte buffer, parse and insert it without touching the filesystem.
func (l *Loader) DefineClass(name string, data []byte) (*class.ClassEntry, error) {
	entry, err := classfile.Parse(data, name)
	if err != nil {
		return nil, err
	}
	entry.Loader = l.Name
	return l.Store.LoadOnce(entry.Name, func() (*class.ClassEntry, error) {
		return entry, nil
	})
}

// LoadClassFromJar enumerates .class members of a jar/zip archive and
// parses each one. archive/zip is the external collaborator here: this
// function only contracts that it yields per-member byte buffers, the
// jar-decompression internals themselves being out of scope.
func (l *Loader) LoadClassFromJar(jarPath string) (int, []*class.ClassEntry, error) {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return 0, nil, vmerrors.Wrap(vmerrors.MalformedClassFile, err, "opening jar "+jarPath)
	}
	defer r.Close()

	var out []*class.ClassEntry
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return len(out), out, vmerrors.Wrap(vmerrors.MalformedClassFile, err, "opening jar member "+f.Name)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return len(out), out, vmerrors.Wrap(vmerrors.MalformedClassFile, err, "reading jar member "+f.Name)
		}
		entry, err := l.defineFromBytes(jarPath+"!"+f.Name, data)
		if err != nil {
			return len(out), out, err
		}
		out = append(out, entry)
	}
	return len(out), out, nil
}
