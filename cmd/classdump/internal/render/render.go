/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package render drives the load -> link -> resolve pipeline for a single
// .class file and formats the result, the two responsibilities
// cmd/classdump's dump subcommand needs. Styling is grounded on
// mabhi256-jdiag's utils.styles.go palette and section-box conventions.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"jvmcore/class"
	"jvmcore/jvm"
	"jvmcore/vmconfig"
	"jvmcore/vmlog"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4682B4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCCCCC"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).Padding(1, 2)
)

// Result bundles the loaded class with the VM instance that produced it, so
// Render can report the execution-stack pool capacities the VM was
// configured with alongside the class structure.
type Result struct {
	Entry *class.ClassEntry
	VM    *jvm.VM
}

// LoadLinkResolve loads the class file at path, links it, and resolves its
// constant pool, looking up any super/interface class by sibling .class
// file in the same directory (this core has no classpath concept). The VM
// is built from a vmconfig.Config with verbose set from the caller's flag,
// so cfg.Verbose — not the raw bool — drives vmlog output.
func LoadLinkResolve(path string, verbose bool) (*Result, error) {
	cfg := vmconfig.New(vmconfig.WithVerbose(verbose))
	vmlog.SetVerbose(cfg.Verbose)

	vm, err := jvm.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	entry, err := vm.Loader.LoadClassFromFile(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	loadSuper := func(name string) (*class.ClassEntry, error) {
		base := filepath.Base(name)
		return vm.Loader.LoadClassFromFile(filepath.Join(dir, base))
	}

	if entry.State == class.LOADED {
		if err := vm.Linker.LinkClass(entry, loadSuper); err != nil {
			return nil, err
		}
	}
	if entry.State == class.LINKED {
		if err := vm.Linker.ResolveClass(entry, loadSuper); err != nil {
			return nil, err
		}
	}
	return &Result{Entry: entry, VM: vm}, nil
}

// Render formats a Result as a styled multi-section report: header (with
// the direct super class name), pool summary, fields, methods, and the VM's execution-stack pool
// configuration.
func Render(r *Result) string {
	entry := r.Entry
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("class %s", entry.Name)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("state=%s access=0x%04x super=%s", entry.State, uint16(entry.Access), superName(entry))))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("constant pool"))
	b.WriteString(fmt.Sprintf("\n  %d entries\n\n", entry.Pool.Len()))

	b.WriteString(headerStyle.Render(fmt.Sprintf("fields (%d)", len(entry.Fields))))
	b.WriteString("\n")
	for _, f := range entry.Fields {
		b.WriteString(fmt.Sprintf("  %s %s\n", f.Descriptor, f.Name))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("methods (%d)", len(entry.Methods))))
	b.WriteString("\n")
	for _, m := range entry.Methods {
		b.WriteString(fmt.Sprintf("  %s%s  max_stack=%d max_locals=%d code_length=%d\n",
			m.Name, m.Descriptor, m.MaxStack, m.MaxLocals, m.CodeLength))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("execution stack pools"))
	b.WriteString(fmt.Sprintf("\n  slot_buffers=%d stack_frames=%d ref_handles=%d max_stack_depth=%d\n",
		r.VM.Config.SlotBufferPoolCapacity, r.VM.Config.StackFramePoolCapacity,
		r.VM.Config.RefHandlePoolCapacity, r.VM.Config.MaxStackDepth))

	return boxStyle.Render(b.String())
}

func superName(entry *class.ClassEntry) string {
	if entry.SuperName == "" {
		return "(none)"
	}
	return entry.SuperName
}
