// Package cfgfile renders the generated configuration artifact: a Go
// constants file recording the probed capability set. The artifact is
// produced before the main build and consumed read-only thereafter;
// it is the only channel between the probe and downstream code.
package cfgfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"atomica/internal/atomics"
	"atomica/internal/target"
)

// DefaultPackage is the package name used when the caller does not
// pick one.
const DefaultPackage = "atomiccfg"

// Render produces the artifact contents for a target and its probed
// set. Output is byte-stable for a given (package, target, set), so
// repeated generation never dirties the build.
func Render(pkg string, t target.Triple, s atomics.Set) []byte {
	var b bytes.Buffer
	b.WriteString("// Code generated by atomica; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "// Target is the identifier this configuration was generated for.\nconst Target = %q\n\n", t.Raw)
	b.WriteString("const (\n")
	fmt.Fprintf(&b, "\tHasAtomic8   = %t\n", s.Has8)
	fmt.Fprintf(&b, "\tHasAtomic16  = %t\n", s.Has16)
	fmt.Fprintf(&b, "\tHasAtomic32  = %t\n", s.Has32)
	fmt.Fprintf(&b, "\tHasAtomic64  = %t\n", s.Has64)
	fmt.Fprintf(&b, "\tHasAtomicPtr = %t\n", s.HasPtr)
	b.WriteString(")\n")
	return b.Bytes()
}

// Write places data at path, replacing it atomically. It reports
// whether the file actually changed; an identical existing file is
// left untouched.
func Write(path string, data []byte) (bool, error) {
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, data) {
		return false, nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return false, err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return false, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return false, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, err
	}
	return true, nil
}
