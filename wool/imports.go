package wool

import (
	"sort"
)

const (
	javaUtilPackage   = "java.util"
	javaListClass     = "List"
	immutableListPkg  = "com.google.common.collect"
	immutableListType = "ImmutableList"
)

// ImportSet stores referenced classes per package.
//
// The zero value is not usable; create one with NewImportSet.
type ImportSet struct {
	pkgs map[string]map[string]struct{}
}

func NewImportSet() *ImportSet {
	return &ImportSet{pkgs: make(map[string]map[string]struct{})}
}

// Add records class in pkg.
func (s *ImportSet) Add(pkg, class string) {
	classes, ok := s.pkgs[pkg]
	if !ok {
		classes = make(map[string]struct{})
		s.pkgs[pkg] = classes
	}
	classes[class] = struct{}{}
}

// Merge adds every entry of other to s. other is left untouched.
func (s *ImportSet) Merge(other *ImportSet) {
	if other == nil || other == s {
		return
	}
	for pkg, classes := range other.pkgs {
		for class := range classes {
			s.Add(pkg, class)
		}
	}
}

// Has reports whether any class of pkg was recorded.
func (s *ImportSet) Has(pkg string) bool {
	_, ok := s.pkgs[pkg]
	return ok
}

// Contains reports whether pkg.class was recorded.
func (s *ImportSet) Contains(pkg, class string) bool {
	_, ok := s.pkgs[pkg][class]
	return ok
}

// Packages returns the recorded packages, sorted.
func (s *ImportSet) Packages() []string {
	out := make([]string, 0, len(s.pkgs))
	for pkg := range s.pkgs {
		out = append(out, pkg)
	}
	sort.Strings(out)
	return out
}

// Strings flattens the set to sorted "package.Class" strings.
func (s *ImportSet) Strings() []string {
	var out []string
	for pkg, classes := range s.pkgs {
		for class := range classes {
			out = append(out, pkg+"."+class)
		}
	}
	sort.Strings(out)
	return out
}

// Len is the number of recorded classes.
func (s *ImportSet) Len() int {
	n := 0
	for _, classes := range s.pkgs {
		n += len(classes)
	}
	return n
}

func (s *ImportSet) Clone() *ImportSet {
	out := NewImportSet()
	out.Merge(s)
	return out
}
