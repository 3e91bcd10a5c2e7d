package wool

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alpakka/wools/schema"
)

const (
	// ListClassSuffix is appended to a list's class name to name its element class.
	ListClassSuffix = "ListType"
	// CaseClassSuffix is appended to the class name of a choice case.
	CaseClassSuffix = "CaseType"
	// CollisionSuffix disambiguates a class whose name is already taken by a node of another kind.
	CollisionSuffix = "Top"
	// ReservedPrefix is prepended to member names that are Java keywords.
	ReservedPrefix = "_"
)

var javaReservedWords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true,
}

var javaWrapperClasses = map[string]string{
	"int":     "Integer",
	"boolean": "Boolean",
	"double":  "Double",
}

var javaDefaults = map[string]string{
	"int":     "0",
	"boolean": "false",
	"double":  "0.0",
	"String":  `""`,
}

var (
	hyphenLetter = regexp.MustCompile(`-([a-zA-Z])`)
	leadingDigit = regexp.MustCompile(`^(\d)`)
)

// Names converts schema identifiers to Java identifiers. Class name
// conversions are memoized; a Names value is not safe for concurrent use.
type Names struct {
	caser cases.Caser
	cache *lru.Cache[string, string]
}

func NewNames() *Names {
	cache, err := lru.New[string, string](4096)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &Names{
		caser: cases.Title(language.Und),
		cache: cache,
	}
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
}

// ClassName splits id on separators, title-cases every word and joins them.
// A letter that follows a digit starts a new word.
//
//	ClassName("some-type") == "SomeType"
//	ClassName("ipv4address") == "Ipv4Address"
func (n *Names) ClassName(id string) string {
	if v, ok := n.cache.Get(id); ok {
		return v
	}
	var sb strings.Builder
	for _, word := range strings.FieldsFunc(id, isSeparator) {
		for _, part := range letterRuns(word) {
			sb.WriteString(n.caser.String(part))
		}
	}
	out := sb.String()
	n.cache.Add(id, out)
	return out
}

// letterRuns cuts word before every letter that follows a non-letter.
func letterRuns(word string) []string {
	var parts []string
	start := 0
	prevLetter := false
	for i, r := range word {
		letter := unicode.IsLetter(r)
		if letter && !prevLetter && i > start {
			parts = append(parts, word[start:i])
			start = i
		}
		prevLetter = letter
	}
	return append(parts, word[start:])
}

// CamelCase lower-cases the first letter and removes hyphens, upper-casing the
// letter that follows each one. Java keywords get ReservedPrefix.
func CamelCase(id string) string {
	if id == "" {
		return ""
	}
	name := FirstLower(id)
	name = hyphenLetter.ReplaceAllStringFunc(name, func(m string) string {
		return strings.ToUpper(m[1:])
	})
	if javaReservedWords[name] {
		return ReservedPrefix + name
	}
	return name
}

// MemberName strips one leading underscore and converts the rest with CamelCase.
//
//	MemberName("_example-name") == "exampleName"
func MemberName(id string) string {
	return CamelCase(strings.TrimPrefix(id, "_"))
}

// PackageName lower-cases a module name, turns hyphens into dots and
// prepends prefix when set.
func PackageName(module, prefix string) string {
	pkg := strings.ReplaceAll(strings.ToLower(module), "-", ".")
	if prefix != "" {
		pkg = prefix + "." + pkg
	}
	return pkg
}

// Subpath is the directory form of PackageName.
func Subpath(module, prefix string) string {
	return strings.ReplaceAll(PackageName(module, prefix), ".", "/")
}

// EnumConstant converts an enum value name to a Java constant.
func EnumConstant(id string) string {
	name := leadingDigit.ReplaceAllString(strings.ToUpper(id), "_$1")
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// BitName converts a bit name to a safe Java identifier.
func BitName(id string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(id)
}

// FirstUpper drops leading underscores and upper-cases the first letter.
func FirstUpper(s string) string {
	s = strings.TrimLeft(s, "_")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// FirstLower lower-cases the first letter.
func FirstLower(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// JavaDefault is the default value literal for a Java type.
func JavaDefault(javaType string) string {
	if v, ok := javaDefaults[javaType]; ok {
		return v
	}
	return "null"
}

// BoxedType returns the wrapper class of a Java primitive, or "".
func BoxedType(javaType string) string {
	return javaWrapperClasses[javaType]
}

// augmentKey concatenates the class names of every ancestor below the module
// and the node's own name.
func (n *Names) augmentKey(node *schema.Node) string {
	key := ""
	if node.Parent != nil && node.Parent.Parent != nil {
		key = n.augmentKey(node.Parent)
	}
	return key + n.ClassName(node.Name)
}

// GenerateName returns the class name for node in the context of registry
// mod. Augmented nodes are named by their ancestor path; other nodes by their
// identifier, with CollisionSuffix appended when mod already holds a class,
// type definition, enumeration or bits type of that name built from a node
// of another kind.
func (n *Names) GenerateName(node *schema.Node, mod *Module) string {
	if node.Augmented {
		return n.augmentKey(node)
	}
	name := n.ClassName(node.Name)
	if mod != nil {
		if mod.takenByOtherKind(name, node.Kind) {
			name += CollisionSuffix
		}
	}
	return name
}
