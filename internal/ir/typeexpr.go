package ir

import "strings"

var keywordTypes = map[string]SourceType{
	"int8":    Prim(PrimInt8),
	"byte":    Prim(PrimInt8),
	"int16":   Prim(PrimInt16),
	"short":   Prim(PrimInt16),
	"int32":   Prim(PrimInt32),
	"int":     Prim(PrimInt32),
	"float32": Prim(PrimFloat32),
	"float":   Prim(PrimFloat32),
	"int64":   Prim(PrimInt64),
	"long":    Prim(PrimInt64),
	"bool":    Prim(PrimBool),
	"boolean": Prim(PrimBool),
	"string":  Text(),
	"text":    Text(),
	"any":     Opaque(),
	"object":  Opaque(),
	"intseq":  IntArray(),
}

// ParseType reads a textual type expression such as "int32", "[]string",
// "short[]" or "Seq<int64>". Anything it does not recognise becomes an
// Unknown type carrying the original text.
func ParseType(expr string) SourceType {
	expr = strings.TrimSpace(expr)
	if t, ok := keywordTypes[strings.ToLower(expr)]; ok {
		return t
	}
	if rest, ok := strings.CutPrefix(expr, "[]"); ok && rest != "" {
		return ArrayOf(ParseType(rest))
	}
	if rest, ok := strings.CutSuffix(expr, "[]"); ok && rest != "" {
		return ArrayOf(ParseType(rest))
	}
	if name, arg, ok := splitGeneric(expr); ok {
		return ContainerOf(name, ParseType(arg))
	}
	return Unknown(expr)
}

// splitGeneric accepts Name<Arg> with exactly one top-level type argument.
func splitGeneric(expr string) (string, string, bool) {
	open := strings.IndexByte(expr, '<')
	if open <= 0 || !strings.HasSuffix(expr, ">") {
		return "", "", false
	}
	name := strings.TrimSpace(expr[:open])
	arg := strings.TrimSpace(expr[open+1 : len(expr)-1])
	if arg == "" {
		return "", "", false
	}
	depth := 0
	for _, r := range arg {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return "", "", false
			}
		case ',':
			if depth == 0 {
				return "", "", false
			}
		}
	}
	if depth != 0 {
		return "", "", false
	}
	return name, arg, true
}
