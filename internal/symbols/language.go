// Package symbols provides tree-sitter based symbol extraction from source files.
package symbols

// Language represents a supported programming language.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
)

// Symbol represents an extracted symbol from source code.
type Symbol struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`      // "function", "method", "class", "type", "interface"
	Path      string `json:"path"`      // File path
	Line      int    `json:"line"`      // Start line (1-indexed)
	EndLine   int    `json:"endLine"`   // End line (1-indexed)
	Container string `json:"container"` // Parent class/struct/impl name for methods
	Signature string `json:"signature"` // Full signature from source
}

// LanguageFromExtension maps a lowercase file extension to a Language.
func LanguageFromExtension(ext string) (Language, bool) {
	switch ext {
	case ".go":
		return LangGo, true
	case ".js", ".mjs", ".cjs":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".jsx":
		return LangJavaScript, true // JSX uses JS parser
	case ".py", ".pyw":
		return LangPython, true
	case ".rs":
		return LangRust, true
	case ".java":
		return LangJava, true
	case ".kt", ".kts":
		return LangKotlin, true
	default:
		return "", false
	}
}
