//go:build cgo

package symbols

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor extracts symbols from source files using tree-sitter.
type Extractor struct {
	parser *Parser
}

// NewExtractor creates a new symbol extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		parser: NewParser(),
	}
}

// Extract extracts symbols from source bytes. The language is detected from
// the path's extension; unsupported extensions yield an empty result.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]Symbol, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := LanguageFromExtension(ext)
	if !ok {
		return nil, nil
	}

	return e.ExtractSource(ctx, path, source, lang)
}

// ExtractSource extracts symbols from source bytes for a known language.
func (e *Extractor) ExtractSource(ctx context.Context, path string, source []byte, lang Language) ([]Symbol, error) {
	root, err := e.parser.Parse(ctx, source, lang)
	if err != nil {
		return nil, err
	}

	var syms []Symbol

	functionTypes := getFunctionNodeTypes(lang)
	functions := findNodes(root, functionTypes)
	for _, fn := range functions {
		sym := e.extractFunction(fn, source, lang, path, "")
		if sym != nil {
			syms = append(syms, *sym)
		}
	}

	classTypes := getClassNodeTypes(lang)
	classes := findNodes(root, classTypes)
	for _, cls := range classes {
		sym := e.extractClass(cls, source, lang, path)
		if sym != nil {
			syms = append(syms, *sym)
			// Extract methods inside the class
			methods := e.extractMethods(cls, source, lang, path, sym.Name)
			syms = append(syms, methods...)
		}
	}

	return syms, nil
}

// extractFunction extracts a symbol from a function node.
func (e *Extractor) extractFunction(node *sitter.Node, source []byte, lang Language, path, container string) *Symbol {
	name := getFunctionName(node, source, lang)
	if name == "" || name == "<unknown>" {
		return nil
	}

	kind := "function"
	if node.Type() == "method_declaration" || node.Type() == "method_definition" {
		kind = "method"
	}
	if container != "" {
		kind = "method"
	}

	return &Symbol{
		Name:      name,
		Kind:      kind,
		Path:      path,
		Line:      int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		Container: container,
		Signature: extractSignature(node, source),
	}
}

// extractClass extracts a symbol from a class/type node.
func (e *Extractor) extractClass(node *sitter.Node, source []byte, lang Language, path string) *Symbol {
	name := getClassName(node, source, lang)
	if name == "" {
		return nil
	}

	return &Symbol{
		Name:      name,
		Kind:      getClassKind(node, lang),
		Path:      path,
		Line:      int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		Signature: extractClassSignature(node, source),
	}
}

// extractMethods extracts method symbols from inside a class/type.
func (e *Extractor) extractMethods(classNode *sitter.Node, source []byte, lang Language, path, className string) []Symbol {
	var methods []Symbol

	methodTypes := getMethodNodeTypes(lang)
	methodNodes := findNodes(classNode, methodTypes)

	for _, m := range methodNodes {
		sym := e.extractFunction(m, source, lang, path, className)
		if sym != nil {
			methods = append(methods, *sym)
		}
	}

	return methods
}

// getFunctionNodeTypes returns node types for functions (not methods inside classes).
func getFunctionNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"function_declaration", "method_declaration"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"function_declaration", "arrow_function", "generator_function_declaration"}
	case LangPython:
		return []string{"function_definition"}
	case LangRust:
		return []string{"function_item"}
	case LangJava:
		// Top-level methods are inside class bodies, handled separately
		return []string{}
	case LangKotlin:
		return []string{"function_declaration"}
	default:
		return nil
	}
}

// getClassNodeTypes returns node types for classes/types/interfaces.
func getClassNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"type_declaration"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"class_declaration", "interface_declaration"}
	case LangPython:
		return []string{"class_definition"}
	case LangRust:
		return []string{"struct_item", "enum_item", "trait_item", "impl_item"}
	case LangJava:
		return []string{"class_declaration", "interface_declaration", "enum_declaration"}
	case LangKotlin:
		return []string{"class_declaration", "interface_declaration", "object_declaration"}
	default:
		return nil
	}
}

// getMethodNodeTypes returns node types for methods inside classes.
func getMethodNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return nil // Go methods are at top level with receivers
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"method_definition"}
	case LangPython:
		return []string{"function_definition"}
	case LangRust:
		return []string{"function_item"} // Inside impl blocks
	case LangJava:
		return []string{"method_declaration", "constructor_declaration"}
	case LangKotlin:
		return []string{"function_declaration"}
	default:
		return nil
	}
}

// getFunctionName extracts the function name from a node.
func getFunctionName(node *sitter.Node, source []byte, lang Language) string {
	var nameNode *sitter.Node

	switch lang {
	case LangGo:
		nameNode = node.ChildByFieldName("name")
		if nameNode == nil {
			for i := uint32(0); i < node.ChildCount(); i++ {
				child := node.Child(int(i))
				if child != nil && child.Type() == "identifier" {
					nameNode = child
					break
				}
			}
		}

	case LangJavaScript, LangTypeScript, LangTSX, LangPython, LangRust, LangJava:
		nameNode = node.ChildByFieldName("name")

	case LangKotlin:
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child != nil && child.Type() == "simple_identifier" {
				nameNode = child
				break
			}
		}
	}

	if nameNode != nil {
		return string(source[nameNode.StartByte():nameNode.EndByte()])
	}

	// Check for anonymous functions
	switch node.Type() {
	case "arrow_function", "func_literal", "lambda", "lambda_expression",
		"closure_expression", "lambda_literal", "anonymous_function":
		return "<anonymous>"
	}

	return ""
}

// getClassName extracts the class/type name from a node.
func getClassName(node *sitter.Node, source []byte, lang Language) string {
	var nameNode *sitter.Node

	switch lang {
	case LangGo:
		// type_declaration has type_spec child which has the name
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child != nil && child.Type() == "type_spec" {
				nameNode = child.ChildByFieldName("name")
				break
			}
		}

	case LangJavaScript, LangTypeScript, LangTSX, LangPython:
		nameNode = node.ChildByFieldName("name")

	case LangRust:
		nameNode = node.ChildByFieldName("name")
		// For impl blocks, try to get the type being implemented
		if nameNode == nil && node.Type() == "impl_item" {
			for i := uint32(0); i < node.ChildCount(); i++ {
				child := node.Child(int(i))
				if child != nil && child.Type() == "type_identifier" {
					nameNode = child
					break
				}
			}
		}

	case LangJava, LangKotlin:
		nameNode = node.ChildByFieldName("name")
		if nameNode == nil {
			for i := uint32(0); i < node.ChildCount(); i++ {
				child := node.Child(int(i))
				if child != nil && (child.Type() == "identifier" || child.Type() == "simple_identifier") {
					nameNode = child
					break
				}
			}
		}
	}

	if nameNode != nil {
		return string(source[nameNode.StartByte():nameNode.EndByte()])
	}

	return ""
}

// getClassKind determines the kind of class/type node.
func getClassKind(node *sitter.Node, lang Language) string {
	nodeType := node.Type()

	switch lang {
	case LangGo:
		return "type" // Go has type declarations (struct, interface, etc.)

	case LangJavaScript, LangTypeScript, LangTSX:
		if nodeType == "interface_declaration" {
			return "interface"
		}
		return "class"

	case LangPython:
		return "class"

	case LangRust:
		switch nodeType {
		case "trait_item":
			return "interface"
		default:
			return "type"
		}

	case LangJava, LangKotlin:
		switch nodeType {
		case "interface_declaration":
			return "interface"
		case "enum_declaration":
			return "type"
		case "object_declaration": // Kotlin object
			return "class"
		}
		return "class"
	}

	return "type"
}

// extractSignature extracts a function signature from source.
func extractSignature(node *sitter.Node, source []byte) string {
	startByte := node.StartByte()
	endByte := node.EndByte()

	// Find the end of the first line or opening brace
	text := source[startByte:endByte]
	for i, b := range text {
		if b == '\n' || b == '{' {
			return strings.TrimSpace(string(text[:i]))
		}
	}

	// Short function, return all
	if len(text) < 200 {
		return strings.TrimSpace(string(text))
	}
	return strings.TrimSpace(string(text[:200])) + "..."
}

// extractClassSignature extracts a class/type signature from source.
func extractClassSignature(node *sitter.Node, source []byte) string {
	startByte := node.StartByte()
	endByte := node.EndByte()

	text := source[startByte:endByte]
	for i, b := range text {
		if b == '\n' || b == '{' || b == ':' {
			sig := strings.TrimSpace(string(text[:i]))
			if sig != "" {
				return sig
			}
		}
	}

	if len(text) < 100 {
		return strings.TrimSpace(string(text))
	}
	return strings.TrimSpace(string(text[:100])) + "..."
}

// findNodes finds all nodes of the given types in the AST.
func findNodes(root *sitter.Node, types []string) []*sitter.Node {
	if len(types) == 0 {
		return nil
	}

	var result []*sitter.Node

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		for _, t := range types {
			if node.Type() == t {
				result = append(result, node)
				break
			}
		}

		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}

	walk(root)
	return result
}
