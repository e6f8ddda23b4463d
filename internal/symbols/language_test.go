package symbols

import "testing"

func TestLanguageFromExtension(t *testing.T) {
	tests := []struct {
		ext      string
		expected Language
		ok       bool
	}{
		{".go", LangGo, true},
		{".js", LangJavaScript, true},
		{".jsx", LangJavaScript, true},
		{".ts", LangTypeScript, true},
		{".tsx", LangTSX, true},
		{".py", LangPython, true},
		{".rs", LangRust, true},
		{".java", LangJava, true},
		{".kt", LangKotlin, true},
		{".md", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		lang, ok := LanguageFromExtension(tt.ext)
		if ok != tt.ok {
			t.Errorf("LanguageFromExtension(%q): expected ok=%v, got %v", tt.ext, tt.ok, ok)
		}
		if lang != tt.expected {
			t.Errorf("LanguageFromExtension(%q): expected %q, got %q", tt.ext, tt.expected, lang)
		}
	}
}
