// Package snippet loads source code snippets and detects their language.
package snippet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/parley-ai/parley/internal/model"
)

// New builds a snippet from in-memory content. The filename may be empty;
// language detection then falls back to content analysis.
func New(content, filename string) model.CodeSnippet {
	return model.CodeSnippet{
		ID:         model.NewID(),
		Content:    content,
		Language:   DetectLanguage(filename, content),
		Filename:   filename,
		Size:       len(content),
		UploadedAt: time.Now(),
	}
}

// Load reads a snippet from a file path.
func Load(path string) (model.CodeSnippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CodeSnippet{}, fmt.Errorf("reading snippet: %w", err)
	}
	return New(string(data), filepath.Base(path)), nil
}

// Read builds a snippet from a stream, typically stdin. The filename is used
// only as a detection hint and may be empty.
func Read(r io.Reader, filename string) (model.CodeSnippet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.CodeSnippet{}, fmt.Errorf("reading snippet: %w", err)
	}
	return New(string(data), filename), nil
}

// DetectLanguage names the snippet's language. Filename match wins; without
// one the content is analysed. Unrecognisable input yields "text".
func DetectLanguage(filename, content string) string {
	if lexer := lexerForFile(filename); lexer != nil {
		return lexerName(lexer)
	}
	if lexer := lexers.Analyse(content); lexer != nil {
		return lexerName(lexer)
	}
	return "text"
}

func lexerForFile(filename string) chroma.Lexer {
	if filename == "" {
		return nil
	}
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	return lexer
}

func lexerName(lexer chroma.Lexer) string {
	return strings.ToLower(lexer.Config().Name)
}
