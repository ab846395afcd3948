package tapdef

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads tap definition files. It is built once and may be reused for
// any number of files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser compiles the tap definition grammar.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(TapdefLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("tapdef: grammar: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse reads tap definitions from r. Syntax errors are reported as
// name:line:col followed by the offending token; name may be empty.
func (p *Parser) Parse(name string, r io.Reader) (*File, error) {
	file, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("tapdef: %w", err)
	}
	return file, nil
}

// ParseString is Parse for in-memory input.
func (p *Parser) ParseString(name, input string) (*File, error) {
	file, err := p.parser.ParseString(name, input)
	if err != nil {
		return nil, fmt.Errorf("tapdef: %w", err)
	}
	return file, nil
}

// ParseFile parses the named file, using its path in error positions.
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("tapdef: %w", err)
	}
	defer file.Close()

	return p.Parse(filename, file)
}

// LoadFile parses and resolves a tap definition file in one go.
func LoadFile(filename string) (*Catalog, error) {
	parser, err := NewParser()
	if err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(filename)
	if err != nil {
		return nil, err
	}
	return Resolve(file)
}
