package tapdef

import "github.com/alecthomas/participle/v2/lexer"

// File represents a complete tap definition file: any number of register
// and table declarations, in order.
type File struct {
	Decls []*Decl `@@*`
}

// Decl is one top-level declaration.
type Decl struct {
	Register *RegisterDecl `  @@`
	Search   *SearchDecl   `| @@`
	Direct   *DirectDecl   `| @@`
}

// RegisterDecl declares a Galois register.
// Example: lfsr Galois16 width 16 length 65535 taps 16, 14, 13, 11;
type RegisterDecl struct {
	Pos lexer.Position

	Name   string   `KwLfsr @Ident`
	Width  string   `KwWidth @Integer`
	Length string   `( KwLength @Integer )?`
	Taps   []string `KwTaps @Integer ( Comma @Integer )* Semicolon`
}

// SearchDecl declares a sparse sample table over [From, To) with a stride.
// Example: search win32 using Galois32 from 10 to 20 step 5;
type SearchDecl struct {
	Pos lexer.Position

	Name     string `KwSearch @Ident`
	Register string `KwUsing @Ident`
	From     string `KwFrom @Integer`
	To       string `KwTo @Integer`
	Step     string `KwStep @Integer Semicolon`
}

// DirectDecl declares a complete reverse table for a register.
// Example: direct rev16 using Galois16;
type DirectDecl struct {
	Pos lexer.Position

	Name     string `KwDirect @Ident`
	Register string `KwUsing @Ident Semicolon`
}

// Registers returns the register declarations in source order.
func (f *File) Registers() []*RegisterDecl {
	var regs []*RegisterDecl
	for _, decl := range f.Decls {
		if decl.Register != nil {
			regs = append(regs, decl.Register)
		}
	}
	return regs
}
