package tapdef

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TapdefLexer defines the lexical structure of tap definition files.
// Keywords are case-insensitive; identifiers keep their case.
var TapdefLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - shell style (#) or VHDL style (--) to end of line
	{Name: "Comment", Pattern: `(?:#|--)[^\n]*`},

	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Register declarations
	{Name: "KwLfsr", Pattern: `(?i)\bLFSR\b`},
	{Name: "KwWidth", Pattern: `(?i)\bWIDTH\b`},
	{Name: "KwLength", Pattern: `(?i)\bLENGTH\b`},
	{Name: "KwTaps", Pattern: `(?i)\bTAPS\b`},

	// Table declarations
	{Name: "KwSearch", Pattern: `(?i)\bSEARCH\b`},
	{Name: "KwDirect", Pattern: `(?i)\bDIRECT\b`},
	{Name: "KwUsing", Pattern: `(?i)\bUSING\b`},
	{Name: "KwFrom", Pattern: `(?i)\bFROM\b`},
	{Name: "KwTo", Pattern: `(?i)\bTO\b`},
	{Name: "KwStep", Pattern: `(?i)\bSTEP\b`},

	{Name: "Comma", Pattern: `,`},
	{Name: "Semicolon", Pattern: `;`},

	// Integers: decimal or 0x hex, '_' allowed as a digit separator
	{Name: "Integer", Pattern: `0[xX][0-9a-fA-F_]+|[0-9][0-9_]*`},

	// Identifiers (must come after keywords)
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})
