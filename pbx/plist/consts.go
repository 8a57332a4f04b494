package plist

const (
	// ============================================================================
	// File Framing
	// ============================================================================

	// UTF8Header is the header line Xcode writes at the top of every project.
	UTF8Header = "// !$*UTF8*$!"

	// LineCommentPrefix starts a comment that runs to the end of the line.
	LineCommentPrefix = "//"

	// BlockCommentOpen starts a delimited comment.
	BlockCommentOpen = "/*"

	// BlockCommentClose ends a delimited comment.
	BlockCommentClose = "*/"

	// ============================================================================
	// Structural Punctuation
	// ============================================================================

	DictOpen   = '{'
	DictClose  = '}'
	ArrayOpen  = '('
	ArrayClose = ')'
	Terminator = ';'
	Separator  = ','
	Assign     = '='

	// ============================================================================
	// Quoting
	// ============================================================================

	// Quote is the quote character used when writing strings.
	Quote = '"'

	// SingleQuote is accepted when reading.
	SingleQuote = '\''

	// Escape introduces an escape sequence inside a quoted string.
	Escape = '\\'

	// Indent is the indentation unit.
	Indent = '\t'

	// unicodeEscapeDigits is the number of hex digits after \U.
	unicodeEscapeDigits = 4

	// maxOctalDigits is the longest octal escape (\377).
	maxOctalDigits = 3
)

// ============================================================================
// Byte Order Marks
// ============================================================================

var (
	// UTF8BOM is the UTF-8 byte order mark.
	UTF8BOM = []byte{0xEF, 0xBB, 0xBF}
	// UTF16LEBOM is the UTF-16 little-endian byte order mark.
	UTF16LEBOM = []byte{0xFF, 0xFE}
	// UTF16BEBOM is the UTF-16 big-endian byte order mark.
	UTF16BEBOM = []byte{0xFE, 0xFF}
)
