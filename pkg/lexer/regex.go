package lexer

import (
	"regexp"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

// Token regex patterns
var tokenRegexes = map[TokenType]tokenRegex{
	FUNCTION: {regexp.MustCompile(`^function\b`), `^function\b`},
	RET:      {regexp.MustCompile(`^ret\b`), `^ret\b`},
	BR:       {regexp.MustCompile(`^br\b`), `^br\b`},
	SWITCH:   {regexp.MustCompile(`^switch\b`), `^switch\b`},
	CALL:     {regexp.MustCompile(`^call\b`), `^call\b`},
	MALLOC:   {regexp.MustCompile(`^malloc\b`), `^malloc\b`},
	FREE:     {regexp.MustCompile(`^free\b`), `^free\b`},
	LOAD:     {regexp.MustCompile(`^load\b`), `^load\b`},
	STORE:    {regexp.MustCompile(`^store\b`), `^store\b`},
	SUM:      {regexp.MustCompile(`^sum\b`), `^sum\b`},
	INCR:     {regexp.MustCompile(`^incr\b`), `^incr\b`},
	DECR:     {regexp.MustCompile(`^decr\b`), `^decr\b`},
	SELECT:   {regexp.MustCompile(`^select\b`), `^select\b`},
	ASSERT:   {regexp.MustCompile(`^assert\b`), `^assert\b`},
	READ:     {regexp.MustCompile(`^read\b`), `^read\b`},
	WRITE:    {regexp.MustCompile(`^write\b`), `^write\b`},

	BOP: {
		regexp.MustCompile(`^(udiv|sdiv|urem|srem|mul|shl|lshr|ashr|and|or|xor|add|sub|eq|ne|ugt|uge|ult|ule|sgt|sge|slt|sle)\b`),
		`^(udiv|sdiv|urem|srem|mul|shl|lshr|ashr|and|or|xor|add|sub|eq|ne|ugt|uge|ult|ule|sgt|sge|slt|sle)\b`,
	},

	ASSIGN:  {regexp.MustCompile(`^=`), `^=`},
	COLON:   {regexp.MustCompile(`^:`), `^:`},
	NEWLINE: {regexp.MustCompile(`^\n`), `^\n`},

	NUM: {regexp.MustCompile(`^-?\d+\b`), `^-?\d+\b`},
	ID:  {regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`), `^[a-zA-Z_][a-zA-Z0-9_]*`},
}

var (
	spaceRegex   = regexp.MustCompile(`^[ \t\r]+`)
	commentRegex = regexp.MustCompile(`^;[^\n]*`)
)

// Token precedence order for matching (keywords before the catch-all ID)
var tokenPrecedenceOrder = []TokenType{
	FUNCTION, SWITCH, MALLOC, SELECT, ASSERT, STORE, WRITE,
	FREE, LOAD, CALL, READ, INCR, DECR, RET, SUM, BR,
	BOP, NUM, ASSIGN, COLON, NEWLINE, ID,
}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a token type
func (t TokenType) RawRegex() string {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Raw
	}

	return ""
}

// Match the longest token at the start of the string
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := spaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}
