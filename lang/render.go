package lang

import "strings"

// renderTokens flattens a token sequence into output text. One space
// separates adjacent tokens unless the right-hand token carries the joint
// flag; string and char literal text is emitted verbatim, quotes included.
// Empty substitutions contribute no token, so they never leave a double
// separator behind.
func renderTokens(tokens []Token) string {
	var sb strings.Builder

	for i, tok := range tokens {
		if i > 0 && !tok.Joint {
			sb.WriteByte(' ')
		}

		sb.WriteString(tok.Text)
	}

	return sb.String()
}
