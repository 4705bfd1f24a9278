package template

import "strings"

// Elide resolves the conditional blocks of input. A block is a span that
// opens with '{' and closes at the next '}' with no '{' in between. When skip
// is true every block, braces included, is removed; otherwise each block is
// replaced by its content. Braces that do not form a block are kept.
func Elide(input string, skip bool) string {
	if !strings.ContainsRune(input, '{') {
		return input
	}
	var sb strings.Builder
	sb.Grow(len(input))
	// done is the end of the input already written to sb.
	done := 0
	open := -1
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '{':
			// A second '{' means the earlier one cannot open a block.
			open = i
		case '}':
			if open < 0 {
				continue
			}
			sb.WriteString(input[done:open])
			if !skip {
				sb.WriteString(input[open+1 : i])
			}
			done = i + 1
			open = -1
		}
	}
	sb.WriteString(input[done:])
	return sb.String()
}
