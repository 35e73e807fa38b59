package pretty

import (
	"regexp"
	"strings"
)

var (
	importPathRe = regexp.MustCompile(`import\("([^"\n{}]*)"\)`)
	drivePathRe  = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
	emptyBlockRe = regexp.MustCompile(`\{\s*\}`)
	propertyRe   = regexp.MustCompile(`^(\s*(?:readonly )?)([\p{L}\p{Nl}_$][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}_$]*|"(?:[^"\\]|\\.)*")\??: (.+);$`)
)

// Print breaks text after "{" and ";" and before "}", indents each line by
// indent spaces per brace level and tidies the result:
//   - "name: T | undefined;" becomes "name?: T;"
//   - typeof import("/abs/node_modules/@scope/pkg") becomes
//     typeof import("@scope/pkg"), and other absolute paths keep their
//     last element; relative and bare specifiers are left alone
//   - blocks holding only whitespace collapse to "{}"
//   - empty lines and trailing newlines are removed
//
// An indent below 1 returns text unchanged.
func Print(text string, indent int) string {
	if indent < 1 {
		return text
	}

	broken := breakLines(text)
	lines := reindent(broken, indent)

	for i, line := range lines {
		lines[i] = optionalSugar(line)
	}

	out := strings.Join(lines, "\n")
	out = importPathRe.ReplaceAllStringFunc(out, func(m string) string {
		path := m[len(`import("`) : len(m)-len(`")`)]

		return `import("` + modulePath(path) + `")`
	})
	out = emptyBlockRe.ReplaceAllString(out, "{}")

	return strings.TrimRight(dropEmptyLines(out), "\n")
}

// modulePath shortens an import path to the specifier a reader would write.
func modulePath(path string) string {
	slashed := strings.ReplaceAll(path, `\`, "/")

	if i := strings.LastIndex(slashed, "node_modules/"); i >= 0 {
		if rest := slashed[i+len("node_modules/"):]; rest != "" {
			return rest
		}
	}

	if !strings.HasPrefix(slashed, "/") && !drivePathRe.MatchString(path) {
		return path
	}

	slashed = strings.TrimRight(slashed, "/")
	if i := strings.LastIndex(slashed, "/"); i >= 0 && i+1 < len(slashed) {
		return slashed[i+1:]
	}

	return path
}

// breakLines inserts line breaks around braces and after semicolons that
// are outside string literals.
func breakLines(text string) string {
	var (
		sb    strings.Builder
		quote rune
		esc   bool
	)

	sb.Grow(len(text) + len(text)/4)

	for _, r := range text {
		if quote != 0 {
			sb.WriteRune(r)

			switch {
			case esc:
				esc = false
			case r == '\\':
				esc = true
			case r == quote:
				quote = 0
			}

			continue
		}

		switch r {
		case '"', '\'', '`':
			quote = r
			sb.WriteRune(r)
		case '{', ';':
			sb.WriteRune(r)
			sb.WriteByte('\n')
		case '}':
			sb.WriteByte('\n')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// reindent trims every line and indents it by its brace depth. Lines that
// start with closing braces are dedented first. Depth never goes below zero.
func reindent(text string, indent int) []string {
	var (
		out   []string
		depth int
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		leading := len(line) - len(strings.TrimLeft(line, "}"))
		depth = max(depth-leading, 0)

		out = append(out, strings.Repeat(" ", depth*indent)+line)

		opens, closes := braceCount(line[leading:])
		depth = max(depth+opens-closes, 0)
	}

	return out
}

func braceCount(s string) (opens, closes int) {
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			opens++
		case '}':
			closes++
		}
	}

	return opens, closes
}

// optionalSugar rewrites "name: T | undefined;" to "name?: T;".
func optionalSugar(line string) string {
	m := propertyRe.FindStringSubmatch(line)
	if m == nil {
		return line
	}

	operands := splitUnion(m[3])

	kept := operands[:0:0]
	for _, op := range operands {
		if op != "undefined" {
			kept = append(kept, op)
		}
	}

	if len(kept) == len(operands) || len(kept) == 0 {
		return line
	}

	return m[1] + m[2] + "?: " + strings.Join(kept, " | ") + ";"
}

// splitUnion splits a type on " | " separators that are not nested inside
// brackets or string literals.
func splitUnion(s string) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
		arrow bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			// The arrow of a function type is not a bracket. A top-level
			// arrow's return type extends to the end of s.
			if i > 0 && s[i-1] == '=' {
				arrow = arrow || depth == 0
			} else {
				depth--
			}
		case '|':
			if depth == 0 && !arrow && i > 0 && s[i-1] == ' ' && i+1 < len(s) && s[i+1] == ' ' {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	return append(parts, strings.TrimSpace(s[start:]))
}

func dropEmptyLines(s string) string {
	lines := strings.Split(s, "\n")

	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}

	return strings.Join(kept, "\n")
}
