package draft

import "strings"

// preamblePatterns catch the conversational lead-ins models produce even
// when told to answer with bare JSON. Matched case-insensitively against
// the first few lines.
var preamblePatterns = []string{
	"here is",
	"here's",
	"i'll ",
	"i will ",
	"i've ",
	"let me ",
	"sure,",
	"sure!",
	"okay,",
	"certainly",
	"of course",
	"based on",
	"looking at",
}

// signoffPatterns are common LLM sign-offs appended after the content.
var signoffPatterns = []string{
	"let me know",
	"feel free to",
	"hope this helps",
	"is there anything",
	"would you like",
	"if you need",
	"if you'd like",
}

// SanitizeOutput strips LLM preamble/sign-off chatter and an enclosing
// code fence, leaving the bare JSON object the prompt asked for.
func SanitizeOutput(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return content
	}

	content = stripPreamble(content)
	content = stripSignoff(content)
	content = stripFence(content)

	return strings.TrimSpace(content)
}

// stripPreamble drops leading chatter lines. Capped at 3 lines so a JSON
// payload that happens to start like prose is never consumed.
func stripPreamble(content string) string {
	lines := strings.SplitN(content, "\n", 5)
	stripped := 0

	for stripped < len(lines) && stripped < 3 {
		line := strings.TrimSpace(lines[stripped])
		if line == "" || matchesAnyPrefix(line, preamblePatterns) {
			stripped++
			continue
		}
		break
	}

	if stripped == 0 {
		return content
	}
	return strings.Join(lines[stripped:], "\n")
}

// stripSignoff removes trailing lines matching sign-off patterns.
func stripSignoff(content string) string {
	lines := strings.Split(content, "\n")

	end := len(lines)
	for end > 0 {
		line := strings.TrimSpace(lines[end-1])
		if line == "" || matchesAnyPrefix(line, signoffPatterns) {
			end--
			continue
		}
		break
	}

	if end == len(lines) {
		return content
	}
	return strings.Join(lines[:end], "\n")
}

// stripFence removes a Markdown code fence wrapping the whole content.
func stripFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return content
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

// matchesAnyPrefix reports whether line starts with any pattern, ignoring case.
func matchesAnyPrefix(line string, patterns []string) bool {
	lower := strings.ToLower(line)
	for _, p := range patterns {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
