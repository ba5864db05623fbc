package token

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/quillcode/quill/internal/line"
)

// Rule is one regex-driven highlighting rule: every non-overlapping match
// of Pattern is tagged with Style.
type Rule struct {
	Pattern *regexp.Regexp
	Style   StyleID
}

type multiLineRule struct {
	state      State
	start, end string
	style      StyleID
}

// SimpleLexer is a regex-and-keyword-table lexer for a single language,
// with support for line-spanning constructs (block comments, raw strings)
// via a small per-construct State. Grounded on the teacher's regex-rule
// highlighter: same rule/keyword/multi-line shape, rebuilt to produce
// char-indexed line.Tokens instead of byte-indexed renderer spans.
type SimpleLexer struct {
	name          string
	rules         []Rule
	keywords      map[string]StyleID
	multiLine     []multiLineRule
	commentPrefix string
}

// NewSimpleLexer creates an empty lexer; call AddRule/AddKeywords/
// AddMultiLine to build it up.
func NewSimpleLexer(name string) *SimpleLexer {
	return &SimpleLexer{name: name, keywords: make(map[string]StyleID)}
}

// AddRule registers a regex rule. Earlier-added rules take priority when
// two rules' matches overlap.
func (l *SimpleLexer) AddRule(pattern string, style StyleID) *SimpleLexer {
	l.rules = append(l.rules, Rule{Pattern: regexp.MustCompile(pattern), Style: style})
	return l
}

// AddKeywords tags every exact occurrence of an identifier-shaped word in
// words with style.
func (l *SimpleLexer) AddKeywords(style StyleID, words ...string) *SimpleLexer {
	for _, w := range words {
		l.keywords[w] = style
	}
	return l
}

// AddMultiLine registers a construct that can span line boundaries (e.g.
// "/*".."*/"), assigning it its own State value.
func (l *SimpleLexer) AddMultiLine(start, end string, style StyleID) *SimpleLexer {
	l.multiLine = append(l.multiLine, multiLineRule{
		state: State(len(l.multiLine) + 1),
		start: start, end: end, style: style,
	})
	return l
}

func (l *SimpleLexer) Name() string { return l.name }

// SetLineComment registers prefix (e.g. "//") as this language's
// line-comment marker, for CommentOut.
func (l *SimpleLexer) SetLineComment(prefix string) *SimpleLexer {
	l.commentPrefix = prefix
	return l
}

func (l *SimpleLexer) CommentPrefix() string { return l.commentPrefix }

func (l *SimpleLexer) ruleForState(s State) *multiLineRule {
	for i := range l.multiLine {
		if l.multiLine[i].state == s {
			return &l.multiLine[i]
		}
	}
	return nil
}

// Lex implements Lexer.
func (l *SimpleLexer) Lex(content string, prevState State) ([]line.Token, State) {
	if prevState != StateNormal {
		if rule := l.ruleForState(prevState); rule != nil {
			if idx := strings.Index(content, rule.end); idx >= 0 {
				closeByte := idx + len(rule.end)
				head := byteSpan{0, closeByte, rule.style}
				rest, state := l.lexNormal(content[closeByte:])
				shifted := shiftTokens(rest, utf8.RuneCountInString(content[:closeByte]))
				return append([]line.Token{head.toToken(content)}, shifted...), state
			}
			whole := byteSpan{0, len(content), rule.style}
			return []line.Token{whole.toToken(content)}, prevState
		}
	}
	return l.lexNormal(content)
}

type byteSpan struct {
	start, end int
	style      StyleID
}

func (s byteSpan) toToken(content string) line.Token {
	startChar := utf8.RuneCountInString(content[:s.start])
	endChar := startChar + utf8.RuneCountInString(content[s.start:s.end])
	return line.Token{Start: startChar, Len: endChar - startChar, StyleID: uint32(s.style)}
}

func shiftTokens(tokens []line.Token, byChars int) []line.Token {
	out := make([]line.Token, len(tokens))
	for i, t := range tokens {
		t.Start += byChars
		out[i] = t
	}
	return out
}

func markCovered(covered []bool, from, to int) {
	for i := from; i < to && i < len(covered); i++ {
		covered[i] = true
	}
}

func isCovered(covered []bool, from, to int) bool {
	for i := from; i < to && i < len(covered); i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func wordSpans(content string) []byteSpan {
	var spans []byteSpan
	start := -1
	for i, r := range content {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, byteSpan{start, i, StyleNone})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, byteSpan{start, len(content), StyleNone})
	}
	return spans
}

func (l *SimpleLexer) lexNormal(content string) ([]line.Token, State) {
	covered := make([]bool, len(content))
	var spans []byteSpan

	for _, ml := range l.multiLine {
		idx := strings.Index(content, ml.start)
		if idx < 0 || isCovered(covered, idx, idx+len(ml.start)) {
			continue
		}
		rest := content[idx+len(ml.start):]
		if endIdx := strings.Index(rest, ml.end); endIdx >= 0 {
			end := idx + len(ml.start) + endIdx + len(ml.end)
			spans = append(spans, byteSpan{idx, end, ml.style})
			markCovered(covered, idx, end)
			continue
		}
		spans = append(spans, byteSpan{idx, len(content), ml.style})
		markCovered(covered, idx, len(content))
		return spansToTokens(content, spans), ml.state
	}

	for _, r := range l.rules {
		for _, loc := range r.Pattern.FindAllStringIndex(content, -1) {
			if isCovered(covered, loc[0], loc[1]) {
				continue
			}
			spans = append(spans, byteSpan{loc[0], loc[1], r.Style})
			markCovered(covered, loc[0], loc[1])
		}
	}

	for _, w := range wordSpans(content) {
		if isCovered(covered, w.start, w.end) {
			continue
		}
		if style, ok := l.keywords[content[w.start:w.end]]; ok {
			spans = append(spans, byteSpan{w.start, w.end, style})
			markCovered(covered, w.start, w.end)
		}
	}

	return spansToTokens(content, spans), StateNormal
}

func spansToTokens(content string, spans []byteSpan) []line.Token {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	out := make([]line.Token, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.toToken(content))
	}
	return out
}
