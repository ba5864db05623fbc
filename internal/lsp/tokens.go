package lsp

import (
	"encoding/json"

	"github.com/quillcode/quill/internal/encoding"
	"github.com/quillcode/quill/internal/line"
	"github.com/quillcode/quill/internal/token"
)

// legendToStyleIDs maps a server's advertised semantic-token-type legend
// (an ordered name list) onto token.StyleID by name, so a token's wire
// type index can be turned into a style table index regardless of the
// order the server happens to list its types in.
func legendToStyleIDs(types []string) []token.StyleID {
	out := make([]token.StyleID, len(types))
	for i, name := range types {
		out[i] = styleIDForTypeName(name)
	}
	return out
}

func styleIDForTypeName(name string) token.StyleID {
	switch name {
	case "comment":
		return token.StyleComment
	case "string":
		return token.StyleString
	case "number":
		return token.StyleNumber
	case "keyword", "modifier":
		return token.StyleKeyword
	case "operator":
		return token.StyleOperator
	case "punctuation":
		return token.StylePunctuation
	case "variable", "parameter", "property", "namespace", "label":
		return token.StyleIdentifier
	case "function", "method":
		return token.StyleFunction
	case "type", "class", "struct", "interface", "enum", "typeParameter":
		return token.StyleType
	case "enumMember", "macro", "decorator":
		return token.StyleConstant
	default:
		return token.StyleNone
	}
}

// applyFullTokens decodes a textDocument/semanticTokens/full result and
// replaces every touched line's token list wholesale.
func applyFullTokens(buf *line.Buffer, styleIDs []token.StyleID, encKind encoding.Kind, raw json.RawMessage) {
	var result SemanticTokensResult
	if !decodeIfPresent(raw, &result) {
		return
	}
	byLine := decodeSemanticTokens(buf, styleIDs, encKind, result.Data)
	for i := 0; i < buf.Len(); i++ {
		buf.Get(i).ReplaceTokens(byLine[i])
	}
}

// applyRangeTokens decodes a textDocument/semanticTokens/range result,
// merging it into the existing token stream over the requested span only
// (spec.md §4.6: "merged into existing tokens over the affected line span
// only"). Lines inside the requested range that the response does not
// mention are cleared, since the server's range reply is still a complete
// description of that span.
func applyRangeTokens(buf *line.Buffer, styleIDs []token.StyleID, encKind encoding.Kind, raw json.RawMessage, rangeStart, rangeEnd int) {
	var result SemanticTokensResult
	if !decodeIfPresent(raw, &result) {
		return
	}
	byLine := decodeSemanticTokens(buf, styleIDs, encKind, result.Data)
	for i := rangeStart; i < rangeEnd && i < buf.Len(); i++ {
		buf.Get(i).ReplaceTokens(byLine[i])
	}
}

// decodeSemanticTokens walks the flattened (deltaLine, deltaStartChar,
// len, tokenType, tokenModifiers) quintuples the LSP spec defines and
// groups the resulting absolute tokens by line, converting each token's
// wire-encoded start/len into char indices via the negotiated encoding.
func decodeSemanticTokens(buf *line.Buffer, styleIDs []token.StyleID, encKind encoding.Kind, data []uint32) map[int][]line.Token {
	out := make(map[int][]line.Token)
	curLine := 0
	curWireStart := 0

	for i := 0; i+5 <= len(data); i += 5 {
		deltaLine := int(data[i])
		deltaStart := int(data[i+1])
		length := int(data[i+2])
		typeIdx := int(data[i+3])
		modifiers := data[i+4]

		if deltaLine > 0 {
			curLine += deltaLine
			curWireStart = deltaStart
		} else {
			curWireStart += deltaStart
		}

		if curLine < 0 || curLine >= buf.Len() {
			continue
		}
		startChar := FromWire(buf, Position{Line: curLine, Character: curWireStart}, encKind)
		endChar := FromWire(buf, Position{Line: curLine, Character: curWireStart + length}, encKind)

		styleID := token.StyleNone
		if typeIdx >= 0 && typeIdx < len(styleIDs) {
			styleID = styleIDs[typeIdx]
		}

		out[curLine] = append(out[curLine], line.Token{
			Start:        startChar,
			Len:          endChar - startChar,
			StyleID:      uint32(styleID),
			ModifierBits: modifiers,
		})
	}
	return out
}
