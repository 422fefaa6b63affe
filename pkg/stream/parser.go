package stream

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Marker protocol separating conversational text from the document payload in
// a model response. The model is prompted to emit visible prose first, then
// one marker, then the pdfmake JSON.
const (
	MarkerArtifact  = ":::ARTIFACT:::"
	MarkerJSONStart = ":::JSON_START:::"
	MarkerJSONEnd   = ":::JSON_END:::"
)

// Accumulator collects streamed chunks and exposes the text that is safe to
// show the user at any point. Markers can arrive split across chunk
// boundaries; VisibleText re-evaluates the full buffer on every call so a
// marker completed by a later chunk is still honored.
type Accumulator struct {
	buf strings.Builder
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

func (a *Accumulator) Feed(chunk string) {
	a.buf.WriteString(chunk)
}

// Full returns everything fed so far.
func (a *Accumulator) Full() string {
	return a.buf.String()
}

// VisibleText is the user-facing portion: everything before the first
// marker, trimmed.
func (a *Accumulator) VisibleText() string {
	return VisibleText(a.buf.String())
}

func VisibleText(full string) string {
	if idx := strings.Index(full, MarkerArtifact); idx >= 0 {
		return strings.TrimSpace(full[:idx])
	}
	if idx := strings.Index(full, MarkerJSONStart); idx >= 0 {
		return strings.TrimSpace(full[:idx])
	}
	return strings.TrimSpace(full)
}

var lineCommentRe = regexp.MustCompile(`(?m)^\s*//.*$`)

// ExtractDocument pulls the document-definition JSON out of a complete model
// response. The extraction is best-effort: a response without a recoverable
// document yields nil, never an error, so a malformed payload degrades to a
// plain chat answer.
func ExtractDocument(full string) json.RawMessage {
	candidate := sliceCandidate(full)
	if candidate == "" {
		return nil
	}

	candidate = cleanCandidate(candidate)

	if parsed := tryParse(candidate); parsed != nil {
		return parsed
	}

	// One repair attempt for near-JSON (trailing commas, single quotes).
	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil
	}
	return tryParse(repaired)
}

// sliceCandidate finds the JSON region. Preferred: between the start marker
// (either protocol) and the end marker. Fallback heuristic for marker-less
// responses: locate the last "content" key, walk back to the nearest '{' and
// forward to the last '}'.
func sliceCandidate(full string) string {
	start := -1
	if idx := strings.Index(full, MarkerJSONStart); idx >= 0 {
		start = idx + len(MarkerJSONStart)
	} else if idx := strings.Index(full, MarkerArtifact); idx >= 0 {
		start = idx + len(MarkerArtifact)
	}

	if start >= 0 {
		rest := full[start:]
		if end := strings.Index(rest, MarkerJSONEnd); end >= 0 {
			return rest[:end]
		}
		return rest
	}

	contentIdx := strings.LastIndex(full, `"content"`)
	if contentIdx < 0 {
		return ""
	}
	open := enclosingBrace(full, contentIdx)
	closing := strings.LastIndex(full, "}")
	if open < 0 || closing <= open {
		return ""
	}
	return full[open : closing+1]
}

// enclosingBrace walks backwards from pos to the '{' that encloses it,
// skipping over any closed nested objects on the way.
func enclosingBrace(s string, pos int) int {
	depth := 0
	for i := pos; i >= 0; i-- {
		switch s[i] {
		case '}':
			depth++
		case '{':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func cleanCandidate(candidate string) string {
	candidate = strings.ReplaceAll(candidate, "```json", "")
	candidate = strings.ReplaceAll(candidate, "```", "")
	candidate = lineCommentRe.ReplaceAllString(candidate, "")
	return strings.TrimSpace(candidate)
}

func tryParse(candidate string) json.RawMessage {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil
	}
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	return normalized
}
