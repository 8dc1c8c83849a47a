package flow

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// FailureMessage is the assistant turn substituted when a gateway request
// fails outright.
const FailureMessage = "I apologize, but I encountered an error. Please try again."

// TimeoutMessage is the assistant turn substituted when a gateway request
// exceeds its deadline.
const TimeoutMessage = "I apologize, but the request took too long. Please try again."

// dataPrefix is the fixed token that frames each stream fragment line.
const dataPrefix = "data: "

// streamFragment is the JSON payload carried by one framed fragment line.
type streamFragment struct {
	Content string `json:"content"`
}

// EncodeFragment frames a content delta for the event-stream wire format.
func EncodeFragment(content string) []byte {
	payload, err := json.Marshal(streamFragment{Content: content})
	if err != nil {
		// Marshaling a plain string field cannot fail with encoding/json.
		return nil
	}
	return []byte(dataPrefix + string(payload) + "\n\n")
}

// DecodeFragment parses one framed line. ok is false for non-fragment
// lines (blank keep-alives, other SSE fields) and for malformed payloads,
// which callers skip without aborting the stream.
func DecodeFragment(line string) (content string, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, dataPrefix) {
		return "", false
	}
	payload := strings.TrimPrefix(line, dataPrefix)
	if payload == "[DONE]" {
		return "", false
	}
	var frag streamFragment
	if err := json.Unmarshal([]byte(payload), &frag); err != nil {
		slog.Warn("Assembler.DecodeFragment: skipping malformed fragment", "error", err, "payloadLength", len(payload))
		return "", false
	}
	return frag.Content, true
}

// Assembler accumulates stream fragments into one coherent assistant turn.
// Consumers always read the full accumulated string rather than appending
// fragments to visible state, so re-segmented chunks can never leak
// framing artifacts.
type Assembler struct {
	buf strings.Builder
}

// Fold appends one decoded content delta. Empty deltas are valid and
// ignored.
func (a *Assembler) Fold(delta string) {
	if delta == "" {
		return
	}
	a.buf.WriteString(delta)
}

// FoldLine decodes one framed wire line and folds its content. Malformed
// lines are logged inside DecodeFragment and skipped.
func (a *Assembler) FoldLine(line string) {
	if content, ok := DecodeFragment(line); ok {
		a.Fold(content)
	}
}

// Content returns the full accumulated string.
func (a *Assembler) Content() string {
	return a.buf.String()
}

// Len returns the accumulated length in bytes.
func (a *Assembler) Len() int {
	return a.buf.Len()
}
