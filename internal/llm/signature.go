package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// A Signature declares the named input fields an LLM call consumes and the
// named output fields it is expected to populate. The textual spec format
// is a shorthand: "review -> genres, rating".
type Signature struct {
	Inputs       []string
	Outputs      []string
	Instructions string
}

// ParseSpec parses a "input1, input2 -> output1, output2" signature spec.
func ParseSpec(spec, instructions string) (Signature, error) {
	parts := strings.Split(spec, "->")
	if len(parts) != 2 {
		return Signature{}, fmt.Errorf("invalid signature spec %q: expected exactly one \"->\"", spec)
	}
	sig := Signature{
		Inputs:       splitFields(parts[0]),
		Outputs:      splitFields(parts[1]),
		Instructions: instructions,
	}
	if len(sig.Inputs) == 0 {
		return Signature{}, fmt.Errorf("invalid signature spec %q: no input fields", spec)
	}
	if len(sig.Outputs) == 0 {
		return Signature{}, fmt.Errorf("invalid signature spec %q: no output fields", spec)
	}
	return sig, nil
}

// MustParseSpec is like ParseSpec but panics on a malformed spec. Intended for
// package-level signature declarations.
func MustParseSpec(spec, instructions string) Signature {
	sig, err := ParseSpec(spec, instructions)
	if err != nil {
		panic(err)
	}
	return sig
}

func splitFields(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// WithPrefixedOutput returns a copy of the signature with an extra output
// field prepended. Used by ChainOfThought to request a reasoning field.
func (s Signature) WithPrefixedOutput(field string) Signature {
	out := make([]string, 0, len(s.Outputs)+1)
	out = append(out, field)
	out = append(out, s.Outputs...)
	return Signature{Inputs: s.Inputs, Outputs: out, Instructions: s.Instructions}
}

// System renders the system prompt: the signature's instructions plus the
// field contract the model has to honour.
func (s Signature) System() string {
	var b strings.Builder
	if s.Instructions != "" {
		b.WriteString(s.Instructions)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Given the input field(s) %s, respond with a single JSON object containing exactly the key(s) %s. Every value must be a string or a number. Do not add any other keys or any text outside the JSON object.",
		quoteJoin(s.Inputs), quoteJoin(s.Outputs))
	return b.String()
}

// Prompt renders the user prompt for the given input values. All declared
// input fields must be present.
func (s Signature) Prompt(inputs map[string]string) (string, error) {
	var b strings.Builder
	for _, name := range s.Inputs {
		value, ok := inputs[name]
		if !ok {
			return "", fmt.Errorf("missing input field %q", name)
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", name, value)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// Schema returns a JSON schema for the expected output object. All declared
// output fields are required; values may be strings or numbers (local models
// routinely return bare numbers for score-like fields).
func (s Signature) Schema() json.RawMessage {
	properties := map[string]any{}
	for _, name := range s.Outputs {
		properties[name] = map[string]any{"type": []string{"string", "number"}}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   s.Outputs,
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		// map[string]any of strings is always marshalable
		panic(err)
	}
	return raw
}

// Parse decodes the model's raw reply into a field -> value map and validates
// it against Schema. The declared-fields-present-and-typed contract is
// enforced here because a locally hosted model gives no server-side guarantee.
func (s Signature) Parse(raw string) (map[string]string, error) {
	cleaned := stripFences(raw)

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(s.Schema()),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, strings.Join(details, "; "))
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	fields := make(map[string]string, len(s.Outputs))
	for _, name := range s.Outputs {
		switch v := decoded[name].(type) {
		case string:
			fields[name] = v
		case float64:
			fields[name] = trimFloat(v)
		default:
			return nil, fmt.Errorf("%w: field %q has unsupported type %T", ErrBadResponse, name, v)
		}
	}
	return fields, nil
}

// stripFences removes a surrounding markdown code fence, which smaller models
// sometimes emit even when asked for bare JSON.
func stripFences(raw string) string {
	t := strings.TrimSpace(raw)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```json")
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}

func quoteJoin(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return strings.Join(quoted, ", ")
}
