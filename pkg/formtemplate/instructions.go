package formtemplate

import (
	"errors"
	"strings"
	"sync"
)

const (
	// FieldToken prefixes a field reference.
	FieldToken = "$field"
	// LabelToken prefixes a label reference.
	LabelToken = "$label"
)

// Kind identifies an instruction type.
type Kind int

const (
	KindText Kind = iota
	KindField
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindLabel:
		return "label"
	default:
		return "text"
	}
}

// Instruction is either literal text or a reference to a field or label by
// name. Value holds the text or the referenced name.
type Instruction struct {
	Kind  Kind
	Value string
}

// Text builds a literal instruction.
func Text(value string) Instruction { return Instruction{Kind: KindText, Value: value} }

// FieldRef builds a field reference instruction.
func FieldRef(name string) Instruction { return Instruction{Kind: KindField, Value: name} }

// LabelRef builds a label reference instruction.
func LabelRef(name string) Instruction { return Instruction{Kind: KindLabel, Value: name} }

// FieldPlaceholder is written in place of a field that cannot be resolved.
func FieldPlaceholder(name string) string {
	return FieldToken + "{" + name + "}"
}

// LabelPlaceholder is written in place of a label that cannot be resolved.
func LabelPlaceholder(name string) string {
	return LabelToken + "{" + name + "}"
}

// Target receives replayed instructions.
type Target interface {
	WriteText(text string) error
	RenderField(name string) error
	RenderLabel(name string) error
}

// Execute replays instructions in order, stopping at the first error.
func Execute(instructions []Instruction, target Target) error {
	if target == nil {
		return errors.New("formtemplate: target is nil")
	}
	for _, instruction := range instructions {
		var err error
		switch instruction.Kind {
		case KindField:
			err = target.RenderField(instruction.Value)
		case KindLabel:
			err = target.RenderLabel(instruction.Value)
		default:
			err = target.WriteText(instruction.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Parse splits a template body into instructions. Adjacent literal runs are
// merged.
func Parse(body string) []Instruction {
	var (
		out     []Instruction
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() == 0 {
			return
		}
		out = append(out, Text(literal.String()))
		literal.Reset()
	}

	rest := body
	for len(rest) > 0 {
		idx := strings.IndexByte(rest, '$')
		if idx < 0 {
			literal.WriteString(rest)
			break
		}
		literal.WriteString(rest[:idx])
		rest = rest[idx:]

		kind, name, consumed, ok := parseReference(rest)
		if !ok {
			literal.WriteByte('$')
			rest = rest[1:]
			continue
		}
		flush()
		out = append(out, Instruction{Kind: kind, Value: name})
		rest = rest[consumed:]
	}
	flush()
	return out
}

func parseReference(s string) (Kind, string, int, bool) {
	var (
		kind  Kind
		token string
	)
	switch {
	case strings.HasPrefix(s, FieldToken+"{"):
		kind, token = KindField, FieldToken
	case strings.HasPrefix(s, LabelToken+"{"):
		kind, token = KindLabel, LabelToken
	default:
		return KindText, "", 0, false
	}
	open := len(token) + 1
	end := strings.IndexByte(s[open:], '}')
	if end < 0 {
		return KindText, "", 0, false
	}
	name := strings.TrimSpace(s[open : open+end])
	if name == "" || strings.ContainsAny(name, "${\n") {
		return KindText, "", 0, false
	}
	return kind, name, open + end + 1, true
}

// Cache memoises parsed template bodies. The returned slices are shared and
// must not be modified.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]Instruction
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]Instruction)}
}

// Instructions returns the parsed instructions for body.
func (c *Cache) Instructions(body string) []Instruction {
	if c == nil {
		return Parse(body)
	}
	c.mu.RLock()
	cached, ok := c.entries[body]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	parsed := Parse(body)
	c.mu.Lock()
	c.entries[body] = parsed
	c.mu.Unlock()
	return parsed
}

// Len reports the number of cached bodies.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
