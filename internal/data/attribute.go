package data

import (
	"fmt"
	"math/bits"
	"strings"
)

// Attribute is one of the ten character stats.
type Attribute int

const (
	Agility Attribute = iota
	Constitution
	Memory
	Reasoning
	SelfDiscipline
	Empathy
	Intuition
	Presence
	Quickness
	Strength
)

// AttributeCount is the number of attributes held by every character.
const AttributeCount = 10

// Attributes lists all attributes in sheet order.
var Attributes = [AttributeCount]Attribute{
	Agility, Constitution, Memory, Reasoning, SelfDiscipline,
	Empathy, Intuition, Presence, Quickness, Strength,
}

var attributeCodes = [AttributeCount]string{"AG", "CO", "ME", "RE", "SD", "EM", "IN", "PR", "QU", "ST"}

var attributeNames = [AttributeCount]string{
	"Agility", "Constitution", "Memory", "Reasoning", "Self Discipline",
	"Empathy", "Intuition", "Presence", "Quickness", "Strength",
}

// Code returns the two-letter abbreviation (AG, CO, ...).
func (a Attribute) Code() string {
	if a < 0 || int(a) >= AttributeCount {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributeCodes[a]
}

func (a Attribute) String() string {
	if a < 0 || int(a) >= AttributeCount {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributeNames[a]
}

// Valid reports whether a is one of the ten defined attributes.
func (a Attribute) Valid() bool {
	return a >= 0 && int(a) < AttributeCount
}

// UsedForDevPoints reports whether the attribute takes part in the
// development point average.
func (a Attribute) UsedForDevPoints() bool {
	switch a {
	case Agility, Constitution, Memory, Reasoning, SelfDiscipline:
		return true
	}
	return false
}

// IsRealm reports whether the attribute can be chosen as a magic realm.
func (a Attribute) IsRealm() bool {
	switch a {
	case Empathy, Intuition, Presence:
		return true
	}
	return false
}

// ParseAttribute parses a two-letter code, case-insensitive.
func ParseAttribute(s string) (Attribute, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for i, c := range attributeCodes {
		if c == code {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", s)
}

// AttributeSet is an unordered set of attributes.
type AttributeSet uint16

// NewAttributeSet builds a set from the given attributes.
func NewAttributeSet(attrs ...Attribute) AttributeSet {
	var s AttributeSet
	for _, a := range attrs {
		s = s.With(a)
	}
	return s
}

// With returns a copy of s that also contains a.
func (s AttributeSet) With(a Attribute) AttributeSet {
	if !a.Valid() {
		return s
	}
	return s | 1<<uint(a)
}

// Has reports whether a is in the set.
func (s AttributeSet) Has(a Attribute) bool {
	return a.Valid() && s&(1<<uint(a)) != 0
}

// Len returns the number of attributes in the set.
func (s AttributeSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// IsEmpty reports whether the set has no attributes.
func (s AttributeSet) IsEmpty() bool {
	return s == 0
}

// SubsetOf reports whether every attribute of s is also in o.
// The empty set is a subset of everything.
func (s AttributeSet) SubsetOf(o AttributeSet) bool {
	return s&^o == 0
}

// Slice returns the attributes in sheet order.
func (s AttributeSet) Slice() []Attribute {
	out := make([]Attribute, 0, s.Len())
	for _, a := range Attributes {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Key returns the lower-case realm key, e.g. "em", "em+in", "em+in+pr".
func (s AttributeSet) Key() string {
	attrs := s.Slice()
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = strings.ToLower(a.Code())
	}
	return strings.Join(parts, "+")
}

func (s AttributeSet) String() string {
	attrs := s.Slice()
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.Code()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ParseAttributeSet parses a list of attribute codes.
func ParseAttributeSet(codes []string) (AttributeSet, error) {
	var s AttributeSet
	for _, c := range codes {
		a, err := ParseAttribute(c)
		if err != nil {
			return 0, err
		}
		s = s.With(a)
	}
	return s, nil
}
