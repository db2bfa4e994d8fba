// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identifier is a validated name for fields, parameters, and operations.
// It is stored in snake_case regardless of the input casing. The only way
// to obtain an Identifier is ParseIdentifier.
type Identifier struct {
	name string
}

// ParseIdentifier validates raw as an identifier. It accepts raw only if
// it already equals its snake_case form or its mixedCase form; any other
// casing fails with ErrBadIdentifier. The snake_case form is stored.
func ParseIdentifier(raw string) (Identifier, error) {
	words := splitWords(raw)
	if len(words) == 0 {
		return Identifier{}, fmt.Errorf("%w: %q", ErrBadIdentifier, raw)
	}
	snake := snakeJoin(words)
	if raw == snake || raw == mixedJoin(words) {
		return Identifier{name: snake}, nil
	}
	return Identifier{}, fmt.Errorf("%w: %q", ErrBadIdentifier, raw)
}

// String returns the canonical snake_case form.
func (id Identifier) String() string {
	return id.name
}

// Camel returns the CamelCase rendering, e.g. "pet_id" -> "PetId".
func (id Identifier) Camel() string {
	return camelJoin(splitWords(id.name))
}

// LowerCamel returns the mixedCase rendering, e.g. "pet_id" -> "petId".
func (id Identifier) LowerCamel() string {
	return mixedJoin(splitWords(id.name))
}

// IsZero reports whether the identifier is the unset zero value.
func (id Identifier) IsZero() bool {
	return id.name == ""
}

// TypeName is a validated CamelCase name for component-level types.
// The only way to obtain a TypeName is ParseTypeName (or ErrorName,
// whose outputs are themselves valid TypeName inputs).
type TypeName struct {
	name string
}

// ParseTypeName validates raw as a type name. It accepts raw only if it
// equals its own CamelCase normalization; anything else fails with
// ErrBadTypeName.
func ParseTypeName(raw string) (TypeName, error) {
	words := splitWords(raw)
	if len(words) == 0 {
		return TypeName{}, fmt.Errorf("%w: %q", ErrBadTypeName, raw)
	}
	if raw != camelJoin(words) {
		return TypeName{}, fmt.Errorf("%w: %q", ErrBadTypeName, raw)
	}
	return TypeName{name: raw}, nil
}

// String returns the CamelCase form.
func (tn TypeName) String() string {
	return tn.name
}

// Snake returns the snake_case rendering, e.g. "NewPet" -> "new_pet".
func (tn TypeName) Snake() string {
	return snakeJoin(splitWords(tn.name))
}

// LowerCamel returns the mixedCase rendering, e.g. "NewPet" -> "newPet".
func (tn TypeName) LowerCamel() string {
	return mixedJoin(splitWords(tn.name))
}

// IsZero reports whether the type name is the unset zero value.
func (tn TypeName) IsZero() bool {
	return tn.name == ""
}

// splitWords breaks raw into its word runs. Word boundaries are
// non-alphanumeric runes, lower-or-digit to upper transitions, and the
// final capital of an acronym run when a lowercase letter follows it.
func splitWords(raw string) []string {
	var words []string
	var word []rune

	flush := func() {
		if len(word) > 0 {
			words = append(words, string(word))
			word = word[:0]
		}
	}

	runes := []rune(raw)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(word) > 0 && unicode.IsUpper(r) {
			prev := word[len(word)-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextIsLower {
				flush()
			}
		}
		word = append(word, r)
	}
	flush()
	return words
}

func snakeJoin(words []string) string {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, "_")
}

func camelJoin(words []string) string {
	titleCaser := cases.Title(language.English)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(titleCaser.String(strings.ToLower(w)))
	}
	return b.String()
}

func mixedJoin(words []string) string {
	titleCaser := cases.Title(language.English)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(titleCaser.String(strings.ToLower(w)))
	}
	return b.String()
}
