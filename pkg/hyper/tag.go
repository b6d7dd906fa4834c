package hyper

import "strings"

// TagMeta is a parsed tag token.
type TagMeta struct {
	// Name is the bare element name ("div" for "div#main.card").
	Name string

	// ID is the #id segment, if any.
	ID string

	// Classes are the .class segments in token order.
	Classes []string

	// Component is set instead of Name when the token is a Callable.
	Component Callable
}

// ParseTag splits a tag token of the form name(#id)?(.class)* into its parts.
// The #id and .class segments may appear in any order after the name.
// Callable tokens are returned unchanged as TagMeta.Component.
//
//	ParseTag("div")                // {Name: "div"}
//	ParseTag("i#idx.some-class.x") // {Name: "i", ID: "idx", Classes: [some-class x]}
func ParseTag(token any) (TagMeta, error) {
	if c, ok := AsCallable(token); ok {
		return TagMeta{Component: c}, nil
	}
	s, ok := token.(string)
	if !ok {
		return TagMeta{}, fail(ErrMalformedTag).
			WithDetail(typeName(token) + " cannot be used as a tag")
	}
	return parseTagString(s)
}

func parseTagString(token string) (TagMeta, error) {
	end := strings.IndexAny(token, ".#")
	if end < 0 {
		end = len(token)
	}

	name := token[:end]
	if !isTagName(name) {
		return TagMeta{}, fail(ErrMalformedTag).
			WithToken(token).
			WithDetail("tag name must start with a letter and contain only letters, digits or '-'")
	}

	meta := TagMeta{Name: name}
	rest := token[end:]
	for rest != "" {
		marker := rest[0]
		rest = rest[1:]

		next := strings.IndexAny(rest, ".#")
		if next < 0 {
			next = len(rest)
		}
		segment := rest[:next]
		rest = rest[next:]

		if !isIdentifier(segment) {
			return TagMeta{}, fail(ErrMalformedTag).
				WithToken(token).
				WithDetail("empty or invalid '" + string(marker) + "' segment")
		}

		if marker == '#' {
			if meta.ID != "" {
				return TagMeta{}, fail(ErrMalformedTag).
					WithToken(token).
					WithDetail("more than one #id segment").
					WithSuggestion("Use at most one #id segment per tag")
			}
			meta.ID = segment
			continue
		}
		meta.Classes = append(meta.Classes, segment)
	}

	return meta, nil
}

func isTagName(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !isDigit(c) && c != '-' {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" || !(isLetter(s[0]) || s[0] == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !isDigit(c) && c != '-' && c != '_' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
