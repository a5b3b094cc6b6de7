package profile

import (
	"strconv"
	"strings"

	"envedit/internal/model"
)

// ResolveReference finds the variable a token refers to. The name runs
// from the first '$' to the next '/' or the end of the token, so
// "$HOME/bin" refers to HOME. ok is false when the token has no '$'.
// The name may be empty ("$/x"); callers treat that as malformed.
func ResolveReference(token string) (name string, ok bool) {
	idx := strings.IndexByte(token, '$')
	if idx == -1 {
		return "", false
	}
	name = token[idx+1:]
	if end := strings.IndexByte(name, '/'); end != -1 {
		name = name[:end]
	}
	return name, true
}

// Substitute replaces the first "$NAME" in token with the first value
// bound to NAME in m. Resolution is one level deep: the substituted value
// is not itself expanded.
func Substitute(token string, m model.EnvironmentMap) (string, error) {
	name, ok := ResolveReference(token)
	if !ok {
		return token, nil
	}
	if name == "" {
		return "", &Error{Kind: KindMalformedLine, Detail: "empty reference in " + strconv.Quote(token)}
	}
	value, found := m.First(name)
	if !found {
		return "", &Error{Kind: KindUnknownReference, Detail: "$" + name + " is not defined"}
	}
	return strings.Replace(token, "$"+name, value, 1), nil
}

