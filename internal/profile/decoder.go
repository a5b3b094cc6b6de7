package profile

import (
	"strings"

	"envedit/internal/model"
)

// exportPrefix marks the only profile lines the engine reads.
const exportPrefix = "export "

// Decode turns one `export KEY=V1[:V2...]` line into a key and its values.
//
// A single value is substituted and replaces any existing binding.
// With several values, a token that refers back to KEY ("$PATH" in
// `export PATH="/opt/bin:$PATH"`) is dropped and appendMode is set, meaning
// the remaining values extend what the map already holds for KEY.
//
// References must already be bound in m; profiles are read top to bottom
// the same way a shell sources them.
func Decode(line string, m model.EnvironmentMap) (key string, values []string, appendMode bool, err error) {
	a, err := decode(line, m)
	if err != nil {
		return "", nil, false, err
	}
	return a.key, a.values, a.selfAt >= 0, nil
}

// assignment is a decoded export line. selfAt is the position in values
// where the first self-reference stood, or -1 when there was none.
type assignment struct {
	key    string
	values []string
	selfAt int
}

func decode(line string, m model.EnvironmentMap) (assignment, error) {
	rest, ok := strings.CutPrefix(line, exportPrefix)
	if !ok {
		return assignment{}, &Error{Kind: KindMalformedLine, Detail: "missing export prefix"}
	}
	key, raw, ok := strings.Cut(rest, "=")
	if !ok {
		return assignment{}, &Error{Kind: KindMalformedLine, Detail: "missing '=' in assignment"}
	}

	raw = strings.NewReplacer(`"`, "", `'`, "").Replace(raw)
	tokens := strings.Split(raw, ":")

	if len(tokens) == 1 {
		v, err := Substitute(tokens[0], m)
		if err != nil {
			return assignment{}, err
		}
		return assignment{key: key, values: []string{v}, selfAt: -1}, nil
	}

	a := assignment{key: key, values: make([]string, 0, len(tokens)), selfAt: -1}
	for _, tok := range tokens {
		if isSelfReference(tok, key) {
			if a.selfAt < 0 {
				a.selfAt = len(a.values)
			}
			continue
		}
		v, err := Substitute(tok, m)
		if err != nil {
			return assignment{}, err
		}
		a.values = append(a.values, v)
	}
	return a, nil
}

// isSelfReference reports whether token starts with a reference to key.
// "$PATH/sub" counts: the whole token is dropped, not just the reference.
func isSelfReference(token, key string) bool {
	if !strings.HasPrefix(token, "$") {
		return false
	}
	name, _ := ResolveReference(token)
	return name == key
}
