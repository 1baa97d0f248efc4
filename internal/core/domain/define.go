package domain

import (
	"cmp"
	"slices"
)

// EnvPrefix is the expression prefix environment entries are substituted under.
const EnvPrefix = "process.env."

// DefineEntry is one compile-time constant.
type DefineEntry struct {
	// Key is the identifier, or the environment variable name for env entries.
	Key string
	// Literal is the JSON encoding substituted for every occurrence.
	Literal string
	// Type is the TypeScript type written to the environment stub.
	Type string
}

// DefineTable holds global identifier and environment constants. It is built once per run and read-only afterwards.
type DefineTable struct {
	Globals []DefineEntry
	Env     []DefineEntry
}

// Substitution pairs a source token with its replacement.
type Substitution struct {
	Token   string
	Literal string
}

// Empty reports whether the table has no entries.
func (t *DefineTable) Empty() bool {
	return t == nil || (len(t.Globals) == 0 && len(t.Env) == 0)
}

// Substitutions returns every token to replace, longest first so that no token shadows a longer one.
func (t *DefineTable) Substitutions() []Substitution {
	if t == nil {
		return nil
	}
	subs := make([]Substitution, 0, len(t.Globals)+len(t.Env))
	for _, entry := range t.Globals {
		subs = append(subs, Substitution{Token: entry.Key, Literal: entry.Literal})
	}
	for _, entry := range t.Env {
		subs = append(subs, Substitution{Token: EnvPrefix + entry.Key, Literal: entry.Literal})
	}
	slices.SortStableFunc(subs, func(a, b Substitution) int {
		return cmp.Compare(len(b.Token), len(a.Token))
	})
	return subs
}

// Lookup returns the global entry with the given key.
func (t *DefineTable) Lookup(key string) (DefineEntry, bool) {
	for _, entry := range t.Globals {
		if entry.Key == key {
			return entry, true
		}
	}
	return DefineEntry{}, false
}

// LookupEnv returns the env entry with the given key.
func (t *DefineTable) LookupEnv(key string) (DefineEntry, bool) {
	for _, entry := range t.Env {
		if entry.Key == key {
			return entry, true
		}
	}
	return DefineEntry{}, false
}
