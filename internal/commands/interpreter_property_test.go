// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func allTokens(r *Registry) []any {
	var tokens []any
	for _, def := range r.All() {
		tokens = append(tokens, def.Name)
		for _, alias := range def.Aliases {
			tokens = append(tokens, alias)
		}
	}
	return tokens
}

func TestInterpreterProperties(t *testing.T) {
	reg := NewRegistry()
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	interp := NewInterpreter(reg, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every token resolves to its owner", prop.ForAll(
		func(token string) bool {
			def, ok := reg.Lookup(token)
			return ok && def.Matches(token)
		},
		gen.OneConstOf(allTokens(reg)...),
	))

	properties.Property("lookup ignores case and padding", prop.ForAll(
		func(token string) bool {
			want, _ := reg.Lookup(token)
			got, ok := reg.Lookup("  " + strings.ToUpper(token) + "\t")
			return ok && got == want
		},
		gen.OneConstOf(allTokens(reg)...),
	))

	properties.Property("alias and name evaluate the same", prop.ForAll(
		func(token string, arg string) bool {
			def, _ := reg.Lookup(token)
			if def.Category == CategoryAutomation {
				return true
			}
			viaAlias := interp.Evaluate(ctx, token+" "+arg, nil)
			viaName := interp.Evaluate(ctx, def.Name+" "+arg, nil)
			return reflect.DeepEqual(viaAlias, viaName)
		},
		gen.OneConstOf(allTokens(reg)...),
		gen.OneConstOf("", "network", "security", "scan", "optimize", "quantum 80", "status"),
	))

	properties.Property("evaluation is deterministic", prop.ForAll(
		func(line string) bool {
			return reflect.DeepEqual(interp.Evaluate(ctx, line, nil), interp.Evaluate(ctx, line, nil))
		},
		gen.AnyString(),
	))

	properties.Property("every response has a valid status", prop.ForAll(
		func(line string) bool {
			return interp.Evaluate(ctx, line, nil).Status.Valid()
		},
		gen.AnyString(),
	))

	properties.Property("suggestions are never nil", prop.ForAll(
		func(partial string) bool {
			return interp.Suggest(partial, nil) != nil
		},
		gen.AlphaString(),
	))

	properties.Property("single-token suggestions are registered names", prop.ForAll(
		func(partial string) bool {
			for _, s := range interp.Suggest(partial, nil) {
				def, ok := reg.Lookup(s)
				if !ok || def.Name != s || !def.HasPrefix(strings.ToLower(partial)) {
					return false
				}
			}
			return true
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.Property("empty input suggests the last command", prop.ForAll(
		func(lines []string) bool {
			got := interp.Suggest("", historyOf(lines...))
			if len(lines) == 0 {
				return reflect.DeepEqual(got, []string{"status", "help"})
			}
			return reflect.DeepEqual(got, []string{lines[len(lines)-1]})
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
