// Package variables resolves {name} tokens inside template content strings.
//
// Two contexts consume it: preview/PDF rendering, where every token is
// replaced with a real or sample value, and authoring, where tokens are
// deliberately left verbatim so the author can see which positions are
// dynamic. Substitution is a single global pass; a substituted value is never
// re-scanned, so values containing brace sequences cannot trigger nested
// expansion.
package variables

import (
	"regexp"
	"strings"
	"time"

	"github.com/auditkit/templatebuilder/pkg/model"
)

// tokenPattern matches the wire-stable token grammar: a literal brace pair
// wrapping an identifier. There is no escaping mechanism, so names can never
// contain braces.
var tokenPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Option customises a Resolver.
type Option func(*Resolver)

// WithValues supplies real values (collected from the user or an external
// system) that take precedence over every sample source.
func WithValues(values map[string]string) Option {
	return func(r *Resolver) {
		for name, value := range values {
			if strings.TrimSpace(name) == "" {
				continue
			}
			r.values[name] = value
		}
	}
}

// WithClock overrides the clock used for date samples. Tests use this to pin
// output.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// Resolver looks up token values against, in order: explicitly supplied
// values, the built-in sample table, and the template's own variable
// declarations (default first, then a type-appropriate synthesised sample).
type Resolver struct {
	declarations map[string]model.VariableDeclaration
	values       map[string]string
	now          func() time.Time
}

// NewResolver builds a resolver over the template's declared variables.
func NewResolver(declarations []model.VariableDeclaration, options ...Option) *Resolver {
	r := &Resolver{
		declarations: make(map[string]model.VariableDeclaration, len(declarations)),
		values:       make(map[string]string),
		now:          time.Now,
	}
	for _, decl := range declarations {
		if strings.TrimSpace(decl.Name) == "" {
			continue
		}
		r.declarations[decl.Name] = decl
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve returns the value for a token name and whether any source knew it.
func (r *Resolver) Resolve(name string) (string, bool) {
	if value, ok := r.values[name]; ok {
		return value, true
	}
	if value, ok := r.builtinSample(name); ok {
		return value, true
	}
	if decl, ok := r.declarations[name]; ok {
		if decl.Default != "" {
			return decl.Default, true
		}
		return r.typedSample(decl), true
	}
	return "", false
}

// Substitute replaces every token occurrence in content with its resolved
// value. Unresolved tokens stay as literal text; substitution never deletes
// content and never crashes on unknown names.
func (r *Resolver) Substitute(content string) string {
	if content == "" || !strings.Contains(content, "{") {
		return content
	}
	return tokenPattern.ReplaceAllStringFunc(content, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := r.Resolve(name); ok {
			return value
		}
		return token
	})
}

// Tokens lists the distinct token names referenced by content, in first-use
// order. The authoring UI uses this to cross-check declarations.
func Tokens(content string) []string {
	matches := tokenPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// builtinSample covers the fixed sample table available to every template
// regardless of its own declarations.
func (r *Resolver) builtinSample(name string) (string, bool) {
	switch name {
	case "client_name":
		return "Acme Corporation", true
	case "company_name":
		return "Meridian Advisory Group", true
	case "contract_amount":
		return "$25,000.00", true
	case "auditor_name":
		return "Jordan Reeves", true
	case "project_name":
		return "Annual Compliance Review", true
	case "reference_number":
		return "REF-2024-0417", true
	case "contract_date", "start_date":
		return r.today(), true
	case "end_date":
		return r.now().AddDate(0, 6, 0).Format(sampleDateLayout), true
	default:
		return "", false
	}
}

const sampleDateLayout = "January 2, 2006"

func (r *Resolver) today() string {
	return r.now().Format(sampleDateLayout)
}

// typedSample synthesises a representative value for a declared variable with
// no default, keyed on its declared type.
func (r *Resolver) typedSample(decl model.VariableDeclaration) string {
	switch decl.Type {
	case model.VariableTypeDate:
		return r.today()
	case model.VariableTypeCurrency:
		return "$12,500.00"
	case model.VariableTypeNumber:
		return "42"
	default:
		return "[" + humanize(decl.Name) + "]"
	}
}

// humanize turns snake_case token names into title-cased placeholders, e.g.
// "client_name" -> "Client Name".
func humanize(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
