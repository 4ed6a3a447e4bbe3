package theme

import "strings"

// A folha de estilo é montada como lista de regras tipadas e só vira
// texto no Render. O CSS custom do lojista entra como bloco bruto
// delimitado no fim.

type Decl struct {
	Prop  string
	Value string
}

type Rule struct {
	Selector string
	Decls    []Decl
}

type Stylesheet struct {
	rules []Rule
	raw   []string
}

func (s *Stylesheet) Add(selector string, decls ...Decl) {
	s.rules = append(s.rules, Rule{Selector: selector, Decls: decls})
}

// AddRaw anexa um bloco já pronto (o escape hatch do custom_css).
func (s *Stylesheet) AddRaw(block string) {
	if strings.TrimSpace(block) == "" {
		return
	}
	s.raw = append(s.raw, block)
}

func (s *Stylesheet) Render() string {
	var b strings.Builder
	for _, r := range s.rules {
		b.WriteString(r.Selector)
		b.WriteString(" {\n")
		for _, d := range r.Decls {
			b.WriteString("  ")
			b.WriteString(d.Prop)
			b.WriteString(": ")
			b.WriteString(d.Value)
			b.WriteString(";\n")
		}
		b.WriteString("}\n\n")
	}
	for _, raw := range s.raw {
		b.WriteString(raw)
		if !strings.HasSuffix(raw, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
