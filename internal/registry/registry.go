// Package registry holds the canonical list of document kinds an admission
// case can require. The set is immutable after construction; applicability
// of each entry is an explicit predicate over the case, never inferred.
package registry

import (
	"sort"

	"admissionapi/internal/model"
)

// Applicability decides whether a template applies to a given case.
type Applicability func(c *model.AdmissionCase) bool

// Always applies the template to every case.
func Always(*model.AdmissionCase) bool { return true }

// WithDependents applies the template only when the case declares dependents.
func WithDependents(c *model.AdmissionCase) bool { return c.HasDependents }

// Template is one registry entry: a document kind and its rules.
type Template struct {
	Kind        string
	DisplayName string
	Mandatory   bool
	Order       int
	Applies     Applicability
}

// Registry supplies the ordered, case-filtered template set. Safe for
// concurrent use; entries are never mutated after New.
type Registry struct {
	templates []Template
}

// New builds a registry from the given templates, sorted by display order.
func New(templates []Template) *Registry {
	ts := make([]Template, len(templates))
	copy(ts, templates)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Order < ts[j].Order })
	return &Registry{templates: ts}
}

// Default returns the standard Brazilian admission document set.
func Default() *Registry {
	return New([]Template{
		{Kind: "ID_FRONT", DisplayName: "RG (frente)", Mandatory: true, Order: 10, Applies: Always},
		{Kind: "ID_BACK", DisplayName: "RG (verso)", Mandatory: true, Order: 20, Applies: Always},
		{Kind: "CPF", DisplayName: "CPF", Mandatory: true, Order: 30, Applies: Always},
		{Kind: "PROOF_OF_ADDRESS", DisplayName: "Comprovante de residência", Mandatory: true, Order: 40, Applies: Always},
		{Kind: "WORK_CARD", DisplayName: "Carteira de trabalho (CTPS)", Mandatory: true, Order: 50, Applies: Always},
		{Kind: "VOTER_ID", DisplayName: "Título de eleitor", Mandatory: false, Order: 60, Applies: Always},
		{Kind: "BANK_DETAILS", DisplayName: "Dados bancários", Mandatory: false, Order: 70, Applies: Always},
		{Kind: "DEPENDENT_BIRTH_CERTIFICATE", DisplayName: "Certidão de nascimento de dependentes", Mandatory: true, Order: 80, Applies: WithDependents},
		{Kind: "DEPENDENT_CPF", DisplayName: "CPF de dependentes", Mandatory: true, Order: 90, Applies: WithDependents},
	})
}

// Required returns the templates applicable to the case, in display order.
// Pure: no side effects, deterministic for a given case.
func (r *Registry) Required(c *model.AdmissionCase) []Template {
	out := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		if t.Applies == nil || t.Applies(c) {
			out = append(out, t)
		}
	}
	return out
}

// Lookup returns the template for a kind regardless of applicability.
func (r *Registry) Lookup(kind string) (Template, bool) {
	for _, t := range r.templates {
		if t.Kind == kind {
			return t, true
		}
	}
	return Template{}, false
}
