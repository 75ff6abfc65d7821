package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"admissionapi/internal/model"
)

func TestRequired_FiltersByApplicability(t *testing.T) {
	reg := Default()

	t.Run("without dependents", func(t *testing.T) {
		c := &model.AdmissionCase{HasDependents: false}
		required := reg.Required(c)

		kinds := make([]string, 0, len(required))
		for _, tpl := range required {
			kinds = append(kinds, tpl.Kind)
		}
		assert.Contains(t, kinds, "ID_FRONT")
		assert.Contains(t, kinds, "PROOF_OF_ADDRESS")
		assert.NotContains(t, kinds, "DEPENDENT_BIRTH_CERTIFICATE")
		assert.NotContains(t, kinds, "DEPENDENT_CPF")
	})

	t.Run("with dependents", func(t *testing.T) {
		c := &model.AdmissionCase{HasDependents: true}
		required := reg.Required(c)

		kinds := make([]string, 0, len(required))
		for _, tpl := range required {
			kinds = append(kinds, tpl.Kind)
		}
		assert.Contains(t, kinds, "DEPENDENT_BIRTH_CERTIFICATE")
		assert.Contains(t, kinds, "DEPENDENT_CPF")
	})
}

func TestRequired_Ordering(t *testing.T) {
	reg := New([]Template{
		{Kind: "C", Order: 30, Applies: Always},
		{Kind: "A", Order: 10, Applies: Always},
		{Kind: "B", Order: 20, Applies: Always},
	})

	required := reg.Required(&model.AdmissionCase{})
	assert.Equal(t, "A", required[0].Kind)
	assert.Equal(t, "B", required[1].Kind)
	assert.Equal(t, "C", required[2].Kind)
}

func TestRequired_Deterministic(t *testing.T) {
	reg := Default()
	c := &model.AdmissionCase{HasDependents: true}

	first := reg.Required(c)
	second := reg.Required(c)
	assert.Equal(t, first, second)
}

func TestLookup(t *testing.T) {
	reg := Default()

	tpl, ok := reg.Lookup("ID_FRONT")
	assert.True(t, ok)
	assert.True(t, tpl.Mandatory)

	// Lookup ignores applicability: dependent templates resolve too.
	_, ok = reg.Lookup("DEPENDENT_CPF")
	assert.True(t, ok)

	_, ok = reg.Lookup("UNKNOWN")
	assert.False(t, ok)
}
