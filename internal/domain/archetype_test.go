package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchetypeProfile(t *testing.T) {
	biller := ArchetypeBiller.Profile()
	assert.Equal(t, 2, biller.MaxHealth)
	assert.Equal(t, 500, biller.KillPoints)
	assert.Equal(t, 1000, biller.KillSaved)
	assert.Equal(t, 100, biller.BillRate)
	assert.Equal(t, "Biller", biller.DisplayName)

	for _, a := range []Archetype{ArchetypePedant, ArchetypeStaller, ArchetypeAggressor} {
		p := a.Profile()
		assert.Equal(t, a, p.Archetype)
		assert.Equal(t, 1, p.MaxHealth, a)
		assert.Equal(t, 200, p.KillPoints, a)
		assert.Equal(t, 200, p.KillSaved, a)
		assert.Equal(t, 20, p.BillRate, a)
	}
}

func TestArchetypeProfile_UnknownFallsBackToStaller(t *testing.T) {
	p := Archetype("JUDGE").Profile()
	assert.Equal(t, ArchetypeStaller, p.Archetype)
	assert.False(t, Archetype("JUDGE").Valid())
	assert.True(t, ArchetypePedant.Valid())
}

func TestRoster(t *testing.T) {
	roster := Roster()
	assert.Len(t, roster, len(Archetypes))
	for i, p := range roster {
		assert.Equal(t, Archetypes[i], p.Archetype)
		assert.NotEmpty(t, p.Subtitle)
		assert.NotEmpty(t, p.KillMessage)
	}
}
