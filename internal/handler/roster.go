package handler

import (
	"net/http"

	"github.com/osse101/WhackALawyer_Go/internal/domain"
	"github.com/osse101/WhackALawyer_Go/internal/taunt"
)

// HandleGetArchetypes returns the lawyer roster
// @Summary Archetype roster
// @Description Profiles, weaknesses and scoring of every lawyer archetype
// @Tags game
// @Produce json
// @Success 200 {array} domain.ArchetypeProfile
// @Router /api/v1/archetypes [get]
func HandleGetArchetypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, domain.Roster())
	}
}

// HandleGetTaunts returns the taunt table new sessions would receive
// @Summary Taunt table
// @Tags game
// @Produce json
// @Success 200 {object} domain.TauntTable
// @Router /api/v1/taunts [get]
func HandleGetTaunts(provider taunt.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := provider.FetchTaunts(r.Context())
		if err != nil {
			respondServiceError(w, r, OpGetTaunts, err)
			return
		}
		respondJSON(w, http.StatusOK, table.WithFallback())
	}
}
