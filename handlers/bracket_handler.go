package handlers

import (
	"net/http"

	"github.com/Dosada05/championship-tracker/models"
	"github.com/Dosada05/championship-tracker/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{
		bracketService: bs,
	}
}

// GetBracketHandler обрабатывает GET /tournaments/{tournamentID}/bracket
func (h *BracketHandler) GetBracketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.bracketService.GetBracket(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStandingsHandler обрабатывает GET /tournaments/{tournamentID}/standings
func (h *BracketHandler) GetStandingsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tables, err := h.bracketService.GetStandings(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": tables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSeedingHandler обрабатывает GET /tournaments/{tournamentID}/seeding
func (h *BracketHandler) GetSeedingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	seeding, err := h.bracketService.GetCustomSeeding(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"seeding": seeding}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetSeedingHandler обрабатывает PUT /tournaments/{tournamentID}/seeding
func (h *BracketHandler) SetSeedingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input models.CustomSeeding
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.bracketService.SetCustomSeeding(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ClearSeedingHandler обрабатывает DELETE /tournaments/{tournamentID}/seeding
func (h *BracketHandler) ClearSeedingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.bracketService.ClearCustomSeeding(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadFixtureHandler обрабатывает PUT /tournaments/{tournamentID}/fixture.
// Тело запроса - сам JSON-дескриптор расписания.
func (h *BracketHandler) UploadFixtureHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer r.Body.Close()

	tmpl, err := h.bracketService.UploadFixture(r.Context(), id, r.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"template": tmpl}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PreviewScheduleHandler обрабатывает GET /tournaments/{tournamentID}/schedule/preview
func (h *BracketHandler) PreviewScheduleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	games, err := h.bracketService.PreviewSchedule(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
