package http

import (
	"net/http"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
	"github.com/aussiebroadwan/digits/internal/digits/service"
	"github.com/aussiebroadwan/digits/pkg/digitsdk"
	"github.com/aussiebroadwan/digits/pkg/httpx"
)

type EntriesHandler struct {
	EntryService *service.EntryService
}

func revealedEntry(e domain.Entry) *digitsdk.RevealedEntry {
	return &digitsdk.RevealedEntry{
		ID:           e.ID,
		UserNumber:   e.UserNumber,
		RandomNumber: e.RandomNumber,
		CreatedAt:    e.CreatedAt,
	}
}

// HandleIndex godoc
//
//	@Summary		Number Form
//	@Description	Describes the form that starts a new entry and hands out the CSRF token to post it with.
//	@Tags			Entries
//	@Produce		json
//	@Success		200	{object}	digitsdk.IndexResponse
//	@Failure		401	{object}	digitsdk.APIError
//	@Router			/ [get]
func (h *EntriesHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, digitsdk.IndexResponse{
		Username:  actorFrom(r).Username,
		Fields:    []string{"user_number"},
		StartURL:  "/start",
		CSRFToken: httpx.CSRFTokenFromContext(r.Context()),
	})
}

// HandleStart godoc
//
//	@Summary		Start Display
//	@Description	Validates a five digit number, draws a random partner for it and returns both with a commit token valid for 30 seconds.
//	@Description	Nothing is stored until the token is posted to /commit.
//	@Tags			Entries
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			user_number	formData	string	true	"Exactly five digits"
//	@Success		200			{object}	digitsdk.StartResponse
//	@Failure		400			{object}	digitsdk.APIError	"validation_error"
//	@Failure		401			{object}	digitsdk.APIError
//	@Router			/start [post]
func (h *EntriesHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		digitsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	d, err := h.EntryService.StartDisplay(r.Context(), actorFrom(r), domain.StartInput{
		UserNumber: r.PostFormValue("user_number"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, digitsdk.StartResponse{
		UserNumber:         d.UserNumber,
		RandomNumber:       d.RandomNumber,
		SignedPayload:      d.SignedPayload,
		CommitURL:          d.CommitURL,
		CommitDelaySeconds: int(d.CommitDelay.Seconds()),
	})
}

// HandleCommit godoc
//
//	@Summary		Commit Entry
//	@Description	Stores the pair carried by a commit token.
//	@Tags			Entries
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			signed_payload	formData	string	true	"Token returned by /start"
//	@Success		200				{object}	digitsdk.CommitResponse
//	@Failure		400				{object}	digitsdk.APIError	"invalid_request"
//	@Failure		403				{object}	digitsdk.APIError	"invalid_token, expired_token"
//	@Router			/commit [post]
func (h *EntriesHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		digitsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	id, err := h.EntryService.Commit(r.Context(), actorFrom(r), r.PostFormValue("signed_payload"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, digitsdk.CommitResponse{Status: digitsdk.StatusOK, EntryID: id})
}

// HandleList godoc
//
//	@Summary		List Entries
//	@Description	Returns the 50 most recent entries, newest first. Numbers are not included.
//	@Tags			Entries
//	@Produce		json
//	@Success		200	{object}	digitsdk.ListResponse
//	@Failure		401	{object}	digitsdk.APIError
//	@Router			/list [get]
func (h *EntriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.EntryService.List(r.Context(), actorFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := digitsdk.ListResponse{Entries: make([]digitsdk.EntrySummary, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, digitsdk.EntrySummary{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			Revealed:  e.Revealed,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleReveal godoc
//
//	@Summary		Request Reveal
//	@Description	Issues a challenge of three 1-based positions into the security string, replacing any pending one.
//	@Description	Entries that are already revealed are returned directly.
//	@Tags			Entries
//	@Produce		json
//	@Param			entry_id	path		string	true	"Entry id"
//	@Success		200			{object}	digitsdk.RevealResponse
//	@Failure		404			{object}	digitsdk.APIError
//	@Router			/reveal/{entry_id} [get]
func (h *EntriesHandler) HandleReveal(w http.ResponseWriter, r *http.Request) {
	ch, err := h.EntryService.RequestReveal(r.Context(), actorFrom(r), r.PathValue("entry_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if ch.AlreadyRevealed {
		httpx.WriteJSON(w, http.StatusOK, digitsdk.RevealResponse{
			Status:  digitsdk.StatusAlreadyRevealed,
			EntryID: ch.EntryID,
			Entry:   revealedEntry(ch.Entry),
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, digitsdk.RevealResponse{
		Status:    digitsdk.StatusChallenge,
		EntryID:   ch.EntryID,
		Positions: ch.Positions,
	})
}

// HandleVerify godoc
//
//	@Summary		Verify Challenge
//	@Description	Checks one character per challenge position. A match reveals the entry, a mismatch offers the same positions again.
//	@Tags			Entries
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			entry_id	path		string	true	"Entry id"
//	@Param			char1		formData	string	true	"Character at the first position"
//	@Param			char2		formData	string	true	"Character at the second position"
//	@Param			char3		formData	string	true	"Character at the third position"
//	@Success		200			{object}	digitsdk.VerifyResponse	"revealed or mismatch"
//	@Failure		400			{object}	digitsdk.APIError		"no_challenge, validation_error, invalid_position"
//	@Failure		403			{object}	digitsdk.APIError		"challenge_expired"
//	@Failure		404			{object}	digitsdk.APIError
//	@Router			/verify/{entry_id} [post]
func (h *EntriesHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		digitsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	id := r.PathValue("entry_id")
	res, err := h.EntryService.VerifyChallenge(r.Context(), actorFrom(r), id, domain.VerifyInput{
		Chars: []string{
			r.PostFormValue("char1"),
			r.PostFormValue("char2"),
			r.PostFormValue("char3"),
		},
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if !res.Revealed {
		httpx.WriteJSON(w, http.StatusOK, digitsdk.VerifyResponse{
			Status:    digitsdk.StatusMismatch,
			EntryID:   id,
			Positions: res.Positions,
			Error:     "Characters did not match. Try again.",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, digitsdk.VerifyResponse{
		Status:  digitsdk.StatusRevealed,
		EntryID: id,
		Entry:   revealedEntry(res.Entry),
	})
}

// HandleDelete godoc
//
//	@Summary		Delete Entry
//	@Description	Deletes an entry and redirects to the list.
//	@Tags			Entries
//	@Param			entry_id	path	string	true	"Entry id"
//	@Success		303
//	@Failure		404	{object}	digitsdk.APIError
//	@Router			/delete/{entry_id} [post]
func (h *EntriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.EntryService.Delete(r.Context(), actorFrom(r), r.PathValue("entry_id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/list", http.StatusSeeOther)
}
