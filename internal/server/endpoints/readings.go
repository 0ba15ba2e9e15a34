package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/svcctx"
)

// ReadingRequest is the body for adding or updating a reading.
type ReadingRequest struct {
	Title     string `json:"title"`
	Reference string `json:"reference"`
	Body      string `json:"body"`
}

// AddReadingEndpoint handles POST /api/presentations/{id}/readings.
type AddReadingEndpoint struct{}

func (e *AddReadingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/presentations/{id}/readings", e.handler
}

func (e *AddReadingEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Add reading
//	@Description	Append a scripture reading to a presentation
//	@Tags			readings
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Presentation ID"
//	@Param			request	body	ReadingRequest	true	"Reading"
//	@Success		201	{object}	deck.Reading
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/readings [post]
func (e *AddReadingEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	reading, err := svcctx.StoreFrom(r.Context()).AddReading(r.PathValue("id"), deck.Reading{
		Title:     req.Title,
		Reference: req.Reference,
		Body:      req.Body,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reading)
}

func (e *AddReadingEndpoint) Command(getServerURL func() string) *cobra.Command {
	var reference, body string
	cmd := &cobra.Command{
		Use:   "add-reading <presentation-id> <title>",
		Short: "Add a reading to a presentation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp deck.Reading
			req := ReadingRequest{Title: args[1], Reference: reference, Body: body}
			path := "/api/presentations/" + args[0] + "/readings"
			if err := client.Post(cmd.Context(), path, req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&reference, "reference", "", "Scripture reference (e.g. \"Lc 2, 1-14\")")
	cmd.Flags().StringVar(&body, "body", "", "Reading text")
	return cmd
}

// UpdateReadingEndpoint handles PATCH /api/presentations/{id}/readings/{readingID}.
type UpdateReadingEndpoint struct{}

func (e *UpdateReadingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/api/presentations/{id}/readings/{readingID}", e.handler
}

func (e *UpdateReadingEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Update reading
//	@Tags			readings
//	@Accept			json
//	@Produce		json
//	@Param			id			path	string			true	"Presentation ID"
//	@Param			readingID	path	string			true	"Reading ID"
//	@Param			request		body	ReadingRequest	true	"Reading"
//	@Success		200	{object}	deck.Reading
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/readings/{readingID} [patch]
func (e *UpdateReadingEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reading, err := svcctx.StoreFrom(r.Context()).UpdateReading(r.PathValue("id"), deck.Reading{
		ID:        r.PathValue("readingID"),
		Title:     req.Title,
		Reference: req.Reference,
		Body:      req.Body,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (e *UpdateReadingEndpoint) Command(getServerURL func() string) *cobra.Command {
	var title, reference, body string
	cmd := &cobra.Command{
		Use:   "update-reading <presentation-id> <reading-id>",
		Short: "Update a reading",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp deck.Reading
			req := ReadingRequest{Title: title, Reference: reference, Body: body}
			path := "/api/presentations/" + args[0] + "/readings/" + args[1]
			if err := client.Patch(cmd.Context(), path, req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Reading title")
	cmd.Flags().StringVar(&reference, "reference", "", "Scripture reference")
	cmd.Flags().StringVar(&body, "body", "", "Reading text")
	return cmd
}

// DeleteReadingEndpoint handles DELETE /api/presentations/{id}/readings/{readingID}.
type DeleteReadingEndpoint struct{}

func (e *DeleteReadingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/presentations/{id}/readings/{readingID}", e.handler
}

func (e *DeleteReadingEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Delete reading
//	@Description	Remove a reading and any order entries pointing at it
//	@Tags			readings
//	@Produce		json
//	@Param			id			path	string	true	"Presentation ID"
//	@Param			readingID	path	string	true	"Reading ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/readings/{readingID} [delete]
func (e *DeleteReadingEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	err := svcctx.StoreFrom(r.Context()).DeleteReading(r.PathValue("id"), r.PathValue("readingID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *DeleteReadingEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-reading <presentation-id> <reading-id>",
		Short: "Delete a reading",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/presentations/" + args[0] + "/readings/" + args[1]
			if err := client.Delete(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

// FetchReadingsResponse is the response for fetching calendar readings.
type FetchReadingsResponse struct {
	Readings []deck.Reading `json:"readings"`
}

// FetchReadingsEndpoint handles POST /api/presentations/{id}/readings/fetch.
// It pulls the readings for the presentation date from the liturgical
// calendar and appends them; on any upstream failure the built-in example
// readings are used instead, so the call always succeeds.
type FetchReadingsEndpoint struct{}

func (e *FetchReadingsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/presentations/{id}/readings/fetch", e.handler
}

func (e *FetchReadingsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Fetch readings from the liturgical calendar
//	@Description	Append the mass readings for the presentation date
//	@Tags			readings
//	@Produce		json
//	@Param			id	path	string	true	"Presentation ID"
//	@Success		200	{object}	FetchReadingsResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/readings/fetch [post]
func (e *FetchReadingsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())

	p, err := st.GetPresentation(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	fetched := svcctx.CalendarFrom(r.Context()).ReadingsFor(r.Context(), p.Date)

	added := make([]deck.Reading, 0, len(fetched))
	for _, cr := range fetched {
		reading, err := st.AddReading(p.ID, deck.Reading{
			Title:     cr.Title,
			Reference: cr.Reference,
			Body:      cr.Body,
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}
		added = append(added, *reading)
	}

	writeJSON(w, http.StatusOK, FetchReadingsResponse{Readings: added})
}

func (e *FetchReadingsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-readings <presentation-id>",
		Short: "Fetch the mass readings for the presentation date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp FetchReadingsResponse
			path := "/api/presentations/" + args[0] + "/readings/fetch"
			if err := client.Post(cmd.Context(), path, nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
