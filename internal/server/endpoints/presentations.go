package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/store"
	"github.com/liturgica/lectern/internal/svcctx"
)

// dateLayout is the wire format for presentation dates.
const dateLayout = "2006-01-02"

// PresentationRequest is the body for creating or updating a presentation.
type PresentationRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"` // YYYY-MM-DD
}

// ListPresentationsResponse is the response for listing presentations.
type ListPresentationsResponse struct {
	Presentations []*deck.Presentation `json:"presentations"`
}

func parsePresentationRequest(r *http.Request) (string, time.Time, error) {
	var req PresentationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", time.Time{}, fmt.Errorf("invalid request body: %w", err)
	}
	if req.Title == "" {
		return "", time.Time{}, fmt.Errorf("title is required")
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return req.Title, date, nil
}

// writeStoreError maps store errors to HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// CreatePresentationEndpoint handles POST /api/presentations.
type CreatePresentationEndpoint struct{}

func (e *CreatePresentationEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/presentations", e.handler
}

func (e *CreatePresentationEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Create presentation
//	@Description	Create an empty presentation for a given mass date
//	@Tags			presentations
//	@Accept			json
//	@Produce		json
//	@Param			request	body	PresentationRequest	true	"Title and date"
//	@Success		201	{object}	deck.Presentation
//	@Failure		400	{object}	ErrorResponse
//	@Router			/api/presentations [post]
func (e *CreatePresentationEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	title, date, err := parsePresentationRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := svcctx.StoreFrom(r.Context()).CreatePresentation(title, date)
	writeJSON(w, http.StatusCreated, p)
}

func (e *CreatePresentationEndpoint) Command(getServerURL func() string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp deck.Presentation
			body := PresentationRequest{Title: args[0], Date: date}
			if err := client.Post(cmd.Context(), "/api/presentations", body, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&date, "date", time.Now().Format(dateLayout), "Mass date (YYYY-MM-DD)")
	return cmd
}

// ListPresentationsEndpoint handles GET /api/presentations.
type ListPresentationsEndpoint struct{}

func (e *ListPresentationsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/presentations", e.handler
}

func (e *ListPresentationsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List presentations
//	@Description	List all presentations, newest date first
//	@Tags			presentations
//	@Produce		json
//	@Success		200	{object}	ListPresentationsResponse
//	@Router			/api/presentations [get]
func (e *ListPresentationsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	list := svcctx.StoreFrom(r.Context()).ListPresentations()
	writeJSON(w, http.StatusOK, ListPresentationsResponse{Presentations: list})
}

func (e *ListPresentationsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all presentations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListPresentationsResponse
			if err := client.Get(cmd.Context(), "/api/presentations", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetPresentationEndpoint handles GET /api/presentations/{id}.
type GetPresentationEndpoint struct{}

func (e *GetPresentationEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/presentations/{id}", e.handler
}

func (e *GetPresentationEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get presentation
//	@Description	Get a presentation with its readings, songs and order
//	@Tags			presentations
//	@Produce		json
//	@Param			id	path	string	true	"Presentation ID"
//	@Success		200	{object}	deck.Presentation
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id} [get]
func (e *GetPresentationEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	p, err := svcctx.StoreFrom(r.Context()).GetPresentation(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (e *GetPresentationEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp deck.Presentation
			if err := client.Get(cmd.Context(), "/api/presentations/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// UpdatePresentationEndpoint handles PATCH /api/presentations/{id}.
type UpdatePresentationEndpoint struct{}

func (e *UpdatePresentationEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/api/presentations/{id}", e.handler
}

func (e *UpdatePresentationEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Update presentation
//	@Description	Update a presentation's title and date
//	@Tags			presentations
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string				true	"Presentation ID"
//	@Param			request	body	PresentationRequest	true	"Title and date"
//	@Success		200	{object}	deck.Presentation
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id} [patch]
func (e *UpdatePresentationEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	title, date, err := parsePresentationRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := svcctx.StoreFrom(r.Context()).UpdatePresentation(r.PathValue("id"), title, date)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (e *UpdatePresentationEndpoint) Command(getServerURL func() string) *cobra.Command {
	var title, date string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a presentation's title and date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp deck.Presentation
			body := PresentationRequest{Title: title, Date: date}
			if err := client.Patch(cmd.Context(), "/api/presentations/"+args[0], body, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	return cmd
}

// DeletePresentationEndpoint handles DELETE /api/presentations/{id}.
type DeletePresentationEndpoint struct{}

func (e *DeletePresentationEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/presentations/{id}", e.handler
}

func (e *DeletePresentationEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Delete presentation
//	@Tags			presentations
//	@Produce		json
//	@Param			id	path	string	true	"Presentation ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id} [delete]
func (e *DeletePresentationEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if err := svcctx.StoreFrom(r.Context()).DeletePresentation(r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *DeletePresentationEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if err := client.Delete(cmd.Context(), "/api/presentations/"+args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}
