package endpoints

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/svcctx"
)

// maxDocumentBytes caps an imported presentation document.
const maxDocumentBytes = 4 << 20

// ImportPresentationEndpoint handles POST /api/presentations/import.
// The body is a presentation document (editor save file); it is validated
// against the document schema before entering the store.
type ImportPresentationEndpoint struct{}

func (e *ImportPresentationEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/presentations/import", e.handler
}

func (e *ImportPresentationEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Import presentation document
//	@Description	Validate a saved presentation document and load it into the store
//	@Tags			presentations
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	deck.Presentation
//	@Failure		400	{object}	ErrorResponse
//	@Router			/api/presentations/import [post]
func (e *ImportPresentationEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := svcctx.ValidatorFrom(r.Context()).ValidateDocument(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p deck.Presentation
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored := svcctx.StoreFrom(r.Context()).ImportPresentation(&p)
	writeJSON(w, http.StatusCreated, stored)
}

func (e *ImportPresentationEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a saved presentation document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var doc json.RawMessage = data
			client := api.NewClient(getServerURL())
			var resp deck.Presentation
			if err := client.Post(cmd.Context(), "/api/presentations/import", doc, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
