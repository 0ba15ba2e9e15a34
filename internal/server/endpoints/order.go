package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/svcctx"
)

// OrderRequest is the body for replacing a presentation's slide order.
type OrderRequest struct {
	Order []deck.OrderEntry `json:"order"`
}

// SetOrderEndpoint handles PUT /api/presentations/{id}/order.
// Entries referencing unknown items are accepted; the deck assembler
// skips them, so a stale order never breaks an export.
type SetOrderEndpoint struct{}

func (e *SetOrderEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/presentations/{id}/order", e.handler
}

func (e *SetOrderEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Set slide order
//	@Description	Replace the ordered list of readings and songs for a presentation
//	@Tags			order
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Presentation ID"
//	@Param			request	body	OrderRequest	true	"Order entries"
//	@Success		200	{object}	deck.Presentation
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/order [put]
func (e *SetOrderEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, entry := range req.Order {
		if entry.Kind != deck.KindReading && entry.Kind != deck.KindSong {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown order kind %q", entry.Kind))
			return
		}
	}

	st := svcctx.StoreFrom(r.Context())
	id := r.PathValue("id")
	if err := st.SetOrder(id, req.Order); err != nil {
		writeStoreError(w, err)
		return
	}

	p, err := st.GetPresentation(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (e *SetOrderEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-order <presentation-id> <order.json>",
		Short: "Replace the slide order from a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading order file: %w", err)
			}
			var req OrderRequest
			if err := json.Unmarshal(data, &req.Order); err != nil {
				return fmt.Errorf("parsing order file: %w", err)
			}

			client := api.NewClient(getServerURL())
			var resp deck.Presentation
			path := "/api/presentations/" + args[0] + "/order"
			if err := client.Put(cmd.Context(), path, req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
