package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/svcctx"
)

// SlidesResponse is the response for previewing assembled slides.
type SlidesResponse struct {
	Slides []deck.SlideRecord `json:"slides"`
	Count  int                `json:"count"`
}

// SlidesEndpoint handles GET /api/presentations/{id}/slides. It assembles
// the deck without exporting it, so clients can preview segmentation and
// theming before producing a file.
type SlidesEndpoint struct{}

func (e *SlidesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/presentations/{id}/slides", e.handler
}

func (e *SlidesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Preview slides
//	@Description	Assemble the slide deck for a presentation without exporting
//	@Tags			slides
//	@Produce		json
//	@Param			id	path	string	true	"Presentation ID"
//	@Success		200	{object}	SlidesResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/slides [get]
func (e *SlidesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	p, err := svcctx.StoreFrom(r.Context()).GetPresentation(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	slides := deck.Assemble(p)
	writeJSON(w, http.StatusOK, SlidesResponse{Slides: slides, Count: len(slides)})
}

func (e *SlidesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "slides <presentation-id>",
		Short: "Preview the assembled slides for a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SlidesResponse
			path := "/api/presentations/" + args[0] + "/slides"
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
