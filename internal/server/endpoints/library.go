package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/svcctx"
)

// LibrarySongsResponse is the response for listing library songs.
type LibrarySongsResponse struct {
	Songs []deck.Song `json:"songs"`
	Count int         `json:"count"`
}

// LibrarySongsEndpoint handles GET /api/library/songs.
type LibrarySongsEndpoint struct{}

func (e *LibrarySongsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/library/songs", e.handler
}

func (e *LibrarySongsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List library songs
//	@Description	List the built-in song library, optionally filtered by category
//	@Tags			library
//	@Produce		json
//	@Param			category	query	string	false	"Liturgical category filter"
//	@Success		200	{object}	LibrarySongsResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/api/library/songs [get]
func (e *LibrarySongsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	lib := svcctx.LibraryFrom(r.Context())

	var songs []deck.Song
	if category := r.URL.Query().Get("category"); category != "" {
		if !deck.ValidCategory(deck.SongCategory(category)) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown song category %q", category))
			return
		}
		songs = lib.ByCategory(deck.SongCategory(category))
	} else {
		songs = lib.All()
	}

	writeJSON(w, http.StatusOK, LibrarySongsResponse{Songs: songs, Count: len(songs)})
}

func (e *LibrarySongsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "library",
		Short: "List the built-in song library",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp LibrarySongsResponse
			path := "/api/library/songs"
			if category != "" {
				path += "?category=" + category
			}
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Filter by liturgical category")
	return cmd
}
