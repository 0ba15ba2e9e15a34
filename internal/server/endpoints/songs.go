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

// SongRequest is the body for adding or updating a song.
type SongRequest struct {
	Title    string `json:"title"`
	Lyrics   string `json:"lyrics"`
	Author   string `json:"author"`
	Melody   string `json:"melody"`
	Category string `json:"category"`
}

// AddSongEndpoint handles POST /api/presentations/{id}/songs.
type AddSongEndpoint struct{}

func (e *AddSongEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/presentations/{id}/songs", e.handler
}

func (e *AddSongEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Add song
//	@Description	Append a song to a presentation
//	@Tags			songs
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string		true	"Presentation ID"
//	@Param			request	body	SongRequest	true	"Song"
//	@Success		201	{object}	deck.Song
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/songs [post]
func (e *AddSongEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	song, err := songFromRequest(req, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := svcctx.StoreFrom(r.Context()).AddSong(r.PathValue("id"), song)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func songFromRequest(req SongRequest, id string) (deck.Song, error) {
	if req.Title == "" {
		return deck.Song{}, fmt.Errorf("title is required")
	}
	category := deck.SongCategory(req.Category)
	if category == "" {
		category = deck.CategoryOther
	}
	if !deck.ValidCategory(category) {
		return deck.Song{}, fmt.Errorf("unknown song category %q", req.Category)
	}
	return deck.Song{
		ID:       id,
		Title:    req.Title,
		Lyrics:   req.Lyrics,
		Author:   req.Author,
		Melody:   req.Melody,
		Category: category,
	}, nil
}

func (e *AddSongEndpoint) Command(getServerURL func() string) *cobra.Command {
	var lyrics, author, melody, category string
	cmd := &cobra.Command{
		Use:   "add-song <presentation-id> <title>",
		Short: "Add a song to a presentation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp deck.Song
			req := SongRequest{Title: args[1], Lyrics: lyrics, Author: author, Melody: melody, Category: category}
			path := "/api/presentations/" + args[0] + "/songs"
			if err := client.Post(cmd.Context(), path, req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&lyrics, "lyrics", "", "Song lyrics (R/ marks the refrain, \"1.\" a verse)")
	cmd.Flags().StringVar(&author, "author", "", "Author")
	cmd.Flags().StringVar(&melody, "melody", "", "Melody reference")
	cmd.Flags().StringVar(&category, "category", "other", "Liturgical category (entrance, kyrie, gloria, offertory, sanctus, communion, recessional, other)")
	return cmd
}

// UpdateSongEndpoint handles PATCH /api/presentations/{id}/songs/{songID}.
type UpdateSongEndpoint struct{}

func (e *UpdateSongEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/api/presentations/{id}/songs/{songID}", e.handler
}

func (e *UpdateSongEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Update song
//	@Tags			songs
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string		true	"Presentation ID"
//	@Param			songID	path	string		true	"Song ID"
//	@Param			request	body	SongRequest	true	"Song"
//	@Success		200	{object}	deck.Song
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/songs/{songID} [patch]
func (e *UpdateSongEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	song, err := songFromRequest(req, r.PathValue("songID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := svcctx.StoreFrom(r.Context()).UpdateSong(r.PathValue("id"), song)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (e *UpdateSongEndpoint) Command(getServerURL func() string) *cobra.Command {
	var title, lyrics, author, melody, category string
	cmd := &cobra.Command{
		Use:   "update-song <presentation-id> <song-id>",
		Short: "Update a song",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp deck.Song
			req := SongRequest{Title: title, Lyrics: lyrics, Author: author, Melody: melody, Category: category}
			path := "/api/presentations/" + args[0] + "/songs/" + args[1]
			if err := client.Patch(cmd.Context(), path, req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Song title")
	cmd.Flags().StringVar(&lyrics, "lyrics", "", "Song lyrics")
	cmd.Flags().StringVar(&author, "author", "", "Author")
	cmd.Flags().StringVar(&melody, "melody", "", "Melody reference")
	cmd.Flags().StringVar(&category, "category", "other", "Liturgical category")
	return cmd
}

// DeleteSongEndpoint handles DELETE /api/presentations/{id}/songs/{songID}.
type DeleteSongEndpoint struct{}

func (e *DeleteSongEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/presentations/{id}/songs/{songID}", e.handler
}

func (e *DeleteSongEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Delete song
//	@Description	Remove a song and any order entries pointing at it
//	@Tags			songs
//	@Produce		json
//	@Param			id		path	string	true	"Presentation ID"
//	@Param			songID	path	string	true	"Song ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/songs/{songID} [delete]
func (e *DeleteSongEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	err := svcctx.StoreFrom(r.Context()).DeleteSong(r.PathValue("id"), r.PathValue("songID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *DeleteSongEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-song <presentation-id> <song-id>",
		Short: "Delete a song",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/presentations/" + args[0] + "/songs/" + args[1]
			if err := client.Delete(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}
