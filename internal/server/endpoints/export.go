package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/internal/export"
	"github.com/liturgica/lectern/internal/svcctx"
)

// ExportRequest is the body for starting an export.
type ExportRequest struct {
	Enhance  bool   `json:"enhance"`
	Provider string `json:"provider,omitempty"`
}

// StartExportEndpoint handles POST /api/presentations/{id}/export.
type StartExportEndpoint struct{}

func (e *StartExportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/presentations/{id}/export", e.handler
}

func (e *StartExportEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Start export
//	@Description	Render the presentation to a .pptx file in the background
//	@Tags			export
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Presentation ID"
//	@Param			request	body	ExportRequest	true	"Export options"
//	@Success		202	{object}	export.Record
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/presentations/{id}/export [post]
func (e *StartExportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	p, err := svcctx.StoreFrom(r.Context()).GetPresentation(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// The job outlives the HTTP request.
	jobCtx := context.WithoutCancel(r.Context())
	rec := svcctx.ExportJobsFrom(r.Context()).Submit(jobCtx, p, export.Options{
		Enhance:  req.Enhance,
		Provider: req.Provider,
	})
	writeJSON(w, http.StatusAccepted, rec)
}

func (e *StartExportEndpoint) Command(getServerURL func() string) *cobra.Command {
	var enhance bool
	var provider, output string
	var wait bool
	cmd := &cobra.Command{
		Use:   "export <presentation-id>",
		Short: "Export a presentation to a .pptx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())

			var rec export.Record
			req := ExportRequest{Enhance: enhance, Provider: provider}
			path := "/api/presentations/" + args[0] + "/export"
			if err := client.Post(cmd.Context(), path, req, &rec); err != nil {
				return err
			}
			if !wait {
				return api.Output(rec)
			}

			rec, err := waitForExport(cmd.Context(), client, rec.ID)
			if err != nil {
				return err
			}
			if output == "" {
				output = rec.Filename
			}
			if err := client.Download(cmd.Context(), "/api/exports/"+rec.ID+"/download", output); err != nil {
				return err
			}
			fmt.Printf("Exported %d slides to %s\n", rec.SlideCount, output)
			for _, warning := range rec.Warnings {
				fmt.Println("warning:", warning)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&enhance, "enhance", false, "Generate background images for slides")
	cmd.Flags().StringVar(&provider, "provider", "", "Image provider to use (default from server config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Local path for the downloaded file")
	cmd.Flags().BoolVar(&wait, "wait", true, "Wait for the export and download the file")
	return cmd
}

func waitForExport(ctx context.Context, client *api.Client, jobID string) (export.Record, error) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		var rec export.Record
		if err := client.Get(ctx, "/api/exports/"+jobID, &rec); err != nil {
			return rec, err
		}
		switch rec.Status {
		case export.StatusCompleted:
			return rec, nil
		case export.StatusFailed:
			return rec, fmt.Errorf("export failed: %s", rec.Error)
		}

		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ListExportsResponse is the response for listing export jobs.
type ListExportsResponse struct {
	Exports []*export.Record `json:"exports"`
	Count   int              `json:"count"`
}

// ListExportsEndpoint handles GET /api/exports.
type ListExportsEndpoint struct{}

func (e *ListExportsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/exports", e.handler
}

func (e *ListExportsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List export jobs
//	@Tags			export
//	@Produce		json
//	@Success		200	{object}	ListExportsResponse
//	@Router			/api/exports [get]
func (e *ListExportsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	records := svcctx.ExportJobsFrom(r.Context()).List()
	writeJSON(w, http.StatusOK, ListExportsResponse{Exports: records, Count: len(records)})
}

func (e *ListExportsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "exports",
		Short: "List export jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListExportsResponse
			if err := client.Get(cmd.Context(), "/api/exports", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetExportEndpoint handles GET /api/exports/{id}.
type GetExportEndpoint struct{}

func (e *GetExportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/exports/{id}", e.handler
}

func (e *GetExportEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get export job
//	@Tags			export
//	@Produce		json
//	@Param			id	path	string	true	"Export job ID"
//	@Success		200	{object}	export.Record
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/exports/{id} [get]
func (e *GetExportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	rec, err := svcctx.ExportJobsFrom(r.Context()).Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (e *GetExportEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "export-status <job-id>",
		Short: "Show the status of an export job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var rec export.Record
			if err := client.Get(cmd.Context(), "/api/exports/"+args[0], &rec); err != nil {
				return err
			}
			return api.Output(rec)
		},
	}
}

// DownloadExportEndpoint handles GET /api/exports/{id}/download.
type DownloadExportEndpoint struct{}

func (e *DownloadExportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/exports/{id}/download", e.handler
}

func (e *DownloadExportEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Download export
//	@Description	Download the finished .pptx file for a completed export job
//	@Tags			export
//	@Produce		application/vnd.openxmlformats-officedocument.presentationml.presentation
//	@Param			id	path	string	true	"Export job ID"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/api/exports/{id}/download [get]
func (e *DownloadExportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	rec, err := svcctx.ExportJobsFrom(r.Context()).Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if rec.Status != export.StatusCompleted {
		writeError(w, http.StatusConflict, fmt.Sprintf("export job is %s, not completed", rec.Status))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Filename))
	http.ServeFile(w, r, rec.Path)
}

func (e *DownloadExportEndpoint) Command(getServerURL func() string) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "download <job-id>",
		Short: "Download the file for a completed export job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())

			var rec export.Record
			if err := client.Get(cmd.Context(), "/api/exports/"+args[0], &rec); err != nil {
				return err
			}
			if output == "" {
				output = rec.Filename
			}
			if err := client.Download(cmd.Context(), "/api/exports/"+args[0]+"/download", output); err != nil {
				return err
			}
			fmt.Println("Saved to", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Local path for the downloaded file")
	return cmd
}
