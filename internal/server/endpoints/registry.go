package endpoints

import (
	"github.com/liturgica/lectern/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Presentation endpoints
		&CreatePresentationEndpoint{},
		&ListPresentationsEndpoint{},
		&GetPresentationEndpoint{},
		&UpdatePresentationEndpoint{},
		&DeletePresentationEndpoint{},
		&ImportPresentationEndpoint{},

		// Reading endpoints
		&AddReadingEndpoint{},
		&UpdateReadingEndpoint{},
		&DeleteReadingEndpoint{},
		&FetchReadingsEndpoint{},

		// Song endpoints
		&AddSongEndpoint{},
		&UpdateSongEndpoint{},
		&DeleteSongEndpoint{},
		&LibrarySongsEndpoint{},

		// Order and preview endpoints
		&SetOrderEndpoint{},
		&SlidesEndpoint{},

		// Export endpoints
		&StartExportEndpoint{},
		&ListExportsEndpoint{},
		&GetExportEndpoint{},
		&DownloadExportEndpoint{},

		// Swagger/OpenAPI endpoint
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
	}
}
