// Package docs provides generated OpenAPI documentation.
//
// Lectern API
//
//	@title			Lectern API
//	@version		1.0
//	@description	Slide deck editor API for Catholic mass celebrations: presentations, readings, songs and PowerPoint export.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/liturgica/lectern
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8666
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/lectern/serve.go -o ./swagger --parseDependency --parseInternal
