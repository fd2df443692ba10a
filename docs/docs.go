// Package docs содержит OpenAPI-описание HTTP API для /swagger.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
