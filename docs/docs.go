// Package docs registra la especificación OpenAPI servida en /swagger/doc.json.
// Se regenera con `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/signup": {
            "post": {"tags": ["auth"], "summary": "Registrar usuario", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "validación o usuario/email duplicado"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Iniciar sesión", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "credenciales inválidas"}}}
        },
        "/baby/add": {
            "post": {"tags": ["babies"], "summary": "Crear perfil de bebé", "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/baby/my-babies": {
            "get": {"tags": ["babies"], "summary": "Mis bebés", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/baby/{id}": {
            "get": {"tags": ["babies"], "summary": "Perfil de un bebé", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["babies"], "summary": "Reemplazar perfil de bebé", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["babies"], "summary": "Eliminar bebé", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/baby/babyFeed/{babyId}": {
            "get": {"tags": ["feedings"], "summary": "Tomas de un bebé", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "babyId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/baby/{id}/cry-analysis": {
            "get": {"tags": ["cry-analysis"], "summary": "Historial de análisis", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["cry-analysis"], "summary": "Analizar llanto", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/feeding/add": {
            "post": {"tags": ["feedings"], "summary": "Registrar toma", "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/feeding/{babyId}": {
            "get": {"tags": ["feedings"], "summary": "Tomas de un bebé", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "name": "babyId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/feeding/{babyId}/today": {
            "get": {"tags": ["feedings"], "summary": "Resumen del día", "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "babyId", "in": "path", "required": true},
                    {"type": "string", "name": "date", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/feeding/{babyId}/{entryId}": {
            "delete": {"tags": ["feedings"], "summary": "Eliminar toma", "security": [{"BearerAuth": []}],
                "parameters": [
                    {"type": "string", "name": "babyId", "in": "path", "required": true},
                    {"type": "string", "name": "entryId", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/monitors/{kind}": {
            "get": {"tags": ["monitors"], "summary": "Estado del monitor", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "enum": ["object", "emotion"], "name": "kind", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "unknown monitor kind"}}}
        },
        "/monitors/{kind}/start": {
            "post": {"tags": ["monitors"], "summary": "Iniciar monitor", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "enum": ["object", "emotion"], "name": "kind", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/monitors/{kind}/stop": {
            "post": {"tags": ["monitors"], "summary": "Detener monitor", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "enum": ["object", "emotion"], "name": "kind", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/monitors/{kind}/emergency": {
            "post": {"tags": ["monitors"], "summary": "Acción de emergencia (simulada)", "security": [{"BearerAuth": []}],
                "parameters": [{"type": "string", "enum": ["object", "emotion"], "name": "kind", "in": "path", "required": true}],
                "responses": {"202": {"description": "Accepted"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "BabySafety API",
	Description:      "Perfiles de bebés, tomas, monitores simulados y análisis de llanto.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
