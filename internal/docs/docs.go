// Package docs registra la definición OpenAPI servida en /swagger/*.
// Regenerar con `swag init -g cmd/api/main.go -o internal/docs` al cambiar
// las anotaciones de los handlers.
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
    "paths": {
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mis mascotas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "302": {"description": "sin identidad => sign-in", "schema": {"$ref": "#/definitions/httpx.Flash"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {"description": "Datos de la mascota; fechas en YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.petRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.ValidationResponse"}}
                }
            }
        },
        "/pets/new": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Formulario de nueva mascota",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}}}
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Perfil de mascota",
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "no es el dueño => /pets con alert", "schema": {"$ref": "#/definitions/httpx.Flash"}},
                    "404": {"description": "pet not found", "schema": {"$ref": "#/definitions/httpx.Flash"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Actualizar mascota (PATCH)",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"description": "Campos a cambiar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.petRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.ValidationResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Borrar mascota",
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pets/{petID}/edit": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Formulario de edición",
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}}}
            }
        },
        "/pets/{petID}/notes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Listar notas de una mascota",
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/notes.noteResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Agregar nota",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"description": "Nota; note_date en formato YYYY-MM-DD", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notes.createNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/notes.noteResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/httpx.ValidationResponse"}}
                }
            }
        },
        "/pets/{petID}/notes/{noteID}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["notes"],
                "summary": "Borrar nota",
                "parameters": [
                    {"type": "string", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "name": "noteID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.Flash"}},
                    "404": {"description": "pet not found / note not found", "schema": {"$ref": "#/definitions/httpx.Flash"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.Flash": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "notice": {"type": "string"},
                "alert": {"type": "string"},
                "redirect_to": {"type": "string"}
            }
        },
        "httpx.ValidationResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "messages": {"type": "array", "items": {"type": "string"}},
                "alert": {"type": "string"},
                "current": {}
            }
        },
        "pets.petRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "sex": {"type": "string"},
                "color_markings": {"type": "string"},
                "microchip_number": {"type": "string"},
                "neutered": {"type": "boolean"},
                "birth_date": {"type": "string"},
                "adoption_date": {"type": "string"}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_user_id": {"type": "string"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "sex": {"type": "string"},
                "color_markings": {"type": "string"},
                "microchip_number": {"type": "string"},
                "neutered": {"type": "boolean"},
                "birth_date": {"type": "string"},
                "adoption_date": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "notice": {"type": "string"}
            }
        },
        "notes.createNoteRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "note_date": {"type": "string"}
            }
        },
        "notes.noteResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "pet_id": {"type": "string"},
                "content": {"type": "string"},
                "note_date": {"type": "string"},
                "created_at": {"type": "string"},
                "notice": {"type": "string"},
                "redirect_to": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Notes API",
	Description:      "Mascotas y notas por dueño. Solo el dueño ve o modifica sus mascotas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
