// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CredentialsRequest"}}],
                "responses": {
                    "201": {"description": "data contains the created user", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request, missing_fields, username_taken or weak_password", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Obtain a token pair",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CredentialsRequest"}}],
                "responses": {
                    "200": {"description": "data contains access and refresh tokens", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/token/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh the access token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RefreshRequest"}}],
                "responses": {
                    "200": {"description": "data contains the new access token", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "tags": ["categories"],
                "summary": "List event categories",
                "responses": {"200": {"description": "data contains the categories", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CategoryRequest"}}],
                "responses": {"201": {"description": "data contains the created category", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/categories/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Replace a category",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CategoryRequest"}}
                ],
                "responses": {"200": {"description": "data contains the updated category", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Delete a category",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "no content"}}
            }
        },
        "/slots": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "List time slots",
                "parameters": [
                    {"type": "integer", "name": "category", "in": "query"},
                    {"type": "integer", "name": "week", "in": "query"}
                ],
                "responses": {"200": {"description": "data contains the slots", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Create a time slot",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SlotRequest"}}],
                "responses": {"201": {"description": "data contains the created slot", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/slots/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Get a time slot",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "data contains the slot", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Replace a time slot",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SlotRequest"}}
                ],
                "responses": {"200": {"description": "data contains the updated slot", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Partially update a time slot",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SlotRequest"}}
                ],
                "responses": {"200": {"description": "data contains the updated slot", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Delete a time slot",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "no content"}}
            }
        },
        "/slots/{id}/book": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Book a time slot",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the booked slot", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: already_booked", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/slots/{id}/unsubscribe": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["slots"],
                "summary": "Release a booked time slot",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains the freed slot", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: not_subscribed", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/preferences": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["preferences"],
                "summary": "Get my preferences",
                "responses": {"200": {"description": "data contains the preferences", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["preferences"],
                "summary": "Set my preferred categories",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.PreferenceRequest"}}],
                "responses": {"200": {"description": "data contains the preferences", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["preferences"],
                "summary": "Set my preferred categories",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.PreferenceRequest"}}],
                "responses": {"200": {"description": "data contains the preferences", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/preferences/categories": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["preferences"],
                "summary": "Clear my preferred categories",
                "responses": {"200": {"description": "data contains the emptied preferences", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List user accounts",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "data contains results and pagination", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user account",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "data contains the user", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}}
            }
        }
    },
    "definitions": {
        "controllers.CredentialsRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "controllers.RefreshRequest": {
            "type": "object",
            "properties": {"refresh": {"type": "string"}}
        },
        "controllers.CategoryRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}}
        },
        "controllers.SlotRequest": {
            "type": "object",
            "properties": {
                "category_id": {"type": "integer"},
                "start_time": {"type": "string", "format": "date-time"},
                "end_time": {"type": "string", "format": "date-time"},
                "user_id": {"type": "integer"}
            }
        },
        "controllers.PreferenceRequest": {
            "type": "object",
            "properties": {"categories_ids": {"type": "array", "items": {"type": "integer"}}}
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Event Scheduler API",
	Description:      "Bookable time slots tagged with event categories, user preferences and role-based access.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
