// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/auth/token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Generate a JWT bearer token",
                "parameters": [
                    {"description": "username and secret", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token successfully generated", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "400": {"description": "Invalid request parameters", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Secret rejected", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/{collection}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Records"],
                "summary": "List records",
                "parameters": [
                    {"enum": ["customers", "vendors", "inventory", "orders"], "type": "string", "name": "collection", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Records", "schema": {"type": "array", "items": {"type": "object"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Records"],
                "summary": "Add a record",
                "parameters": [
                    {"enum": ["customers", "vendors", "inventory", "orders"], "type": "string", "name": "collection", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created record", "schema": {"type": "object"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Caller may not write", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Key already exists", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/{collection}/{key}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Records"],
                "summary": "Get one record",
                "parameters": [
                    {"type": "string", "name": "collection", "in": "path", "required": true},
                    {"type": "string", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Record", "schema": {"type": "object"}},
                    "404": {"description": "Record not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Records"],
                "summary": "Replace a record",
                "parameters": [
                    {"type": "string", "name": "collection", "in": "path", "required": true},
                    {"type": "string", "name": "key", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Updated record", "schema": {"type": "object"}},
                    "400": {"description": "Validation failed or key changed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Record not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Records"],
                "summary": "Delete a record",
                "parameters": [
                    {"type": "string", "name": "collection", "in": "path", "required": true},
                    {"type": "string", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Record not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Business summary",
                "responses": {"200": {"description": "Summary and KPI cards"}}
            }
        },
        "/api/v1/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Identity"],
                "summary": "Caller profile",
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/identity.Profile"}},
                    "404": {"description": "No profile saved yet", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Identity"],
                "summary": "Save caller profile",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "Saved profile", "schema": {"$ref": "#/definitions/identity.Profile"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Anonymous caller", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/me/role": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Identity"],
                "summary": "Caller role",
                "responses": {"200": {"description": "Role", "schema": {"$ref": "#/definitions/dto.RoleResponse"}}}
            }
        },
        "/api/v1/users/{principal}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Identity"],
                "summary": "Read another user's profile (admin only)",
                "parameters": [{"type": "string", "name": "principal", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/identity.Profile"}},
                    "403": {"description": "Caller is not an admin", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/{principal}/role": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["Identity"],
                "summary": "Assign a role (admin only)",
                "parameters": [
                    {"type": "string", "name": "principal", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RoleRequest"}}
                ],
                "responses": {
                    "204": {"description": "Role assigned"},
                    "403": {"description": "Caller is not an admin", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "field": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/dto.ErrorDetail"}}
        },
        "dto.TokenRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "secret": {"type": "string"}}
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expiresAt": {"type": "integer"}}
        },
        "dto.ProfileRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "dto.RoleRequest": {
            "type": "object",
            "properties": {"role": {"type": "string", "enum": ["guest", "user", "admin"]}}
        },
        "dto.RoleResponse": {
            "type": "object",
            "properties": {
                "principal": {"type": "string"},
                "role": {"type": "string", "enum": ["guest", "user", "admin"]},
                "isAdmin": {"type": "boolean"}
            }
        },
        "identity.Profile": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["guest", "user", "admin"]}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Scaffold Rental API",
	Description:      "Record service for customers, vendors, scaffolding inventory and rental orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
