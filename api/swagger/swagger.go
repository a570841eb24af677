package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "html2url",
        "description": "Stores HTML payloads under temporary URLs and renders PDF versions with Gotenberg.",
        "version": "1.3.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "X-API-Key"
        }
    },
    "tags": [
        {"name": "Upload", "description": "HTML ingestion"},
        {"name": "Files", "description": "Artifact retrieval"},
        {"name": "System", "description": "Health, stats and metadata"}
    ],
    "paths": {
        "/upload": {
            "post": {
                "tags": ["Upload"],
                "summary": "Upload HTML content",
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["text/html"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "string"}, "description": "Raw HTML to store"}
                ],
                "responses": {
                    "200": {"description": "Upload accepted", "schema": {"$ref": "#/definitions/UploadResponse"}},
                    "400": {"description": "Empty request body", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Invalid or missing API key", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "413": {"description": "Payload too large", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/files/{name}": {
            "get": {
                "tags": ["Files"],
                "summary": "Fetch a stored HTML or PDF artifact",
                "parameters": [
                    {"name": "name", "in": "path", "type": "string", "required": true, "description": "Artifact filename, e.g. a3f2c1b9e4d7.html"},
                    {"name": "If-None-Match", "in": "header", "type": "string", "description": "Previously returned ETag"}
                ],
                "responses": {
                    "200": {"description": "Artifact content"},
                    "304": {"description": "Not modified"},
                    "400": {"description": "Invalid filename", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service health", "schema": {"$ref": "#/definitions/HealthResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["System"],
                "summary": "Store statistics",
                "responses": {
                    "200": {"description": "Current store contents", "schema": {"$ref": "#/definitions/StatsResponse"}}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["System"],
                "summary": "Service metadata",
                "responses": {
                    "200": {"description": "Service and endpoint overview"}
                }
            }
        }
    },
    "definitions": {
        "UploadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "id": {"type": "string", "example": "a3f2c1b9e4d7"},
                "filename": {"type": "string", "example": "a3f2c1b9e4d7.html"},
                "url": {"type": "string", "example": "http://localhost:8080/files/a3f2c1b9e4d7.html"},
                "pdf_filename": {"type": "string", "example": "a3f2c1b9e4d7.pdf"},
                "pdf_url": {"type": "string", "example": "http://localhost:8080/files/a3f2c1b9e4d7.pdf"},
                "pdf_generated": {"type": "boolean", "example": true}
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "pdf_enabled": {"type": "boolean", "example": true},
                "gotenberg_connected": {"type": "boolean", "example": true}
            }
        },
        "StatsResponse": {
            "type": "object",
            "properties": {
                "total_files": {"type": "integer", "example": 10},
                "html_files": {"type": "integer", "example": 5},
                "pdf_files": {"type": "integer", "example": 5},
                "total_size_mb": {"type": "number", "example": 0.12},
                "max_age_hours": {"type": "number", "example": 24},
                "max_file_size_mb": {"type": "number", "example": 1},
                "api_key_required": {"type": "boolean", "example": false},
                "pdf_enabled": {"type": "boolean", "example": true},
                "files": {"type": "array", "items": {"$ref": "#/definitions/FileStat"}}
            }
        },
        "FileStat": {
            "type": "object",
            "properties": {
                "filename": {"type": "string", "example": "a3f2c1b9e4d7.html"},
                "type": {"type": "string", "example": "html"},
                "size_kb": {"type": "number", "example": 1.21},
                "age_hours": {"type": "number", "example": 2.5},
                "remaining_hours": {"type": "number", "example": 21.5}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "file not found"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
