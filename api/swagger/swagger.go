package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Classroom Console API",
        "description": "Weekly classroom schedule service for the management console",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedules", "description": "Weekly schedule grid and exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/schedules/weekly": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Weekly schedule grid",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "description": "Reference date (YYYY-MM-DD, defaults to today)"},
                    {"name": "departmentId", "in": "query", "type": "string"},
                    {"name": "classId", "in": "query", "type": "string"},
                    {"name": "teacherId", "in": "query", "type": "string"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["all", "study", "exam"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/weekly/reference": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Filter dropdown reference lists (admin only)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/v1/schedules/weekly/export": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Export the weekly grid",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/weekly/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open a weekly view session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedules/weekly/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Snapshot of a view session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Session belongs to another user"},
                    "404": {"description": "Unknown session"}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Close a view session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Closed"}
                }
            }
        },
        "/api/v1/schedules/weekly/sessions/{id}/navigate": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Move a view session to another week or filter",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SessionNavigateRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Download a previously exported grid",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "SessionNavigateRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "departmentId": {"type": "string"},
                "classId": {"type": "string"},
                "teacherId": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "WeekDay": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "integer"},
                "date": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "WeekWindow": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string"},
                "days": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/WeekDay"}
                }
            }
        },
        "GridCell": {
            "type": "object",
            "properties": {
                "occurrence": {"type": "object"},
                "label": {"type": "string"},
                "color": {"type": "string"},
                "moved": {"type": "boolean"},
                "note": {"type": "string"}
            }
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "departmentId": {"type": "string"},
                "classId": {"type": "string"},
                "teacherId": {"type": "string"}
            },
            "required": ["date", "format"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
