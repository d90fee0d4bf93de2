package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Transfer Appeal API",
        "description": "Administrative dashboard backend for transfer appeal workflows",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login, refresh, session management"},
        {"name": "DocumentReview", "description": "Request list and per-reason document review"},
        {"name": "SourceOpinion", "description": "Source opinion dialog and submission"},
        {"name": "Reasons", "description": "Transfer reasons and clause conditions"},
        {"name": "Personnel", "description": "Personnel search and ranking stats"},
        {"name": "TransferSpecs", "description": "Applicant form records and filter helpers"},
        {"name": "Exports", "description": "Asynchronous spreadsheet exports"},
        {"name": "Reports", "description": "Smart-school aggregated statistics"},
        {"name": "TransferRequests", "description": "School transfer request lists"},
        {"name": "Users", "description": "Dashboard user administration"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user info",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/document-review": {
            "get": {
                "tags": ["DocumentReview"],
                "summary": "List transfer appeal requests",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "employmentField", "in": "query", "type": "string"},
                    {"name": "gender", "in": "query", "type": "string"},
                    {"name": "districtCode", "in": "query", "type": "string"},
                    {"name": "sortBy", "in": "query", "type": "string"},
                    {"name": "sortOrder", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["DocumentReview"],
                "summary": "Save per-reason review decisions",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role not allowed to save reviews"},
                    "412": {"description": "Request status does not allow review"}
                }
            }
        },
        "/document-review/{id}": {
            "get": {
                "tags": ["DocumentReview"],
                "summary": "Load one request with its review draft",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/approval-reasons": {
            "get": {
                "tags": ["Reasons"],
                "summary": "List reasons usable on the approval path",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/transfer-settings/transfer-reasons": {
            "get": {
                "tags": ["Reasons"],
                "summary": "List the configured transfer reasons",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/clause-conditions/by-clauses": {
            "post": {
                "tags": ["Reasons"],
                "summary": "Resolve clause conditions for selected reasons",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConditionsByClausesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/personnel-list": {
            "get": {
                "tags": ["Personnel"],
                "summary": "Search personnel records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "personnelCode", "in": "query", "type": "string"},
                    {"name": "districtCode", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/personnel-stats": {
            "get": {
                "tags": ["Personnel"],
                "summary": "Ranking statistics for one personnel record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "personnelCode", "in": "query", "required": true, "type": "string"},
                    {"name": "districtCode", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/source-opinion/context": {
            "get": {
                "tags": ["SourceOpinion"],
                "summary": "Assemble the source opinion dialog payload",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "personnelCode", "in": "query", "required": true, "type": "string"},
                    {"name": "action", "in": "query", "required": true, "type": "string", "enum": ["approve", "reject"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/source-opinion": {
            "post": {
                "tags": ["SourceOpinion"],
                "summary": "Submit the source opinion",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitOpinionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role not allowed"},
                    "412": {"description": "Request status does not allow opinion"}
                }
            }
        },
        "/transfer-applicant-specs": {
            "get": {
                "tags": ["TransferSpecs"],
                "summary": "Load one applicant spec by national ID",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "nationalId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/transfer-applicant-specs/helpers": {
            "get": {
                "tags": ["TransferSpecs"],
                "summary": "Distinct filter values for the request list",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/transfer-appeals": {
            "post": {
                "tags": ["Exports"],
                "summary": "Start an export of the filtered request list",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/exports/{id}/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export via signed token",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/smart-school/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "Aggregated request statistics",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "district", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/smart-school/reports/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Start a smart-school report export",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/transfer-requests": {
            "get": {
                "tags": ["TransferRequests"],
                "summary": "List transfer requests by direction",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "type", "in": "query", "required": true, "type": "string", "enum": ["in", "out"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/transfer-requests/{id}/respond": {
            "post": {
                "tags": ["TransferRequests"],
                "summary": "Decide a pending transfer request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RespondTransferRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already decided"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create a user",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "put": {
                "tags": ["Users"],
                "summary": "Update a user",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Deactivate a user",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SaveReviewRequest": {
            "type": "object",
            "required": ["requestId", "reviews"],
            "properties": {
                "requestId": {"type": "string"},
                "reviews": {"type": "object"}
            }
        },
        "ConditionsByClausesRequest": {
            "type": "object",
            "required": ["selectedClauses", "conditionType"],
            "properties": {
                "selectedClauses": {"type": "array", "items": {"type": "string"}},
                "conditionType": {"type": "string", "enum": ["approval", "rejection"]}
            }
        },
        "SubmitOpinionRequest": {
            "type": "object",
            "required": ["personnelCode", "action"],
            "properties": {
                "personnelCode": {"type": "string"},
                "action": {"type": "string", "enum": ["approve", "reject"]},
                "reasonIds": {"type": "array", "items": {"type": "string"}},
                "comment": {"type": "string"},
                "sourceOpinionTransferType": {"type": "string"},
                "acceptedConditionIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CreateExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["xlsx", "csv"]},
                "search": {"type": "string"},
                "status": {"type": "string"},
                "employmentField": {"type": "string"},
                "gender": {"type": "string"},
                "districtCode": {"type": "string"},
                "sortBy": {"type": "string"},
                "sortOrder": {"type": "string"}
            }
        },
        "RespondTransferRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["approve", "reject"]},
                "responseDescription": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["email", "password", "full_name", "role"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string"},
                "district_code": {"type": "string"}
            }
        },
        "UpdateUserRequest": {
            "type": "object",
            "required": ["email", "full_name", "role"],
            "properties": {
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string"},
                "district_code": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
