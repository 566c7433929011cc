// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/api/v1/auth/admin": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "Admin password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.adminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.tokenResponse"}},
                    "400": {"description": "invalid body", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "invalid credentials", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/candidates": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Add a candidate",
                "parameters": [
                    {"description": "Candidate", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.addCandidateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/candidate.Candidate"}},
                    "400": {"description": "blank name", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "retries exhausted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "store unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Destructive. A vote racing the reset is rejected rather than applied to the empty ledger.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Reset all votes and candidates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/admin.Tally"}},
                    "401": {"description": "unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "store unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/tally": {
            "get": {
                "produces": ["application/json"],
                "tags": ["votes"],
                "summary": "Current tally",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/admin.Tally"}},
                    "503": {"description": "store unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/tally/stream": {
            "get": {
                "description": "Server-sent events; one \"tally\" event per new ledger version seen by the poller.",
                "produces": ["text/event-stream"],
                "tags": ["votes"],
                "summary": "Live tally stream",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/voters/{voterID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["votes"],
                "summary": "Has a voter voted",
                "parameters": [
                    {"type": "string", "description": "Voter ID", "name": "voterID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.voterStatusResponse"}},
                    "400": {"description": "blank voter id", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "store unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/votes": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["votes"],
                "summary": "Cast a vote",
                "parameters": [
                    {"description": "Vote payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.castVoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/admin.Tally"}},
                    "400": {"description": "invalid body or blank ids", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "candidate not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "already voted or retries exhausted", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "429": {"description": "rate limited", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "store unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "admin.Result": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "percentage": {"type": "number"},
                "voteCount": {"type": "integer"}
            }
        },
        "admin.Tally": {
            "type": "object",
            "properties": {
                "candidates": {"type": "array", "items": {"$ref": "#/definitions/admin.Result"}},
                "version": {"type": "integer"},
                "voterCount": {"type": "integer"}
            }
        },
        "api.addCandidateRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "api.adminLoginRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "api.castVoteRequest": {
            "type": "object",
            "properties": {
                "candidateId": {"type": "string"},
                "voterId": {"type": "string"}
            }
        },
        "api.tokenResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "api.voterStatusResponse": {
            "type": "object",
            "properties": {
                "hasVoted": {"type": "boolean"},
                "voterId": {"type": "string"}
            }
        },
        "candidate.Candidate": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "voteCount": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vote Ledger API",
	Description:      "One vote per voter, live tallies, admin-managed candidates",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
