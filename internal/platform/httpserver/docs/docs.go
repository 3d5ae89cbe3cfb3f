// Package docs holds the Swagger 2.0 document served under /swagger/. It is
// maintained by hand in the layout swag emits; docs_test.go checks it against
// the routes the server registers.
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
        "/api/moderation/v1/audit-logs": {
            "get": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Admin id",
                        "in": "query",
                        "name": "admin_id",
                        "type": "string"
                    },
                    {
                        "description": "FLAG, COPYRIGHT_CLAIM or STRIKE",
                        "in": "query",
                        "name": "target_type",
                        "type": "string"
                    },
                    {
                        "description": "Target id",
                        "in": "query",
                        "name": "target_id",
                        "type": "string"
                    },
                    {
                        "description": "Page size (max 100)",
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    },
                    {
                        "description": "Offset",
                        "in": "query",
                        "name": "offset",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ListAuditLogsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List audit log entries",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/channels/{channel_id}/standing": {
            "get": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Channel id",
                        "in": "path",
                        "name": "channel_id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ChannelStandingResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Effective strike standing of a channel",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/claims": {
            "get": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Claim status",
                        "in": "query",
                        "name": "status",
                        "type": "string"
                    },
                    {
                        "description": "Video id",
                        "in": "query",
                        "name": "video_id",
                        "type": "string"
                    },
                    {
                        "description": "Page size (max 100)",
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    },
                    {
                        "description": "Offset",
                        "in": "query",
                        "name": "offset",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ListClaimsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List copyright claims",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/claims/{claim_id}/appeal": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Caller id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Claim id",
                        "in": "path",
                        "name": "claim_id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ClaimResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Appeal an upheld claim",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/claims/{claim_id}/block": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replay key",
                        "in": "header",
                        "name": "Idempotency-Key",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Claim id",
                        "in": "path",
                        "name": "claim_id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Notes",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.BlockClaimedVideoRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ClaimResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Provisionally block a claimed video",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/claims/{claim_id}/counter-notice": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Caller id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Claim id",
                        "in": "path",
                        "name": "claim_id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Counter notice",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.CounterNoticeRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ClaimResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "File a counter notice",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/claims/{claim_id}/decision": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replay key",
                        "in": "header",
                        "name": "Idempotency-Key",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Claim id",
                        "in": "path",
                        "name": "claim_id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Decision",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.DecideClaimRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ClaimDecisionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Decide a copyright claim",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/flags": {
            "get": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Flag status",
                        "in": "query",
                        "name": "status",
                        "type": "string"
                    },
                    {
                        "description": "VIDEO or COMMENT",
                        "in": "query",
                        "name": "target_type",
                        "type": "string"
                    },
                    {
                        "description": "Page size (max 100)",
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    },
                    {
                        "description": "Offset",
                        "in": "query",
                        "name": "offset",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ListFlagsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List flags",
                "tags": [
                    "moderation"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Caller id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Flag target and reason",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.SubmitFlagRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/http.FlagResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Report a video or comment",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/flags/{flag_id}/decision": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Applies dismiss, warn, age_restrict, remove or remove_with_strike to an open flag.",
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replay key",
                        "in": "header",
                        "name": "Idempotency-Key",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Flag id",
                        "in": "path",
                        "name": "flag_id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Decision",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.DecideFlagRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.FlagDecisionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Decide a flag",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/flags/{flag_id}/review": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replay key",
                        "in": "header",
                        "name": "Idempotency-Key",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Flag id",
                        "in": "path",
                        "name": "flag_id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.FlagResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Start reviewing a flag",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/strikes": {
            "get": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "User id",
                        "in": "query",
                        "name": "user_id",
                        "type": "string"
                    },
                    {
                        "description": "Channel id",
                        "in": "query",
                        "name": "channel_id",
                        "type": "string"
                    },
                    {
                        "description": "Only effective strikes",
                        "in": "query",
                        "name": "active",
                        "type": "boolean"
                    },
                    {
                        "description": "Page size (max 100)",
                        "in": "query",
                        "name": "limit",
                        "type": "integer"
                    },
                    {
                        "description": "Offset",
                        "in": "query",
                        "name": "offset",
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ListStrikesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List strikes",
                "tags": [
                    "moderation"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replay key",
                        "in": "header",
                        "name": "Idempotency-Key",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Strike",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.IssueStrikeRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/http.StrikeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Issue a strike",
                "tags": [
                    "moderation"
                ]
            }
        },
        "/api/moderation/v1/strikes/{strike_id}": {
            "delete": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replay key",
                        "in": "header",
                        "name": "Idempotency-Key",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Strike id",
                        "in": "path",
                        "name": "strike_id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.StrikeResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Purge a strike",
                "tags": [
                    "moderation"
                ]
            },
            "patch": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Admin id",
                        "in": "header",
                        "name": "X-User-Id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Must be ADMIN",
                        "in": "header",
                        "name": "X-User-Role",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Replay key",
                        "in": "header",
                        "name": "Idempotency-Key",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Strike id",
                        "in": "path",
                        "name": "strike_id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Update",
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.UpdateStrikeRequest"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.StrikeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Remove, expire or re-grade a strike",
                "tags": [
                    "moderation"
                ]
            }
        }
    },
    "definitions": {
        "http.AuditLogDTO": {
            "properties": {
                "action": {
                    "type": "string"
                },
                "admin_id": {
                    "type": "string"
                },
                "audit_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "new_value": {
                    "type": "object"
                },
                "notes": {
                    "type": "string"
                },
                "old_value": {
                    "type": "object"
                },
                "target_id": {
                    "type": "string"
                },
                "target_type": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.BlockClaimedVideoRequest": {
            "properties": {
                "notes": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.ChannelStandingResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "active_strikes": {
                            "items": {
                                "$ref": "#/definitions/http.StrikeDTO"
                            },
                            "type": "array"
                        },
                        "channel_id": {
                            "type": "string"
                        },
                        "channel_status": {
                            "type": "string"
                        },
                        "copyright_strikes": {
                            "type": "integer"
                        },
                        "evaluated_at": {
                            "type": "string"
                        },
                        "owner_id": {
                            "type": "string"
                        },
                        "strikes": {
                            "type": "integer"
                        },
                        "suspensions": {
                            "type": "integer"
                        },
                        "terminations": {
                            "type": "integer"
                        },
                        "warnings": {
                            "type": "integer"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.ClaimDTO": {
            "properties": {
                "claim_id": {
                    "type": "string"
                },
                "claim_type": {
                    "type": "string"
                },
                "counter_notice": {
                    "type": "string"
                },
                "counter_noticed_at": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "decided_at": {
                    "type": "string"
                },
                "decided_by": {
                    "type": "string"
                },
                "decision": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "rights_holder_id": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "video_blocked": {
                    "type": "boolean"
                },
                "video_id": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.ClaimDecisionResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "active_strikes": {
                            "type": "integer"
                        },
                        "channel_status": {
                            "type": "string"
                        },
                        "claim": {
                            "$ref": "#/definitions/http.ClaimDTO"
                        },
                        "message": {
                            "type": "string"
                        },
                        "strike": {
                            "$ref": "#/definitions/http.StrikeDTO"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.ClaimResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "claim": {
                            "$ref": "#/definitions/http.ClaimDTO"
                        },
                        "message": {
                            "type": "string"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.CounterNoticeRequest": {
            "properties": {
                "counter_notice": {
                    "type": "string"
                }
            },
            "required": [
                "counter_notice"
            ],
            "type": "object"
        },
        "http.DecideClaimRequest": {
            "properties": {
                "action": {
                    "type": "string"
                },
                "apply_strike": {
                    "type": "boolean"
                },
                "decision": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            },
            "required": [
                "decision"
            ],
            "type": "object"
        },
        "http.DecideFlagRequest": {
            "properties": {
                "decision": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "strike_severity": {
                    "type": "string"
                },
                "strike_type": {
                    "type": "string"
                }
            },
            "required": [
                "decision"
            ],
            "type": "object"
        },
        "http.ErrorBody": {
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "additionalProperties": true,
                    "type": "object"
                },
                "message": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.ErrorEnvelope": {
            "properties": {
                "error": {
                    "$ref": "#/definitions/http.ErrorBody"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.FlagDTO": {
            "properties": {
                "comment": {
                    "type": "string"
                },
                "comment_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "decision": {
                    "type": "string"
                },
                "flag_id": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "reporter_id": {
                    "type": "string"
                },
                "reviewed_at": {
                    "type": "string"
                },
                "reviewed_by": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "target_type": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "video_id": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.FlagDecisionResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "active_strikes": {
                            "type": "integer"
                        },
                        "channel_status": {
                            "type": "string"
                        },
                        "flag": {
                            "$ref": "#/definitions/http.FlagDTO"
                        },
                        "message": {
                            "type": "string"
                        },
                        "strike": {
                            "$ref": "#/definitions/http.StrikeDTO"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.FlagResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "flag": {
                            "$ref": "#/definitions/http.FlagDTO"
                        },
                        "message": {
                            "type": "string"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.IssueStrikeRequest": {
            "properties": {
                "channel_id": {
                    "type": "string"
                },
                "expires_in_days": {
                    "type": "integer"
                },
                "reason": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "video_id": {
                    "type": "string"
                }
            },
            "required": [
                "user_id",
                "type",
                "severity",
                "reason"
            ],
            "type": "object"
        },
        "http.ListAuditLogsResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "items": {
                            "items": {
                                "$ref": "#/definitions/http.AuditLogDTO"
                            },
                            "type": "array"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.ListClaimsResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "items": {
                            "items": {
                                "$ref": "#/definitions/http.ClaimDTO"
                            },
                            "type": "array"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.ListFlagsResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "items": {
                            "items": {
                                "$ref": "#/definitions/http.FlagDTO"
                            },
                            "type": "array"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.ListStrikesResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "items": {
                            "items": {
                                "$ref": "#/definitions/http.StrikeDTO"
                            },
                            "type": "array"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.StrikeDTO": {
            "properties": {
                "active": {
                    "type": "boolean"
                },
                "channel_id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "issued_by": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "strike_id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "video_id": {
                    "type": "string"
                }
            },
            "type": "object"
        },
        "http.StrikeResponse": {
            "properties": {
                "data": {
                    "properties": {
                        "active_strikes": {
                            "type": "integer"
                        },
                        "channel_status": {
                            "type": "string"
                        },
                        "message": {
                            "type": "string"
                        },
                        "strike": {
                            "$ref": "#/definitions/http.StrikeDTO"
                        }
                    },
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "warnings": {
                    "items": {
                        "type": "string"
                    },
                    "type": "array"
                }
            },
            "type": "object"
        },
        "http.SubmitFlagRequest": {
            "properties": {
                "comment": {
                    "type": "string"
                },
                "comment_id": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                },
                "target_type": {
                    "type": "string"
                },
                "video_id": {
                    "type": "string"
                }
            },
            "required": [
                "target_type",
                "reason"
            ],
            "type": "object"
        },
        "http.UpdateStrikeRequest": {
            "properties": {
                "action": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                }
            },
            "required": [
                "action"
            ],
            "type": "object"
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "vidstream moderation API",
	Description:      "Flags, copyright claims, strikes and channel enforcement.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
