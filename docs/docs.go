// Package docs holds the OpenAPI document served at /swagger. It is
// regenerated from the handler annotations with:
//
//	swag init -g internal/http/router.go -o docs
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
		"/health": {
			"get": {
				"description": "Pings the database. Returns 503 when it is unreachable.",
				"produces": [
					"application/json"
				],
				"tags": [
					"System"
				],
				"summary": "Service health",
				"operationId": "health",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.HealthResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handlers.HealthResponse"
						}
					}
				}
			}
		},
		"/api/inquiries": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Inquiries"
				],
				"summary": "Submit the contact form",
				"operationId": "createInquiry",
				"parameters": [
					{
						"description": "Inquiry",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.InquiryInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "{success, inquiry}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Inquiries"
				],
				"summary": "List inquiries",
				"operationId": "listInquiries",
				"responses": {
					"200": {
						"description": "{success, inquiries}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/inquiries/{id}/responded": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Inquiries"
				],
				"summary": "Mark an inquiry as answered",
				"operationId": "markInquiryResponded",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Inquiry ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "{success, inquiry}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/chat": {
			"post": {
				"description": "Builds a prompt from the training documents and asks the model. Model failures yield a fallback reply with confidence 0.1, never an error.\nSupports idempotency via the Idempotency-Key header (same key → same reply).",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Chat"
				],
				"summary": "Ask the campaign assistant",
				"operationId": "postChat",
				"parameters": [
					{
						"type": "string",
						"description": "Idempotency key for safe retries",
						"name": "Idempotency-Key",
						"in": "header"
					},
					{
						"description": "Question",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.ChatRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.ChatResponse"
						},
						"headers": {
							"Idempotency-Replayed": {
								"type": "string",
								"description": "true when served from a previous request"
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/chat/{sessionId}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Chat"
				],
				"summary": "Chat transcript",
				"operationId": "chatHistory",
				"parameters": [
					{
						"type": "string",
						"description": "Chat session id",
						"name": "sessionId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "{success, history}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/documents": {
			"get": {
				"description": "Returns the static catalog of campaign documents.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Site"
				],
				"summary": "Downloadable documents",
				"operationId": "listDocuments",
				"responses": {
					"200": {
						"description": "{success, documents}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				}
			}
		},
		"/api/cms/content": {
			"get": {
				"description": "Supports weak ETag via If-None-Match and may return 304.",
				"produces": [
					"application/json"
				],
				"tags": [
					"CMS"
				],
				"summary": "List CMS content",
				"operationId": "listContent",
				"parameters": [
					{
						"type": "string",
						"description": "Content type",
						"name": "type",
						"in": "query"
					},
					{
						"type": "string",
						"description": "draft | published | archived",
						"name": "status",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Return 304 if ETag matches",
						"name": "If-None-Match",
						"in": "header"
					}
				],
				"responses": {
					"200": {
						"description": "{success, content}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						},
						"headers": {
							"ETag": {
								"type": "string",
								"description": "Weak ETag for current result"
							}
						}
					},
					"304": {
						"description": "Not Modified",
						"schema": {
							"type": "string"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"CMS"
				],
				"summary": "Create CMS content",
				"operationId": "createContent",
				"parameters": [
					{
						"description": "Content",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.CmsInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "{success, content}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Slug already exists",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/cms/content/{key}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"CMS"
				],
				"summary": "Read CMS content by slug",
				"operationId": "getContent",
				"parameters": [
					{
						"type": "string",
						"description": "Slug",
						"name": "key",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "{success, content}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"CMS"
				],
				"summary": "Update CMS content",
				"operationId": "updateContent",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Content ID",
						"name": "key",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.CmsPatch"
						}
					}
				],
				"responses": {
					"200": {
						"description": "{success, content}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"CMS"
				],
				"summary": "Delete CMS content",
				"operationId": "deleteContent",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Content ID",
						"name": "key",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.SuccessResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/ai-training/docs": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"AI Training"
				],
				"summary": "List active training documents",
				"operationId": "listTrainingDocs",
				"parameters": [
					{
						"type": "string",
						"description": "policy | faq | biography | speech",
						"name": "category",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "{success, docs}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"AI Training"
				],
				"summary": "Add a training document",
				"operationId": "createTrainingDoc",
				"parameters": [
					{
						"description": "Document",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.TrainingDocInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "{success, doc}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/ai-training/docs/{id}": {
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"AI Training"
				],
				"summary": "Update a training document",
				"operationId": "updateTrainingDoc",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Document ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.TrainingDocPatch"
						}
					}
				],
				"responses": {
					"200": {
						"description": "{success, doc}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"AI Training"
				],
				"summary": "Deactivate a training document",
				"operationId": "deleteTrainingDoc",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Document ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.SuccessResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/ai-training/search": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"AI Training"
				],
				"summary": "Substring search over training documents",
				"operationId": "searchTrainingDocs",
				"parameters": [
					{
						"type": "string",
						"description": "Search text",
						"name": "q",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "{success, docs}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/ai-training/similar": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"AI Training"
				],
				"summary": "Rank training documents by overlap with a query",
				"operationId": "similarTrainingDocs",
				"parameters": [
					{
						"type": "string",
						"description": "Query text",
						"name": "q",
						"in": "query",
						"required": true
					},
					{
						"type": "integer",
						"maximum": 20,
						"minimum": 1,
						"default": 5,
						"description": "Maximum results",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "{success, docs}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/ai-training/stats": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"AI Training"
				],
				"summary": "Training document statistics",
				"operationId": "trainingStats",
				"responses": {
					"200": {
						"description": "{success, stats}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				}
			}
		},
		"/api/speech-training": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Speech Training"
				],
				"summary": "List speech samples",
				"operationId": "listSpeech",
				"parameters": [
					{
						"type": "string",
						"description": "Filter by speaker",
						"name": "speaker",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "{success, data}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Speech Training"
				],
				"summary": "Add a speech sample",
				"operationId": "createSpeech",
				"parameters": [
					{
						"description": "Sample",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.SpeechInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "{success, speech}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/speech-training/{id}": {
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Speech Training"
				],
				"summary": "Update a speech sample",
				"operationId": "updateSpeech",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Sample ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.SpeechPatch"
						}
					}
				],
				"responses": {
					"200": {
						"description": "{success, speech}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Speech Training"
				],
				"summary": "Delete a speech sample",
				"operationId": "deleteSpeech",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Sample ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.SuccessResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/speech-training/{id}/validate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Speech Training"
				],
				"summary": "Mark a speech sample as validated",
				"operationId": "validateSpeech",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Sample ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.SuccessResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/citizen-suggestions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "List citizen suggestions",
				"operationId": "listSuggestions",
				"parameters": [
					{
						"type": "string",
						"description": "Category",
						"name": "category",
						"in": "query"
					},
					{
						"type": "string",
						"description": "submitted | under_review | approved | implemented | rejected",
						"name": "status",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "{success, suggestions}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "Submit a citizen suggestion",
				"operationId": "createSuggestion",
				"parameters": [
					{
						"description": "Suggestion",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.SuggestionInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "{success, suggestion}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/citizen-suggestions/search": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "Search citizen suggestions",
				"operationId": "searchSuggestions",
				"parameters": [
					{
						"type": "string",
						"description": "Search text",
						"name": "q",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "{success, suggestions}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/citizen-suggestions/{id}": {
			"get": {
				"description": "Each successful read increments the view count by one.",
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "Read a suggestion",
				"operationId": "getSuggestion",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Suggestion ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "{success, suggestion}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "Update a suggestion",
				"operationId": "updateSuggestion",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Suggestion ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.SuggestionPatch"
						}
					}
				],
				"responses": {
					"200": {
						"description": "{success, suggestion}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "Delete a suggestion and its support",
				"operationId": "deleteSuggestion",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Suggestion ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.SuccessResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/citizen-suggestions/{id}/support": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "List support for a suggestion",
				"operationId": "listSupport",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Suggestion ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "{success, support}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"description": "Records one support row and increments the suggestion's support count atomically.\nWith an Idempotency-Key, retries return the first support row with \u0060Idempotency-Replayed: true\u0060.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "Support a suggestion",
				"operationId": "addSupport",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Suggestion ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Idempotency key for safe retries",
						"name": "Idempotency-Key",
						"in": "header"
					},
					{
						"description": "Supporter",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.SupportInput"
						}
					}
				],
				"responses": {
					"200": {
						"description": "{success, support} (replayed)",
						"schema": {
							"type": "object",
							"additionalProperties": true
						},
						"headers": {
							"Idempotency-Replayed": {
								"type": "string",
								"description": "true when served from a previous request"
							}
						}
					},
					"201": {
						"description": "{success, support}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/suggestion-support/{id}": {
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Citizen Suggestions"
				],
				"summary": "Withdraw a support row",
				"operationId": "removeSupport",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Support ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.SuccessResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/public-feedback": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Public Feedback"
				],
				"summary": "List approved public feedback",
				"operationId": "listFeedback",
				"parameters": [
					{
						"type": "string",
						"description": "Feedback type",
						"name": "type",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Target id",
						"name": "targetId",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "{success, feedback}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				}
			},
			"post": {
				"description": "New feedback always starts in moderation status \"pending\".",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Public Feedback"
				],
				"summary": "Submit feedback",
				"operationId": "createFeedback",
				"parameters": [
					{
						"description": "Feedback",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.FeedbackInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "{success, feedback}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/public-feedback/moderation": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Public Feedback"
				],
				"summary": "Feedback moderation queue",
				"operationId": "moderationQueue",
				"parameters": [
					{
						"type": "string",
						"description": "pending | approved | rejected",
						"name": "status",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "{success, feedback}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/public-feedback/{id}": {
			"put": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Public Feedback"
				],
				"summary": "Edit feedback",
				"operationId": "updateFeedback",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Feedback ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Fields to change",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.FeedbackPatch"
						}
					}
				],
				"responses": {
					"200": {
						"description": "{success, feedback}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Public Feedback"
				],
				"summary": "Delete feedback",
				"operationId": "deleteFeedback",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Feedback ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handlers.SuccessResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/public-feedback/{id}/moderate": {
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Public Feedback"
				],
				"summary": "Record a moderation decision",
				"operationId": "moderateFeedback",
				"parameters": [
					{
						"type": "string",
						"format": "uuid",
						"description": "Feedback ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Decision",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ModerationInput"
						}
					}
				],
				"responses": {
					"200": {
						"description": "{success, feedback}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/implementation-updates": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Implementation Updates"
				],
				"summary": "List implementation progress entries",
				"operationId": "listUpdates",
				"parameters": [
					{
						"type": "string",
						"description": "Only entries for this suggestion",
						"name": "suggestionId",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "{success, updates}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Implementation Updates"
				],
				"summary": "Append an implementation progress entry",
				"operationId": "createUpdate",
				"parameters": [
					{
						"description": "Progress entry",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ImplementationUpdateInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "{success, update}",
						"schema": {
							"type": "object",
							"additionalProperties": true
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					},
					"404": {
						"description": "Referenced suggestion does not exist",
						"schema": {
							"$ref": "#/definitions/handlers.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"domain.ContentStatus": {
			"type": "string",
			"enum": [
				"draft",
				"published",
				"archived"
			],
			"x-enum-varnames": [
				"ContentDraft",
				"ContentPublished",
				"ContentArchived"
			]
		},
		"domain.ModerationStatus": {
			"type": "string",
			"enum": [
				"pending",
				"approved",
				"rejected"
			],
			"x-enum-varnames": [
				"ModerationPending",
				"ModerationApproved",
				"ModerationRejected"
			]
		},
		"domain.Priority": {
			"type": "string",
			"enum": [
				"low",
				"medium",
				"high",
				"urgent"
			],
			"x-enum-varnames": [
				"PriorityLow",
				"PriorityMedium",
				"PriorityHigh",
				"PriorityUrgent"
			]
		},
		"domain.SuggestionStatus": {
			"type": "string",
			"enum": [
				"submitted",
				"under_review",
				"approved",
				"implemented",
				"rejected"
			],
			"x-enum-varnames": [
				"StatusSubmitted",
				"StatusUnderReview",
				"StatusApproved",
				"StatusImplemented",
				"StatusRejected"
			]
		},
		"domain.TrainingCategory": {
			"type": "string",
			"enum": [
				"policy",
				"faq",
				"biography",
				"speech"
			],
			"x-enum-varnames": [
				"CategoryPolicy",
				"CategoryFAQ",
				"CategoryBiography",
				"CategorySpeech"
			]
		},
		"handlers.ChatRequest": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string",
					"example": "진안군 교통 공약이 궁금합니다"
				},
				"sessionId": {
					"type": "string",
					"example": "session_1718000000000_ab12cd"
				}
			}
		},
		"handlers.ChatResponse": {
			"type": "object",
			"properties": {
				"confidence": {
					"type": "number",
					"example": 0.85
				},
				"messageId": {
					"type": "string"
				},
				"response": {
					"type": "string"
				},
				"success": {
					"type": "boolean",
					"example": true
				}
			}
		},
		"handlers.ErrorResponse": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string",
					"example": "not_found"
				},
				"error": {
					"type": "string",
					"example": "suggestion not found"
				},
				"request_id": {
					"type": "string",
					"example": "123e4567-e89b-12d3-a456-426614174000"
				},
				"success": {
					"type": "boolean",
					"example": false
				}
			}
		},
		"handlers.HealthResponse": {
			"type": "object",
			"properties": {
				"database": {
					"type": "string",
					"example": "connected"
				},
				"error": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"example": "healthy"
				},
				"timestamp": {
					"type": "string"
				},
				"version": {
					"type": "string",
					"example": "1.0.0"
				}
			}
		},
		"handlers.SuccessResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean",
					"example": true
				}
			}
		},
		"services.CmsInput": {
			"type": "object",
			"required": [
				"content",
				"slug",
				"title",
				"type"
			],
			"properties": {
				"content": {
					"type": "string"
				},
				"metadata": {
					"type": "object"
				},
				"slug": {
					"type": "string",
					"maxLength": 255
				},
				"status": {
					"$ref": "#/definitions/domain.ContentStatus"
				},
				"title": {
					"type": "string",
					"maxLength": 255
				},
				"type": {
					"type": "string",
					"maxLength": 64
				}
			}
		},
		"services.CmsPatch": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				},
				"metadata": {
					"type": "object"
				},
				"slug": {
					"type": "string",
					"maxLength": 255
				},
				"status": {
					"$ref": "#/definitions/domain.ContentStatus"
				},
				"title": {
					"type": "string",
					"maxLength": 255
				},
				"type": {
					"type": "string",
					"maxLength": 64
				}
			}
		},
		"services.FeedbackInput": {
			"type": "object",
			"required": [
				"type"
			],
			"properties": {
				"feedbackText": {
					"type": "string"
				},
				"isPublic": {
					"type": "boolean"
				},
				"rating": {
					"type": "integer",
					"minimum": 1,
					"maximum": 5
				},
				"sentiment": {
					"type": "string"
				},
				"submitterDistrict": {
					"type": "string"
				},
				"submitterName": {
					"type": "string"
				},
				"targetId": {
					"type": "string",
					"maxLength": 64
				},
				"targetType": {
					"type": "string"
				},
				"type": {
					"type": "string",
					"maxLength": 64
				}
			}
		},
		"services.FeedbackPatch": {
			"type": "object",
			"properties": {
				"feedbackText": {
					"type": "string"
				},
				"isPublic": {
					"type": "boolean"
				},
				"rating": {
					"type": "integer",
					"minimum": 1,
					"maximum": 5
				},
				"sentiment": {
					"type": "string"
				},
				"submitterDistrict": {
					"type": "string"
				},
				"submitterName": {
					"type": "string"
				},
				"targetId": {
					"type": "string",
					"maxLength": 64
				},
				"targetType": {
					"type": "string"
				},
				"type": {
					"type": "string",
					"maxLength": 64
				}
			}
		},
		"services.ImplementationUpdateInput": {
			"type": "object",
			"required": [
				"createdBy",
				"description",
				"title",
				"updateType"
			],
			"properties": {
				"actualCompletion": {
					"type": "string"
				},
				"attachments": {
					"type": "array",
					"items": {
						"type": "object"
					}
				},
				"budgetUsed": {
					"type": "string"
				},
				"createdBy": {
					"type": "string",
					"maxLength": 100
				},
				"description": {
					"type": "string"
				},
				"expectedCompletion": {
					"type": "string"
				},
				"isPublic": {
					"type": "boolean"
				},
				"policyId": {
					"type": "string",
					"maxLength": 64
				},
				"progressPercentage": {
					"type": "integer",
					"minimum": 0,
					"maximum": 100
				},
				"suggestionId": {
					"type": "string"
				},
				"title": {
					"type": "string",
					"maxLength": 255
				},
				"updateType": {
					"type": "string",
					"maxLength": 32
				}
			}
		},
		"services.InquiryInput": {
			"type": "object",
			"required": [
				"district",
				"message",
				"name",
				"phone"
			],
			"properties": {
				"district": {
					"type": "string",
					"maxLength": 64
				},
				"message": {
					"type": "string"
				},
				"name": {
					"type": "string",
					"maxLength": 100
				},
				"phone": {
					"type": "string",
					"maxLength": 32
				}
			}
		},
		"services.ModerationInput": {
			"type": "object",
			"required": [
				"status"
			],
			"properties": {
				"moderatorNotes": {
					"type": "string"
				},
				"status": {
					"$ref": "#/definitions/domain.ModerationStatus"
				}
			}
		},
		"services.SpeechInput": {
			"type": "object",
			"required": [
				"speaker",
				"text"
			],
			"properties": {
				"audioPath": {
					"type": "string"
				},
				"context": {
					"type": "string"
				},
				"phonetics": {
					"type": "string"
				},
				"speaker": {
					"type": "string",
					"maxLength": 100
				},
				"text": {
					"type": "string"
				}
			}
		},
		"services.SpeechPatch": {
			"type": "object",
			"properties": {
				"audioPath": {
					"type": "string"
				},
				"context": {
					"type": "string"
				},
				"phonetics": {
					"type": "string"
				},
				"speaker": {
					"type": "string",
					"maxLength": 100
				},
				"text": {
					"type": "string"
				}
			}
		},
		"services.SuggestionInput": {
			"type": "object",
			"required": [
				"category",
				"description",
				"submitterDistrict",
				"submitterName",
				"title"
			],
			"properties": {
				"category": {
					"type": "string",
					"maxLength": 64
				},
				"description": {
					"type": "string"
				},
				"expectedBudget": {
					"type": "string"
				},
				"expectedTimeline": {
					"type": "string"
				},
				"isAnonymous": {
					"type": "boolean"
				},
				"priority": {
					"$ref": "#/definitions/domain.Priority"
				},
				"submitterDistrict": {
					"type": "string",
					"maxLength": 64
				},
				"submitterEmail": {
					"type": "string"
				},
				"submitterName": {
					"type": "string",
					"maxLength": 100
				},
				"submitterPhone": {
					"type": "string"
				},
				"tags": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"title": {
					"type": "string",
					"maxLength": 255
				}
			}
		},
		"services.SuggestionPatch": {
			"type": "object",
			"properties": {
				"adminNotes": {
					"type": "string"
				},
				"category": {
					"type": "string",
					"maxLength": 64
				},
				"description": {
					"type": "string"
				},
				"expectedBudget": {
					"type": "string"
				},
				"expectedTimeline": {
					"type": "string"
				},
				"implementationDate": {
					"type": "string"
				},
				"isAnonymous": {
					"type": "boolean"
				},
				"priority": {
					"$ref": "#/definitions/domain.Priority"
				},
				"status": {
					"$ref": "#/definitions/domain.SuggestionStatus"
				},
				"submitterEmail": {
					"type": "string"
				},
				"submitterPhone": {
					"type": "string"
				},
				"tags": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"title": {
					"type": "string",
					"maxLength": 255
				}
			}
		},
		"services.SupportInput": {
			"type": "object",
			"properties": {
				"comment": {
					"type": "string"
				},
				"isAnonymous": {
					"type": "boolean"
				},
				"supportType": {
					"type": "string",
					"maxLength": 32
				},
				"supporterDistrict": {
					"type": "string"
				},
				"supporterName": {
					"type": "string"
				},
				"supporterPhone": {
					"type": "string"
				}
			}
		},
		"services.TrainingDocInput": {
			"type": "object",
			"required": [
				"category",
				"content",
				"title"
			],
			"properties": {
				"category": {
					"$ref": "#/definitions/domain.TrainingCategory"
				},
				"content": {
					"type": "string"
				},
				"embedding": {
					"type": "array",
					"items": {
						"type": "number"
					}
				},
				"tags": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"title": {
					"type": "string",
					"maxLength": 255
				}
			}
		},
		"services.TrainingDocPatch": {
			"type": "object",
			"properties": {
				"category": {
					"$ref": "#/definitions/domain.TrainingCategory"
				},
				"content": {
					"type": "string"
				},
				"embedding": {
					"type": "array",
					"items": {
						"type": "number"
					}
				},
				"tags": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"title": {
					"type": "string",
					"maxLength": 255
				}
			}
		}
	},
	"securityDefinitions": {
		"IdempotencyKey": {
			"type": "apiKey",
			"name": "Idempotency-Key",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Jinan Campaign API",
	Description:      "Campaign site backend: contact inquiries, the AI chat assistant, CMS, training material and the citizen participation portal.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
