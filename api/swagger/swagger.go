// Package swagger serves the static OpenAPI document for /docs.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CourseCraft API",
        "description": "Educational material tracking and generation service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Subjects", "description": "Academic subject catalogue"},
        {"name": "Topics", "description": "Topics within a subject"},
        {"name": "Materials", "description": "Generated notes, quizzes and presentations"},
        {"name": "Tasks", "description": "Asynchronous generation tasks"},
        {"name": "Generation", "description": "Synchronous material generation"},
        {"name": "Stats", "description": "Aggregate counts"},
        {"name": "Utils", "description": "Slug, Bloom keyword, theme and version helpers"}
    ],
    "paths": {
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects with topic, material and task counts",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create a subject; the slug derives from the name",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectPayload"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slug already taken"}
                }
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Get a subject",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Subjects"],
                "summary": "Update a subject; renaming re-derives the slug",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectPayload"}}
                ],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Slug already taken"}}
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete a subject; topics and materials cascade",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/subjects/{id}/topics": {
            "get": {
                "tags": ["Topics"],
                "summary": "List topics under a subject",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/topics": {
            "get": {
                "tags": ["Topics"],
                "summary": "List topics with per-kind material counts",
                "parameters": [
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Topics"],
                "summary": "Create a topic; the slug is unique within the subject",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TopicPayload"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Slug already taken within the subject"}
                }
            }
        },
        "/topics/{id}": {
            "get": {
                "tags": ["Topics"],
                "summary": "Get a topic",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Topics"],
                "summary": "Update a topic",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TopicPayload"}}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Topics"],
                "summary": "Delete a topic; materials cascade",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/materials": {
            "get": {
                "tags": ["Materials"],
                "summary": "List materials",
                "parameters": [
                    {"name": "topicId", "in": "query", "type": "string"},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "kind", "in": "query", "type": "string", "enum": ["notes", "quiz", "presentation"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/materials/{id}": {
            "get": {
                "tags": ["Materials"],
                "summary": "Get a material with its learning outcomes",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Materials"],
                "summary": "Delete a material and its files on disk",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/materials/{id}/history": {
            "get": {
                "tags": ["Materials"],
                "summary": "Version history, oldest first",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/materials/{id}/clos": {
            "get": {
                "tags": ["Materials"],
                "summary": "Course learning outcomes for a quiz material",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/generate": {
            "post": {
                "tags": ["Generation"],
                "summary": "Generate a material synchronously",
                "description": "Creates the material at v1.0 or bumps an existing one. Unknown subject and topic names are created on the fly.",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneratePayload"}}],
                "responses": {
                    "200": {"description": "Updated"},
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid kind, format or content"}
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List generation tasks",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "in_progress", "completed", "failed"]},
                    {"name": "subjectId", "in": "query", "type": "string"},
                    {"name": "kind", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Queue a generation task",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TaskPayload"}}],
                "responses": {"201": {"description": "Queued"}}
            }
        },
        "/tasks/stats": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Task counts by status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get a task",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete a task record",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/tasks/{id}/status": {
            "patch": {
                "tags": ["Tasks"],
                "summary": "Transition a task through its lifecycle",
                "description": "pending may only start, in_progress may only finish, terminal states are frozen.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TaskStatusPayload"}}
                ],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Transition not allowed"}}
            }
        },
        "/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Aggregate subject, topic, material and task counts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/utils/sanitize": {
            "post": {
                "tags": ["Utils"],
                "summary": "Convert a display name to its slug",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}}}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Name produces an empty slug"}}
            }
        },
        "/utils/bloom-keywords": {
            "get": {
                "tags": ["Utils"],
                "summary": "Bloom taxonomy action verbs by complexity level",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/utils/themes": {
            "get": {
                "tags": ["Utils"],
                "summary": "Presentation theme catalogue",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/utils/version/increment": {
            "get": {
                "tags": ["Utils"],
                "summary": "Bump a version string",
                "parameters": [
                    {"name": "version", "in": "query", "required": true, "type": "string"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["minor", "major"]}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "SubjectPayload": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "TopicPayload": {
            "type": "object",
            "required": ["subject_id", "name"],
            "properties": {
                "subject_id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "GeneratePayload": {
            "type": "object",
            "required": ["subject", "topic", "material_kind", "output_format"],
            "properties": {
                "subject": {"type": "string"},
                "topic": {"type": "string"},
                "material_kind": {"type": "string", "enum": ["notes", "quiz", "presentation"]},
                "output_format": {"type": "string", "enum": ["pdf", "md", "docx", "pptx"]},
                "changes": {"type": "string"},
                "theme": {"type": "string"},
                "content": {"type": "object"}
            }
        },
        "TaskPayload": {
            "type": "object",
            "required": ["subject_id", "material_kind"],
            "properties": {
                "subject_id": {"type": "string"},
                "topic_id": {"type": "string"},
                "topic_name": {"type": "string"},
                "material_kind": {"type": "string", "enum": ["notes", "quiz", "presentation"]},
                "params": {"type": "object"}
            }
        },
        "TaskStatusPayload": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["in_progress", "completed", "failed"]},
                "material_id": {"type": "string"},
                "error_message": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
