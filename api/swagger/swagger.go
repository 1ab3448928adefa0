package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TutorBoard API",
        "description": "Class management backend for tutoring teachers",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classes", "description": "Class lifecycle and roster"},
        {"name": "Stats", "description": "Study statistics and reports"},
        {"name": "Lessons", "description": "Lesson plans and records"},
        {"name": "Attendance", "description": "Attendance sheets"},
        {"name": "Assessments", "description": "Tests, assignments and grading"},
        {"name": "Comments", "description": "Private teacher-to-teacher comments"}
    ],
    "securityDefinitions": {
        "HubToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Hub-issued bearer token"
        }
    },
    "paths": {
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List own classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Classes"],
                "summary": "Update class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/classes/{id}/members": {
            "get": {
                "tags": ["Classes"],
                "summary": "List class roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/members/import": {
            "post": {
                "tags": ["Classes"],
                "summary": "Import students into the roster",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ImportStudentsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Class study statistics",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "period", "in": "query", "type": "string", "enum": ["daily", "weekly", "monthly"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/stats/export": {
            "get": {
                "tags": ["Stats"],
                "summary": "Export class study statistics",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "period", "in": "query", "type": "string", "enum": ["daily", "weekly", "monthly"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/classes/{id}/lesson-plans": {
            "get": {
                "tags": ["Lessons"],
                "summary": "List lesson plans",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Lessons"],
                "summary": "Create lesson plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLessonPlanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson-plans/{id}": {
            "put": {
                "tags": ["Lessons"],
                "summary": "Update lesson plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateLessonPlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Lessons"],
                "summary": "Delete lesson plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/lesson-plans/{id}/records": {
            "get": {
                "tags": ["Lessons"],
                "summary": "List lesson records",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Lessons"],
                "summary": "Append lesson record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLessonRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes/{id}/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance sheet for one date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark attendance for a class and date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson-plans/{id}/tests": {
            "post": {
                "tags": ["Assessments"],
                "summary": "Create test under a lesson plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/tests/{id}": {
            "delete": {
                "tags": ["Assessments"],
                "summary": "Delete test",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/tests/{id}/results": {
            "post": {
                "tags": ["Assessments"],
                "summary": "Record test scores in bulk",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkTestResultsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson-plans/{id}/assignments": {
            "post": {
                "tags": ["Assessments"],
                "summary": "Create assignment under a lesson plan",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/{id}": {
            "delete": {
                "tags": ["Assessments"],
                "summary": "Delete assignment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/submissions/{id}/grade": {
            "put": {
                "tags": ["Assessments"],
                "summary": "Grade an assignment submission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeSubmissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/comments": {
            "get": {
                "tags": ["Comments"],
                "summary": "List a private conversation",
                "parameters": [
                    {"name": "target_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "student_user_id", "in": "query", "type": "string"},
                    {"name": "context_type", "in": "query", "type": "string", "enum": ["lesson", "test", "assignment"]},
                    {"name": "context_id", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Comments"],
                "summary": "Send a private comment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            },
            "required": ["name"]
        },
        "UpdateClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"}
            },
            "required": ["name"]
        },
        "ImportStudentsRequest": {
            "type": "object",
            "properties": {
                "student_user_ids": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            },
            "required": ["student_user_ids"]
        },
        "CreateLessonPlanRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "scheduled_at": {"type": "string"}
            },
            "required": ["title"]
        },
        "UpdateLessonPlanRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "scheduled_at": {"type": "string"},
                "progress": {"type": "integer"}
            },
            "required": ["title"]
        },
        "CreateLessonRecordRequest": {
            "type": "object",
            "properties": {
                "record_date": {"type": "string"},
                "summary": {"type": "string"},
                "page_range": {"type": "string"},
                "concept_notes": {"type": "string"}
            },
            "required": ["record_date", "summary"]
        },
        "BulkAttendanceRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "records": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AttendanceRecordInput"}
                }
            },
            "required": ["date", "records"]
        },
        "AttendanceRecordInput": {
            "type": "object",
            "properties": {
                "student_user_id": {"type": "string"},
                "status": {"type": "string", "enum": ["present", "late", "absent"]}
            },
            "required": ["student_user_id", "status"]
        },
        "CreateTestRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "test_date": {"type": "string"},
                "max_score": {"type": "integer"}
            },
            "required": ["title"]
        },
        "BulkTestResultsRequest": {
            "type": "object",
            "properties": {
                "results": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TestResultInput"}
                }
            },
            "required": ["results"]
        },
        "TestResultInput": {
            "type": "object",
            "properties": {
                "student_user_id": {"type": "string"},
                "score": {"type": "integer"}
            },
            "required": ["student_user_id", "score"]
        },
        "CreateAssignmentRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "due_date": {"type": "string"}
            },
            "required": ["title"]
        },
        "GradeSubmissionRequest": {
            "type": "object",
            "properties": {
                "grade": {"type": "string"},
                "feedback": {"type": "string"}
            },
            "required": ["grade"]
        },
        "CreateCommentRequest": {
            "type": "object",
            "properties": {
                "target_id": {"type": "integer"},
                "student_user_id": {"type": "string"},
                "context_type": {"type": "string", "enum": ["lesson", "test", "assignment"]},
                "context_id": {"type": "integer"},
                "content": {"type": "string"}
            },
            "required": ["target_id", "content"]
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
