package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LeopardWeb Registrar API",
        "description": "Course registration service for students, instructors and admins",
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
        {"name": "Authentication", "description": "Login and student self-service signup"},
        {"name": "Courses", "description": "Catalog browsing and admin catalog management"},
        {"name": "Registrations", "description": "Student schedules and admin overrides"},
        {"name": "Accounts", "description": "Admin account management"}
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
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Self-service student signup",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username or email already exists"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "field", "in": "query", "type": "string", "description": "crn, title, department, time, days, semester, year or credits"},
                    {"name": "value", "in": "query", "type": "string", "description": "contains match"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown filter field"}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Add course (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "CRN already exists"}
                }
            }
        },
        "/courses/{crn}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "crn", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course not found"}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Remove course and its registrations (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "crn", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/courses/{crn}/roster": {
            "get": {
                "tags": ["Courses"],
                "summary": "Course roster (instructor, admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "crn", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{crn}/roster/export": {
            "get": {
                "tags": ["Courses"],
                "summary": "Export course roster as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "crn", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/instructors/me/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List my courses (instructor)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/me/schedule": {
            "get": {
                "tags": ["Registrations"],
                "summary": "My schedule (student)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/me/schedule/export": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Export my schedule as CSV or PDF (student)",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/students/me/registrations": {
            "post": {
                "tags": ["Registrations"],
                "summary": "Register for a course (student)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Course not found"},
                    "409": {"description": "Already registered"}
                }
            }
        },
        "/students/me/registrations/{crn}": {
            "delete": {
                "tags": ["Registrations"],
                "summary": "Drop a course (student)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "crn", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/registrations": {
            "post": {
                "tags": ["Registrations"],
                "summary": "Register a student (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminRegistrationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Student or course not found"},
                    "409": {"description": "Already registered"}
                }
            },
            "delete": {
                "tags": ["Registrations"],
                "summary": "Drop a student (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminRegistrationRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/accounts": {
            "get": {
                "tags": ["Accounts"],
                "summary": "List accounts (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "role", "in": "query", "type": "string", "description": "STUDENT, INSTRUCTOR or ADMIN"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Accounts"],
                "summary": "Create account (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username or email already exists"}
                }
            }
        },
        "/accounts/{username}": {
            "get": {
                "tags": ["Accounts"],
                "summary": "Get account (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "username", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Account not found"}
                }
            },
            "delete": {
                "tags": ["Accounts"],
                "summary": "Delete account with profile and registrations (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "username", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "crn": {"type": "integer"}
            },
            "required": ["crn"]
        },
        "AdminRegistrationRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "crn": {"type": "integer"}
            },
            "required": ["username", "crn"]
        },
        "ProfileFields": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "surname": {"type": "string"},
                "email": {"type": "string"},
                "grad_year": {"type": "integer"},
                "major": {"type": "string"},
                "title": {"type": "string"},
                "hire_year": {"type": "integer"},
                "department": {"type": "string"},
                "office": {"type": "string"}
            },
            "required": ["name", "surname"]
        },
        "CreateAccountRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["STUDENT", "INSTRUCTOR", "ADMIN"]},
                "profile": {"$ref": "#/definitions/ProfileFields"}
            },
            "required": ["username", "password", "role"]
        },
        "CreateCourseRequest": {
            "type": "object",
            "properties": {
                "crn": {"type": "integer"},
                "title": {"type": "string"},
                "department": {"type": "string"},
                "time_slot": {"type": "string"},
                "days": {"type": "string"},
                "semester": {"type": "string"},
                "year": {"type": "integer"},
                "credits": {"type": "integer"},
                "instructor_email": {"type": "string"}
            },
            "required": ["crn", "title", "department", "time_slot", "semester", "year", "credits"]
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
