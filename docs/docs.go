// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/register": {"post": {"tags": ["Users"], "summary": "Register a new user and mail a confirmation code", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/confirm-email": {"post": {"tags": ["Users"], "summary": "Confirm an email address with the mailed code", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/login": {"post": {"tags": ["Users"], "summary": "Log in and receive an access and a refresh token", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}},
        "/refresh": {"post": {"tags": ["Users"], "summary": "Exchange a refresh token for a new token pair", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/revoke": {"post": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Revoke every refresh token of the current user", "responses": {"204": {"description": "No Content"}}}},
        "/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Current user", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Change the current user's display name", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/boards": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "Boards owned by or shared with the caller", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "Create a board owned by the caller", "responses": {"201": {"description": "Created"}}}
        },
        "/boards/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "Board with lists, labels and members", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "Update a board (owner)", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "Delete a board (owner)", "responses": {"204": {"description": "No Content"}}}
        },
        "/boards/{id}/tasks": {"get": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "Filter the board's tasks by labelIds, memberIds, isCompleted and dueDatePreset", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/boards/{id}/members": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Members"], "summary": "Owner and members", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Members"], "summary": "Share the board with a user by email", "responses": {"201": {"description": "Created"}}}
        },
        "/boards/{id}/members/{user_id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Members"], "summary": "Change a member's role", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Members"], "summary": "Revoke a membership", "responses": {"204": {"description": "No Content"}}}
        },
        "/boards/{id}/lists": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Lists"], "summary": "Lists of the board in order", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Lists"], "summary": "Append a list", "responses": {"201": {"description": "Created"}}}
        },
        "/boards/{id}/labels": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Labels"], "summary": "Labels of the board", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Labels"], "summary": "Create a label", "responses": {"201": {"description": "Created"}}}
        },
        "/lists/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Lists"], "summary": "List with its tasks", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Lists"], "summary": "Rename a list", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Lists"], "summary": "Delete a list and its tasks", "responses": {"204": {"description": "No Content"}}}
        },
        "/lists/{id}/move": {"post": {"security": [{"BearerAuth": []}], "tags": ["Lists"], "summary": "Move a list to a new position on its board", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/lists/{id}/tasks": {"post": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Append a task to the list", "responses": {"201": {"description": "Created"}}}},
        "/tasks/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Task with labels, assignees, comments and attachments", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Update a task", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Delete a task", "responses": {"204": {"description": "No Content"}}}
        },
        "/tasks/{id}/move": {"post": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Move a task within its list or to another list of the same board", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}},
        "/tasks/{id}/labels/{label_id}": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Attach a label", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Detach a label", "responses": {"200": {"description": "OK"}}}
        },
        "/tasks/{id}/assignees/{user_id}": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Assign a board participant", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Tasks"], "summary": "Unassign a user", "responses": {"200": {"description": "OK"}}}
        },
        "/tasks/{id}/comments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Comments"], "summary": "Comments and system-log entries, oldest first", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Comments"], "summary": "Add a comment", "responses": {"201": {"description": "Created"}}}
        },
        "/tasks/{id}/attachments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Attachments"], "summary": "Attachments of the task", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Attachments"], "summary": "Attach a file", "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}}}
        },
        "/tasks/{id}/attachments/{attachment_id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Attachments"], "summary": "Download an attachment", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Attachments"], "summary": "Remove an attachment", "responses": {"204": {"description": "No Content"}}}
        },
        "/labels/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Labels"], "summary": "Get a label", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Labels"], "summary": "Update a label", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Labels"], "summary": "Delete a label", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Task Board API",
	Description:      "Shared task boards with role-based access, ordered lists and tasks, filtering and a per-task activity log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
