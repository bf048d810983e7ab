// Package docs holds the OpenAPI description served under /swagger. It is
// maintained by hand and lists routes, summaries and the auth scheme; the
// request and response shapes live in the handler annotations.
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
        "/api/health": {
            "get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Log in", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {"200": {"description": "Token issued"}, "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}}
        },
        "/user": {
            "get": {"tags": ["users"], "summary": "List users", "responses": {"200": {"description": "Paginated users"}}},
            "post": {"tags": ["users"], "summary": "Create a user", "responses": {"201": {"description": "User created"}, "409": {"description": "Email already registered"}}}
        },
        "/user/{id}": {
            "get": {"tags": ["users"], "summary": "Get a user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "User"}, "404": {"description": "User not found"}}},
            "put": {"tags": ["users"], "summary": "Update a user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "User updated"}}},
            "delete": {"tags": ["users"], "summary": "Delete a user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "User deleted"}}}
        },
        "/user/{id}/account": {
            "get": {"tags": ["accounts"], "summary": "List accounts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Paginated accounts"}}},
            "post": {"tags": ["accounts"], "summary": "Create an account", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Account created"}}}
        },
        "/user/{id}/account/{accountId}": {
            "get": {"tags": ["accounts"], "summary": "Get an account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Account"}}},
            "put": {"tags": ["accounts"], "summary": "Update an account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Account updated"}}},
            "delete": {"tags": ["accounts"], "summary": "Delete an account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Account deleted"}}}
        },
        "/user/{id}/budget": {
            "get": {"tags": ["budgets"], "summary": "List budgets", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Paginated budgets"}}},
            "post": {"tags": ["budgets"], "summary": "Create a budget", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Budget created"}}}
        },
        "/user/{id}/budget/{budgetId}": {
            "get": {"tags": ["budgets"], "summary": "Get a budget", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Budget"}}},
            "put": {"tags": ["budgets"], "summary": "Update a budget", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Budget updated"}}},
            "delete": {"tags": ["budgets"], "summary": "Delete a budget", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Budget deleted"}}}
        },
        "/user/{id}/budget/{budgetId}/progress": {
            "get": {"tags": ["budgets"], "summary": "Budget progress for the current period", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Progress"}}}
        },
        "/user/{id}/transactions": {
            "get": {"tags": ["transactions"], "summary": "List transactions", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Paginated transactions"}}},
            "post": {"tags": ["transactions"], "summary": "Create a transaction", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Transaction created"}}}
        },
        "/user/{id}/transactions/{transactionId}": {
            "get": {"tags": ["transactions"], "summary": "Get a transaction", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Transaction"}}},
            "put": {"tags": ["transactions"], "summary": "Update a transaction", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Transaction updated"}}},
            "delete": {"tags": ["transactions"], "summary": "Delete a transaction", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Transaction deleted"}}}
        },
        "/categories": {
            "get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "Paginated categories"}}},
            "post": {"tags": ["categories"], "summary": "Create a category", "responses": {"201": {"description": "Category created"}}}
        },
        "/categories/{id}": {
            "get": {"tags": ["categories"], "summary": "Get a category", "responses": {"200": {"description": "Category"}}},
            "put": {"tags": ["categories"], "summary": "Update a category", "responses": {"200": {"description": "Category updated"}}},
            "delete": {"tags": ["categories"], "summary": "Delete a category", "responses": {"200": {"description": "Category deleted"}, "409": {"description": "Category in use"}}}
        }
    },
    "definitions": {
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "guit API",
	Description:      "Personal finance API: users, accounts, categories, budgets and balance-reconciled transactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
