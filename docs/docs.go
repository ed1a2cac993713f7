// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/konqer/main.go` after changing handler
// annotations.
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
            "get": {"tags": ["ops"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/exchange-token": {
            "post": {"tags": ["auth"], "summary": "Exchange an authorization code for tokens", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/auth/refresh-token": {
            "post": {"tags": ["auth"], "summary": "Refresh an access token", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "End the identity provider session", "responses": {"200": {"description": "OK"}}}
        },
        "/user/me": {
            "get": {"security": [{"Bearer": []}], "tags": ["user"], "summary": "Current user profile", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/user/subscriptions": {
            "get": {"security": [{"Bearer": []}], "tags": ["user"], "summary": "Subscriptions of the current user, newest first", "responses": {"200": {"description": "OK"}}}
        },
        "/user/services": {
            "get": {"security": [{"Bearer": []}], "tags": ["user"], "summary": "Services unlocked for the current user", "responses": {"200": {"description": "OK"}}}
        },
        "/user/history": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["user"],
                "summary": "Generation history of the current user",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"},
                    {"type": "string", "name": "service", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/user/checkout": {
            "post": {"security": [{"Bearer": []}], "tags": ["user"], "summary": "Open a hosted checkout session", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/user/portal": {
            "post": {"security": [{"Bearer": []}], "tags": ["user"], "summary": "Open the billing portal", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/services/{service}/generate": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["services"],
                "summary": "Generate content with a service",
                "parameters": [{"type": "string", "name": "service", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/services/config/{service}": {
            "get": {
                "tags": ["services"],
                "summary": "Get a service configuration",
                "parameters": [{"type": "string", "name": "service", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/webhooks/stripe": {
            "post": {"tags": ["webhooks"], "summary": "Stripe webhook receiver", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/admin/metrics/mrr": {
            "get": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "Monthly recurring revenue", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/admin/metrics/revenue": {
            "get": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "Revenue over a window of days", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/analytics/usage": {
            "get": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "Generation usage per service", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users": {
            "get": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "List users", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users/{id}": {
            "get": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "User detail", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/admin/users/{id}/unlock/{service}": {
            "post": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "Unlock a service for a user", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/users/{id}/lock/{service}": {
            "post": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "Lock a service for a user", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/services/{service}/config": {
            "put": {"security": [{"Bearer": []}], "tags": ["admin"], "summary": "Update a service configuration", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        }
    },
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Konqer API",
	Description:      "Sales content generation services behind entitlements and subscriptions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
