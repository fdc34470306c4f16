// Package docs - OpenAPI (Swagger 2.0) описание API, отдается по /swagger/doc.json
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/jwt": {
            "post": {
                "tags": ["auth"],
                "summary": "Вход: выпуск токена и cookie",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.TokenRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}}
            }
        },
        "/logout": {
            "post": {"tags": ["auth"], "summary": "Удаление cookie", "responses": {"200": {"description": "OK"}}}
        },
        "/biodatas": {
            "get": {
                "tags": ["biodatas"],
                "summary": "Каталог анкет (только публичные поля)",
                "parameters": [
                    {"type": "string", "name": "sex", "in": "query"},
                    {"type": "string", "name": "permanentDivision", "in": "query"},
                    {"type": "integer", "name": "minAge", "in": "query"},
                    {"type": "integer", "name": "maxAge", "in": "query"},
                    {"type": "integer", "name": "minValue", "in": "query", "description": "алиас minAge"},
                    {"type": "integer", "name": "maxValue", "in": "query", "description": "алиас maxAge"},
                    {"type": "integer", "name": "minHeight", "in": "query"},
                    {"type": "integer", "name": "maxHeight", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["age_asc", "age_desc"]},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/biodatas/premium": {
            "get": {"tags": ["biodatas"], "summary": "Анкеты premium-участников", "responses": {"200": {"description": "OK"}}}
        },
        "/biodatas/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["biodatas"], "summary": "Своя анкета", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/visibility.BiodataView"}}, "404": {"description": "Not Found"}}},
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["biodatas"],
                "summary": "Создать или обновить свою анкету",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.BiodataUpsertRequest"}}],
                "responses": {"200": {"description": "Updated"}, "201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/biodatas/{biodataId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["biodatas"],
                "summary": "Страница анкеты; контакты только владельцу, админу и после одобрения",
                "parameters": [{"type": "integer", "name": "biodataId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/visibility.BiodataView"}}, "404": {"description": "Not Found"}}
            }
        },
        "/biodatas/{biodataId}/similar": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["biodatas"], "summary": "Похожие анкеты", "parameters": [{"type": "integer", "name": "biodataId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/requested-access": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["access"],
                "summary": "Запрос доступа к контактам",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAccessRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Own biodata"}, "404": {"description": "Not Found"}, "409": {"description": "Already requested"}}
            }
        },
        "/requested-access/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["access"], "summary": "Мои запросы", "responses": {"200": {"description": "OK"}}}
        },
        "/requested-access/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["access"], "summary": "Отозвать запрос", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/payments/completed": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Платеж прошел (идемпотентно по transactionId)", "responses": {"200": {"description": "Replayed"}, "201": {"description": "Recorded"}, "409": {"description": "Conflict"}}}
        },
        "/admin/access-requests/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Решение по запросу доступа",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.DecideAccessRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Already decided"}}
            }
        },
        "/admin/premium-requests/{email}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Решение по заявке на premium", "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.DecidePremiumRequest"}}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Invalid transition"}}}
        }
    },
    "definitions": {
        "apperrors.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "object", "properties": {"code": {"type": "string"}, "domain": {"type": "string"}, "message": {"type": "string"}}}}
        },
        "dto.TokenRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {"email": {"type": "string"}, "displayName": {"type": "string"}, "photoURL": {"type": "string"}}
        },
        "dto.CreateAccessRequest": {
            "type": "object",
            "required": ["biodataId"],
            "properties": {"biodataId": {"type": "integer"}}
        },
        "dto.DecideAccessRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["approved", "rejected"]}}
        },
        "dto.DecidePremiumRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["premium", "none"]}}
        },
        "dto.BiodataUpsertRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}, "sex": {"type": "string", "enum": ["Male", "Female"]},
                "age": {"type": "integer"}, "heightCm": {"type": "integer"}, "weightKg": {"type": "integer"},
                "dateOfBirth": {"type": "string", "format": "date"}, "occupation": {"type": "string"},
                "permanentDivision": {"type": "string"}, "presentDivision": {"type": "string"},
                "image": {"type": "string"}, "contactEmail": {"type": "string"}, "mobile": {"type": "string"}
            }
        },
        "visibility.BiodataView": {
            "type": "object",
            "properties": {
                "biodataId": {"type": "integer"}, "sex": {"type": "string"}, "image": {"type": "string"},
                "permanentDivision": {"type": "string"}, "age": {"type": "integer"}, "occupation": {"type": "string"},
                "status": {"type": "string"}, "visibility": {"type": "string", "enum": ["owner", "admin", "public", "detail", "contact"]},
                "name": {"type": "string"}, "mobile": {"type": "string"}, "contactEmail": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Destined Affinity API",
	Description:      "Анкеты, запросы доступа к контактам и premium-статус.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
