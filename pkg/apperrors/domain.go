package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки бизнес-логики.
Предопределенные переменные не мутируются: WithDetails/WithError возвращают копию.
*/

// =========================================================================
// Фабрики для оборачивания ошибок репозитория
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для нарушения уникальности (409)
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Фабрики для новых ошибок
// =========================================================================

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - переход статуса не разрешен (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие,
// либо учетная запись админа не найдена.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrNotResourceOwner - действие над чужим ресурсом
var ErrNotResourceOwner = New(
	CodeForbidden,
	"auth",
	"You can only act on your own resources",
	http.StatusForbidden,
)

// ErrCannotModifySelf - админ пытается сменить собственную роль
var ErrCannotModifySelf = New(
	CodeForbidden,
	"member",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// ErrInvalidToken - неверный или просроченный токен
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// --- Biodata ---

var ErrBiodataNotFound = New(
	CodeNotFound,
	"biodata",
	"Biodata not found",
	http.StatusNotFound,
)

// --- Access requests ---

var ErrAccessRequestExists = New(
	CodeConflict,
	"access_request",
	"An access request for this biodata already exists",
	http.StatusConflict,
)

var ErrAccessRequestNotFound = New(
	CodeNotFound,
	"access_request",
	"Access request not found",
	http.StatusNotFound,
)

var ErrAccessRequestDecided = New(
	CodeInvalidStatus,
	"access_request",
	"Access request has already been decided",
	http.StatusConflict,
)

var ErrOwnBiodataRequest = New(
	CodeInvalidOperation,
	"access_request",
	"Cannot request access to your own biodata",
	http.StatusBadRequest,
)

// --- Favorites ---

var ErrFavoriteExists = New(
	CodeConflict,
	"favorite",
	"Biodata is already in favorites",
	http.StatusConflict,
)

var ErrFavoriteNotFound = New(
	CodeNotFound,
	"favorite",
	"Favorite not found",
	http.StatusNotFound,
)

// --- Members / premium ---

var ErrMemberNotFound = New(
	CodeNotFound,
	"member",
	"Member not found",
	http.StatusNotFound,
)

var ErrInvalidPremiumTransition = New(
	CodeInvalidStatus,
	"premium",
	"Premium status transition is not allowed",
	http.StatusConflict,
)

// --- Payments ---

var ErrTransactionOwnedByOther = New(
	CodeConflict,
	"payment",
	"Transaction id is already recorded for another member",
	http.StatusConflict,
)
