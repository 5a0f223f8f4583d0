package employeeerrors

import (
	"net/http"

	"github.com/djval79/careflow-sub001/internal/shared/apperror"
)

var (
	ErrUnknownAction = apperror.New(
		apperror.CodeUnknownAction,
		"unknown sync action",
		http.StatusBadRequest,
	)
	ErrInvalidTenantID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid tenant id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)
