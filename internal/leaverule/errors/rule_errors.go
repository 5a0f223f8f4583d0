package ruleerrors

import (
	"net/http"

	"github.com/djval79/careflow-sub001/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave approval rule not found",
		http.StatusNotFound,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"priority must be a positive number",
		http.StatusBadRequest,
	)
	ErrInvalidDayBounds = apperror.New(
		apperror.CodeInvalidInput,
		"min_duration_days cannot exceed max_duration_days",
		http.StatusBadRequest,
	)
	ErrRuleFetchFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"unable to load leave approval rules",
		http.StatusInternalServerError,
	)
)
