package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bebifresh/bebifresh-backend/api/validators"
	pkgerrors "github.com/bebifresh/bebifresh-backend/pkg/errors"
	"github.com/bebifresh/bebifresh-backend/pkg/pagination"
)

func paginationFromQuery(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return pagination.Params{}, err
	}
	perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Page:    page,
		PerPage: perPage,
		Sort:    strings.TrimSpace(r.URL.Query().Get("sort")),
		Desc:    strings.EqualFold(r.URL.Query().Get("order"), "desc"),
	}, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").
			WithDetails(map[string]string{name: "must be a uuid"})
	}
	return id, nil
}
