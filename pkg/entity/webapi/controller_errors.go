package webapi

import (
	"errors"
	"net/http"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moonstream-to/entity/pkg/entity"
	"github.com/moonstream-to/entity/pkg/entity/webapi/apimiddleware"
	"github.com/moonstream-to/entity/pkg/journal"
)

// toHTTPError maps journal client and parsing failures onto HTTP responses.
// Store errors pass their own status through; everything else is a 500.
func toHTTPError(op string, err error) error {
	var apiErr *journal.APIError
	switch {
	case errors.As(err, &apiErr):
		return echo.NewHTTPError(apiErr.StatusCode, apiErr.Detail)
	case errors.Is(err, entity.ErrUnparsableEntry):
		log.Errorf("%s: %s", op, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to form entity")
	default:
		log.Errorf("%s: %s", op, err)
		return echo.ErrInternalServerError
	}
}

func requestAuth(c echo.Context) (journal.Auth, error) {
	auth, ok := apimiddleware.AuthFromContext(c)
	if !ok {
		return journal.Auth{}, echo.ErrUnauthorized
	}

	return auth, nil
}

func collectionIDParam(c echo.Context) (uuid.UUID, error) {
	collectionID, err := uuid.Parse(c.Param("collection_id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid collection_id")
	}

	return collectionID, nil
}

func entityIDParam(c echo.Context) (uuid.UUID, error) {
	entityID, err := uuid.Parse(c.Param("entity_id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid entity_id")
	}

	return entityID, nil
}
