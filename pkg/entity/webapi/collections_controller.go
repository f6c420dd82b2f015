package webapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moonstream-to/entity/pkg/entity"
	"github.com/moonstream-to/entity/pkg/journal"
)

type CollectionsController struct {
	client journal.ClientAPI
}

func NewCollectionsController(client journal.ClientAPI) *CollectionsController {
	return &CollectionsController{client: client}
}

func (ctl *CollectionsController) AddCollection(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	var req entity.CreateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	created, err := ctl.client.CreateJournal(auth, req.Name)
	if err != nil {
		return toHTTPError("AddCollection", err)
	}

	return c.JSON(http.StatusOK, entity.CollectionResponse{
		CollectionID: created.ID,
		Name:         created.Name,
	})
}

func (ctl *CollectionsController) ListCollections(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	journals, err := ctl.client.ListJournals(auth)
	if err != nil {
		return toHTTPError("ListCollections", err)
	}

	return c.JSON(http.StatusOK, journalsToCollections(journals))
}

func (ctl *CollectionsController) DeleteCollection(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	deleted, err := ctl.client.DeleteJournal(auth, collectionID)
	if err != nil {
		return toHTTPError("DeleteCollection", err)
	}

	return c.JSON(http.StatusOK, entity.CollectionResponse{
		CollectionID: deleted.ID,
		Name:         deleted.Name,
	})
}

// ListPublicCollections lists another user's public collections. No
// authorization: the store only exposes journals marked public here.
func (ctl *CollectionsController) ListPublicCollections(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	journals, err := ctl.client.ListPublicJournals(userID)
	if err != nil {
		return toHTTPError("ListPublicCollections", err)
	}

	return c.JSON(http.StatusOK, journalsToCollections(journals))
}

func journalsToCollections(journals journal.JournalsList) entity.CollectionsResponse {
	collections := entity.CollectionsResponse{Collections: []entity.CollectionResponse{}}
	for _, j := range journals.Journals {
		collections.Collections = append(collections.Collections, entity.CollectionResponse{
			CollectionID: j.ID,
			Name:         j.Name,
		})
	}

	return collections
}
