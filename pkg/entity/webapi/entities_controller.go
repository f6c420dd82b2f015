package webapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moonstream-to/entity/pkg/entity"
	"github.com/moonstream-to/entity/pkg/journal"
	"github.com/moonstream-to/entity/pkg/reporter"
)

// entryContextType marks journal entries managed by this service.
const entryContextType = "entity"

type EntitiesController struct {
	client   journal.ClientAPI
	reporter reporter.Reporter
}

func NewEntitiesController(client journal.ClientAPI, rep reporter.Reporter) *EntitiesController {
	return &EntitiesController{client: client, reporter: rep}
}

func entityToEntryCreate(ent entity.Entity) (journal.EntryCreate, string, error) {
	title, tags, content, unknownAddress := entity.ParseEntityToEntry(ent)

	contentJSON, err := json.Marshal(content)
	if err != nil {
		return journal.EntryCreate{}, unknownAddress, err
	}

	return journal.EntryCreate{
		Title:       title,
		Content:     string(contentJSON),
		Tags:        tags,
		ContextType: entryContextType,
	}, unknownAddress, nil
}

func (ctl *EntitiesController) reportUnknownAddress(collectionID, unknownAddress string) {
	ctl.reporter.Report(
		"Unknown type of blockchain address",
		fmt.Sprintf("Added entity with unknown blockchain address `%s` to collection `%s`", unknownAddress, collectionID),
		[]string{
			"collection_id:" + collectionID,
			"unknown_blockchain_address:" + unknownAddress,
		},
	)
}

// reportUnknownAddressPack emits a single report for a whole bulk upload; the
// individual addresses are not enumerated.
func (ctl *EntitiesController) reportUnknownAddressPack(collectionID string) {
	ctl.reporter.Report(
		"Unknown type of blockchain address - pack",
		fmt.Sprintf("Added pack of entities with unknown blockchain addresses to collection `%s`", collectionID),
		[]string{
			"collection_id:" + collectionID,
			"unknown_blockchain_address:pack",
		},
	)
}

func (ctl *EntitiesController) AddEntity(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	var ent entity.Entity
	if err := c.Bind(&ent); err != nil {
		return err
	}

	entryCreate, unknownAddress, err := entityToEntryCreate(ent)
	if err != nil {
		return toHTTPError("AddEntity", err)
	}

	created, err := ctl.client.CreateEntry(auth, collectionID, entryCreate)
	if err != nil {
		return toHTTPError("AddEntity", err)
	}

	response, err := entity.ParseEntryToEntity(created, collectionID, nil)
	if err != nil {
		return toHTTPError("AddEntity", err)
	}

	if unknownAddress != "" {
		ctl.reportUnknownAddress(collectionID.String(), unknownAddress)
	}

	return c.JSON(http.StatusOK, response)
}

func (ctl *EntitiesController) AddEntitiesBulk(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	var ents []entity.Entity
	if err := c.Bind(&ents); err != nil {
		return err
	}

	entryCreates := make([]journal.EntryCreate, 0, len(ents))
	hasUnknownAddresses := false
	for _, ent := range ents {
		entryCreate, unknownAddress, err := entityToEntryCreate(ent)
		if err != nil {
			return toHTTPError("AddEntitiesBulk", err)
		}
		if unknownAddress != "" {
			hasUnknownAddresses = true
		}
		entryCreates = append(entryCreates, entryCreate)
	}

	created, err := ctl.client.CreateEntriesPack(auth, collectionID, entryCreates)
	if err != nil {
		return toHTTPError("AddEntitiesBulk", err)
	}

	response := entity.EntitiesResponse{Entities: []entity.EntityResponse{}}
	for _, entry := range created.Entries {
		entityResponse, err := entity.ParseEntryToEntity(entry, collectionID, nil)
		if err != nil {
			return toHTTPError("AddEntitiesBulk", err)
		}
		response.Entities = append(response.Entities, entityResponse)
	}

	if hasUnknownAddresses {
		ctl.reportUnknownAddressPack(collectionID.String())
	}

	return c.JSON(http.StatusOK, response)
}

func (ctl *EntitiesController) ListEntities(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	entries, err := ctl.client.ListEntries(auth, collectionID)
	if err != nil {
		return toHTTPError("ListEntities", err)
	}

	response := entity.EntitiesResponse{Entities: []entity.EntityResponse{}}
	for _, entry := range entries.Entries {
		entityResponse, err := entity.ParseEntryToEntity(entry, collectionID, nil)
		if err != nil {
			return toHTTPError("ListEntities", err)
		}
		response.Entities = append(response.Entities, entityResponse)
	}

	return c.JSON(http.StatusOK, response)
}

func (ctl *EntitiesController) GetEntity(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	entityID, err := entityIDParam(c)
	if err != nil {
		return err
	}

	entry, err := ctl.client.GetEntry(auth, collectionID, entityID)
	if err != nil {
		return toHTTPError("GetEntity", err)
	}

	response, err := entity.ParseEntryToEntity(entry, collectionID, nil)
	if err != nil {
		return toHTTPError("GetEntity", err)
	}

	return c.JSON(http.StatusOK, response)
}

func (ctl *EntitiesController) UpdateEntity(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	entityID, err := entityIDParam(c)
	if err != nil {
		return err
	}

	var ent entity.Entity
	if err := c.Bind(&ent); err != nil {
		return err
	}

	entryCreate, _, err := entityToEntryCreate(ent)
	if err != nil {
		return toHTTPError("UpdateEntity", err)
	}

	// The store's update response is bare entry content without an id, so the
	// path id is threaded through to the parser.
	updated, err := ctl.client.UpdateEntry(auth, collectionID, entityID, entryCreate, journal.TagsActionReplace)
	if err != nil {
		return toHTTPError("UpdateEntity", err)
	}

	response, err := entity.ParseEntryToEntity(updated, collectionID, &entityID)
	if err != nil {
		return toHTTPError("UpdateEntity", err)
	}

	return c.JSON(http.StatusOK, response)
}

func (ctl *EntitiesController) DeleteEntity(c echo.Context) error {
	auth, err := requestAuth(c)
	if err != nil {
		return err
	}

	collectionID, err := collectionIDParam(c)
	if err != nil {
		return err
	}

	entityID, err := entityIDParam(c)
	if err != nil {
		return err
	}

	if _, err := ctl.client.DeleteEntry(auth, collectionID, entityID); err != nil {
		return toHTTPError("DeleteEntity", err)
	}

	return c.JSON(http.StatusOK, entity.EntityResponse{
		EntityID:     entityID,
		CollectionID: collectionID,
	})
}
