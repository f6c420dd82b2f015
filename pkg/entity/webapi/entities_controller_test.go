package webapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moonstream-to/entity/pkg/entity"
	"github.com/moonstream-to/entity/pkg/journal"
)

const testAddress = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
const testAddressChecksummed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func entryForTitle(title string, tags []string, content string) journal.Entry {
	id := uuid.New()
	return journal.Entry{
		ID:      &id,
		Title:   &title,
		Content: &content,
		Tags:    tags,
	}
}

func TestAddEntity(t *testing.T) {
	mockClient := journal.NewMockClient()
	rep := &recordingReporter{}
	controller := NewEntitiesController(mockClient, rep)

	collectionID := uuid.New()
	title := testAddressChecksummed + " - Alice"
	tags := []string{"address:" + testAddressChecksummed, "blockchain:ethereum", "role:deployer"}
	mockClient.Entry = entryForTitle(title, tags, `{"notes":"primary"}`)

	body, err := json.Marshal(map[string]interface{}{
		"address":         testAddress,
		"blockchain":      "ethereum",
		"name":            "Alice",
		"required_fields": []map[string]interface{}{{"role": "deployer"}},
		"notes":           "primary",
	})
	require.NoError(t, err)

	ctx, rec := setupEchoContext(http.MethodPost, "/collections/"+collectionID.String()+"/entities", body, nil)
	ctx.SetParamNames("collection_id")
	ctx.SetParamValues(collectionID.String())

	require.NoError(t, controller.AddEntity(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The entry sent to the store carries the checksummed address and the
	// extra fields as JSON content.
	assert.Equal(t, title, mockClient.LastEntry.Title)
	assert.Equal(t, tags, mockClient.LastEntry.Tags)
	assert.Equal(t, "entity", mockClient.LastEntry.ContextType)
	assert.JSONEq(t, `{"notes":"primary"}`, mockClient.LastEntry.Content)
	assert.Equal(t, "test-token", mockClient.LastAuth.Token)

	var response entity.EntityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Name)
	assert.Equal(t, "Alice", *response.Name)
	assert.Equal(t, map[string]interface{}{"notes": "primary"}, response.SecondaryFields)

	assert.Empty(t, rep.Reports(), "no report for a well formed address")
}

func TestAddEntityUnknownAddressReported(t *testing.T) {
	mockClient := journal.NewMockClient()
	rep := &recordingReporter{}
	controller := NewEntitiesController(mockClient, rep)

	collectionID := uuid.New()
	mockClient.Entry = entryForTitle("bogus - Bob", []string{"address:bogus", "blockchain:tezos"}, "{}")

	body := []byte(`{"address": "bogus", "blockchain": "tezos", "name": "Bob"}`)
	ctx, rec := setupEchoContext(http.MethodPost, "/collections/"+collectionID.String()+"/entities", body, nil)
	ctx.SetParamNames("collection_id")
	ctx.SetParamValues(collectionID.String())

	require.NoError(t, controller.AddEntity(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Unknown type of blockchain address"}, rep.Reports())
}

func TestAddEntityStoreErrorPassthrough(t *testing.T) {
	mockClient := journal.NewMockClient()
	mockClient.SetError(&journal.APIError{StatusCode: http.StatusForbidden, Detail: "no write access"})
	controller := NewEntitiesController(mockClient, &recordingReporter{})

	collectionID := uuid.New()
	body := []byte(`{"address": "` + testAddress + `", "blockchain": "ethereum", "name": "Alice"}`)
	ctx, _ := setupEchoContext(http.MethodPost, "/collections/"+collectionID.String()+"/entities", body, nil)
	ctx.SetParamNames("collection_id")
	ctx.SetParamValues(collectionID.String())

	err := controller.AddEntity(ctx)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Equal(t, "no write access", httpErr.Message)
}

func TestAddEntitiesBulk(t *testing.T) {
	mockClient := journal.NewMockClient()
	controller := NewEntitiesController(mockClient, &recordingReporter{})

	collectionID := uuid.New()
	mockClient.Entries = journal.Entries{Entries: []journal.Entry{
		entryForTitle(testAddressChecksummed+" - Alice", []string{"address:" + testAddressChecksummed, "blockchain:ethereum"}, "{}"),
		entryForTitle(testAddressChecksummed+" - Bob", []string{"address:" + testAddressChecksummed, "blockchain:ethereum"}, "{}"),
	}}

	body := []byte(`[
		{"address": "` + testAddress + `", "blockchain": "ethereum", "name": "Alice"},
		{"address": "` + testAddress + `", "blockchain": "ethereum", "name": "Bob"}
	]`)
	ctx, rec := setupEchoContext(http.MethodPost, "/collections/"+collectionID.String()+"/bulk", body, nil)
	ctx.SetParamNames("collection_id")
	ctx.SetParamValues(collectionID.String())

	require.NoError(t, controller.AddEntitiesBulk(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, mockClient.LastPack, 2)

	var response entity.EntitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Entities, 2)
}

func TestAddEntitiesBulkUnknownAddressesSingleReport(t *testing.T) {
	mockClient := journal.NewMockClient()
	rep := &recordingReporter{}
	controller := NewEntitiesController(mockClient, rep)

	collectionID := uuid.New()
	mockClient.Entries = journal.Entries{Entries: []journal.Entry{
		entryForTitle("bogus1 - Alice", []string{"address:bogus1", "blockchain:tezos"}, "{}"),
		entryForTitle("bogus2 - Bob", []string{"address:bogus2", "blockchain:tezos"}, "{}"),
	}}

	body := []byte(`[
		{"address": "bogus1", "blockchain": "tezos", "name": "Alice"},
		{"address": "bogus2", "blockchain": "tezos", "name": "Bob"}
	]`)
	ctx, rec := setupEchoContext(http.MethodPost, "/collections/"+collectionID.String()+"/bulk", body, nil)
	ctx.SetParamNames("collection_id")
	ctx.SetParamValues(collectionID.String())

	require.NoError(t, controller.AddEntitiesBulk(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	// One report for the whole pack, not one per address.
	assert.Equal(t, []string{"Unknown type of blockchain address - pack"}, rep.Reports())
	assert.Equal(t, []string{
		"collection_id:" + collectionID.String(),
		"unknown_blockchain_address:pack",
	}, rep.LastTags())
}

func TestUpdateEntityUsesPathID(t *testing.T) {
	mockClient := journal.NewMockClient()
	controller := NewEntitiesController(mockClient, &recordingReporter{})

	collectionID := uuid.New()
	entityID := uuid.New()

	// Content updates come back without an id.
	title := testAddressChecksummed + " - Alice"
	mockClient.Entry = journal.Entry{
		Title: &title,
		Tags:  []string{"address:" + testAddressChecksummed, "blockchain:ethereum"},
	}

	body := []byte(`{"address": "` + testAddress + `", "blockchain": "ethereum", "name": "Alice"}`)
	ctx, rec := setupEchoContext(http.MethodPut, "/collections/"+collectionID.String()+"/entities/"+entityID.String(), body, nil)
	ctx.SetParamNames("collection_id", "entity_id")
	ctx.SetParamValues(collectionID.String(), entityID.String())

	require.NoError(t, controller.UpdateEntity(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, journal.TagsActionReplace, mockClient.LastTagsAction)

	var response entity.EntityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, entityID, response.EntityID)
}

func TestDeleteEntity(t *testing.T) {
	mockClient := journal.NewMockClient()
	controller := NewEntitiesController(mockClient, &recordingReporter{})

	collectionID := uuid.New()
	entityID := uuid.New()

	ctx, rec := setupEchoContext(http.MethodDelete, "/collections/"+collectionID.String()+"/entities/"+entityID.String(), nil, nil)
	ctx.SetParamNames("collection_id", "entity_id")
	ctx.SetParamValues(collectionID.String(), entityID.String())

	require.NoError(t, controller.DeleteEntity(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entityID, mockClient.LastEntryID)

	var response entity.EntityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, entityID, response.EntityID)
	assert.Equal(t, collectionID, response.CollectionID)
}

func TestGetEntityInvalidCollectionID(t *testing.T) {
	controller := NewEntitiesController(journal.NewMockClient(), &recordingReporter{})

	ctx, _ := setupEchoContext(http.MethodGet, "/collections/not-a-uuid/entities", nil, nil)
	ctx.SetParamNames("collection_id")
	ctx.SetParamValues("not-a-uuid")

	err := controller.ListEntities(ctx)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
