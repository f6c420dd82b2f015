package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/moonstream-to/entity/pkg/journal"
)

// Entity is the structured create/update payload. Address, blockchain, name
// and required_fields are the fixed schema; every other key the caller sends
// lands in Extra and ends up in the entry content.
type Entity struct {
	Address    string `json:"address"`
	Blockchain string `json:"blockchain"`
	Name       string `json:"name"`

	RequiredFields []map[string]interface{} `json:"required_fields"`

	Extra map[string]interface{} `json:"-"`
}

// fixedEntityFields are the keys that are not bucketed into Extra.
var fixedEntityFields = map[string]struct{}{
	"address":         {},
	"blockchain":      {},
	"name":            {},
	"required_fields": {},
}

func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if msg, ok := raw["address"]; ok {
		if err := json.Unmarshal(msg, &e.Address); err != nil {
			return err
		}
	}
	if msg, ok := raw["blockchain"]; ok {
		if err := json.Unmarshal(msg, &e.Blockchain); err != nil {
			return err
		}
	}
	if msg, ok := raw["name"]; ok {
		if err := json.Unmarshal(msg, &e.Name); err != nil {
			return err
		}
	}
	if msg, ok := raw["required_fields"]; ok {
		if err := json.Unmarshal(msg, &e.RequiredFields); err != nil {
			return err
		}
	}

	e.Extra = make(map[string]interface{})
	for key, msg := range raw {
		if _, ok := fixedEntityFields[key]; ok {
			continue
		}

		var val interface{}
		if err := json.Unmarshal(msg, &val); err != nil {
			return err
		}
		e.Extra[key] = val
	}

	return nil
}

func (e Entity) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(e.Extra)+4)
	for key, val := range e.Extra {
		flat[key] = val
	}

	flat["address"] = e.Address
	flat["blockchain"] = e.Blockchain
	flat["name"] = e.Name
	requiredFields := e.RequiredFields
	if requiredFields == nil {
		requiredFields = []map[string]interface{}{}
	}
	flat["required_fields"] = requiredFields

	return json.Marshal(flat)
}

type PingResponse struct {
	Status string `json:"status"`
}

type NowResponse struct {
	EpochTime float64 `json:"epoch_time"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

type CreateCollectionRequest struct {
	Name string `json:"name"`
}

type CollectionResponse struct {
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
}

type CollectionsResponse struct {
	Collections []CollectionResponse `json:"collections"`
}

type EntityResponse struct {
	EntityID     uuid.UUID `json:"entity_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	Address      *string   `json:"address,omitempty"`
	Blockchain   *string   `json:"blockchain,omitempty"`
	Name         *string   `json:"name,omitempty"`

	RequiredFields  []map[string]interface{} `json:"required_fields,omitempty"`
	SecondaryFields map[string]interface{}   `json:"secondary_fields,omitempty"`
	CreatedAt       *time.Time               `json:"created_at,omitempty"`
	UpdatedAt       *time.Time               `json:"updated_at,omitempty"`
}

type EntitiesResponse struct {
	Entities []EntityResponse `json:"entities"`
}

type EntitySearchResponse struct {
	TotalResults int              `json:"total_results"`
	Offset       int              `json:"offset"`
	NextOffset   *int             `json:"next_offset,omitempty"`
	MaxScore     float64          `json:"max_score"`
	Entities     []EntityResponse `json:"entities"`
}

// CollectionPermissions is one holder's set of permissions on a collection,
// in the façade vocabulary.
type CollectionPermissions struct {
	HolderType  journal.HolderType `json:"holder_type"`
	HolderID    uuid.UUID          `json:"holder_id"`
	Permissions []string           `json:"permissions"`
}

type CollectionPermissionsResponse struct {
	CollectionID uuid.UUID               `json:"collection_id"`
	Permissions  []CollectionPermissions `json:"permissions"`
}
