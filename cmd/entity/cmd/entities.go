package cmd

import (
	"encoding/csv"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/moonstream-to/entity/pkg/entity"
)

var (
	entityCollectionIDRaw string
	entityIDRaw           string
	entityAddress         string
	entityBlockchain      string
	entityName            string
	requiredFieldFlags    []string
	secondaryFieldFlags   []string
	bulkInputPath         string
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Manage entities",
}

var entitiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := requestAuth()
		if err != nil {
			return err
		}

		collectionID, err := uuid.Parse(entityCollectionIDRaw)
		if err != nil {
			return err
		}

		requiredFields, err := parseJSONFields(requiredFieldFlags)
		if err != nil {
			return err
		}

		secondaryFields, err := parseJSONFields(secondaryFieldFlags)
		if err != nil {
			return err
		}

		ent := entity.Entity{
			Address:        entityAddress,
			Blockchain:     entityBlockchain,
			Name:           entityName,
			RequiredFields: requiredFields,
			Extra:          flattenFields(secondaryFields),
		}

		response, err := apiClient().AddEntity(auth, collectionID, ent)
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

var entitiesBulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Create a pack of entities from a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := requestAuth()
		if err != nil {
			return err
		}

		collectionID, err := uuid.Parse(entityCollectionIDRaw)
		if err != nil {
			return err
		}

		requiredFields, err := parseJSONFields(requiredFieldFlags)
		if err != nil {
			return err
		}

		secondaryFields, err := parseJSONFields(secondaryFieldFlags)
		if err != nil {
			return err
		}

		ents, err := loadEntitiesFromCSV(bulkInputPath, entityBlockchain, requiredFields, flattenFields(secondaryFields))
		if err != nil {
			return err
		}

		response, err := apiClient().AddEntitiesBulk(auth, collectionID, ents)
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

var entitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all entities in a collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := requestAuth()
		if err != nil {
			return err
		}

		collectionID, err := uuid.Parse(entityCollectionIDRaw)
		if err != nil {
			return err
		}

		response, err := apiClient().ListEntities(auth, collectionID)
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

var entitiesDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := requestAuth()
		if err != nil {
			return err
		}

		collectionID, err := uuid.Parse(entityCollectionIDRaw)
		if err != nil {
			return err
		}

		entityID, err := uuid.Parse(entityIDRaw)
		if err != nil {
			return err
		}

		response, err := apiClient().DeleteEntity(auth, collectionID, entityID)
		if err != nil {
			return err
		}

		return printJSON(response)
	},
}

// loadEntitiesFromCSV turns a CSV file into entity payloads: the first row
// names the columns, address and name columns map onto the fixed fields and
// every other column lands in the entity's extra fields. The blockchain flag
// and any --required-field/--secondary-field fragments apply to every row.
func loadEntitiesFromCSV(path, blockchain string, requiredFields []map[string]interface{}, secondaryFields map[string]interface{}) ([]entity.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open input file %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read CSV %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("CSV %s has no header row", path)
	}

	headers := records[0]
	ents := make([]entity.Entity, 0, len(records)-1)
	for _, row := range records[1:] {
		ent := entity.Entity{
			Blockchain:     blockchain,
			RequiredFields: requiredFields,
			Extra:          make(map[string]interface{}),
		}

		for i, value := range row {
			if i >= len(headers) {
				break
			}
			switch headers[i] {
			case "address":
				ent.Address = value
			case "name":
				ent.Name = value
			case "blockchain":
				// the --blockchain flag wins over the column
			default:
				ent.Extra[headers[i]] = value
			}
		}

		for key, val := range secondaryFields {
			ent.Extra[key] = val
		}

		ents = append(ents, ent)
	}

	return ents, nil
}

func init() {
	entitiesCreateCmd.Flags().StringVarP(&entityCollectionIDRaw, "collection-id", "c", "", "Id of collection")
	entitiesCreateCmd.Flags().StringVarP(&entityAddress, "address", "a", "", "Blockchain address")
	entitiesCreateCmd.Flags().StringVarP(&entityBlockchain, "blockchain", "b", "", "Blockchain")
	entitiesCreateCmd.Flags().StringVarP(&entityName, "name", "n", "", "Name of entity")
	entitiesCreateCmd.Flags().StringArrayVarP(&requiredFieldFlags, "required-field", "r", nil, "Required field as a JSON object, may be set multiple times")
	entitiesCreateCmd.Flags().StringArrayVarP(&secondaryFieldFlags, "secondary-field", "s", nil, "Secondary field as a JSON object, may be set multiple times")
	_ = entitiesCreateCmd.MarkFlagRequired("collection-id")
	_ = entitiesCreateCmd.MarkFlagRequired("address")
	_ = entitiesCreateCmd.MarkFlagRequired("blockchain")
	_ = entitiesCreateCmd.MarkFlagRequired("name")

	entitiesBulkCmd.Flags().StringVarP(&entityCollectionIDRaw, "collection-id", "c", "", "Id of collection")
	entitiesBulkCmd.Flags().StringVarP(&entityBlockchain, "blockchain", "b", "", "Blockchain")
	entitiesBulkCmd.Flags().StringArrayVarP(&requiredFieldFlags, "required-field", "r", nil, "Required field as a JSON object, may be set multiple times")
	entitiesBulkCmd.Flags().StringArrayVarP(&secondaryFieldFlags, "secondary-field", "s", nil, "Secondary field as a JSON object, may be set multiple times")
	entitiesBulkCmd.Flags().StringVarP(&bulkInputPath, "input", "i", "", "Input CSV file path to load data from")
	_ = entitiesBulkCmd.MarkFlagRequired("collection-id")
	_ = entitiesBulkCmd.MarkFlagRequired("blockchain")
	_ = entitiesBulkCmd.MarkFlagRequired("input")

	entitiesListCmd.Flags().StringVarP(&entityCollectionIDRaw, "collection-id", "c", "", "Id of collection")
	_ = entitiesListCmd.MarkFlagRequired("collection-id")

	entitiesDeleteCmd.Flags().StringVarP(&entityCollectionIDRaw, "collection-id", "c", "", "Id of collection")
	entitiesDeleteCmd.Flags().StringVarP(&entityIDRaw, "entity-id", "e", "", "Id of entity")
	_ = entitiesDeleteCmd.MarkFlagRequired("collection-id")
	_ = entitiesDeleteCmd.MarkFlagRequired("entity-id")

	entitiesCmd.AddCommand(entitiesCreateCmd, entitiesBulkCmd, entitiesListCmd, entitiesDeleteCmd)
	rootCmd.AddCommand(entitiesCmd)
}
