package storage

import (
	"encoding/json"
	"errors"

	"felogen/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// CurrentVersion stamps a freshly created record with the live schema and
// codec versions.
func CurrentVersion() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func EncodeIndividual(ind model.Individual) ([]byte, error) {
	return json.Marshal(ind)
}

func DecodeIndividual(data []byte) (model.Individual, error) {
	var ind model.Individual
	if err := json.Unmarshal(data, &ind); err != nil {
		return model.Individual{}, err
	}
	if err := checkVersion(ind.VersionedRecord); err != nil {
		return model.Individual{}, err
	}
	return ind, nil
}

func EncodeLitter(litter model.LitterRecord) ([]byte, error) {
	return json.Marshal(litter)
}

func DecodeLitter(data []byte) (model.LitterRecord, error) {
	var litter model.LitterRecord
	if err := json.Unmarshal(data, &litter); err != nil {
		return model.LitterRecord{}, err
	}
	if err := checkVersion(litter.VersionedRecord); err != nil {
		return model.LitterRecord{}, err
	}
	return litter, nil
}

// EncodeGeneCatalog serializes the catalog as an id-keyed document, the
// only externally persisted schema the engines depend on.
func EncodeGeneCatalog(catalog map[string]model.GeneDefinition) ([]byte, error) {
	return json.Marshal(catalog)
}

func DecodeGeneCatalog(data []byte) (map[string]model.GeneDefinition, error) {
	var catalog map[string]model.GeneDefinition
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	for id, def := range catalog {
		def.ID = id
		catalog[id] = def
	}
	return catalog, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
