package postgres

import "encoding/json"

// unmarshalJSONColumn распаковывает JSONB-колонку, терпимо относясь к NULL.
func unmarshalJSONColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// marshalJSONColumn упаковывает значение для записи в JSONB-колонку.
func marshalJSONColumn(src any) ([]byte, error) {
	if src == nil {
		return nil, nil
	}
	return json.Marshal(src)
}
