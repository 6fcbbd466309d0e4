package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap converts a bson-tagged value into a map using its bson field names.
func ToMap(s interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	var m map[string]interface{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return m, nil
}
