package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollections creates every missing collection in db.
func EnsureCollections(ctx context.Context, db *mongo.Database, names []string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	for _, name := range names {
		if have[name] {
			continue
		}
		logger.GetAppLogger().Infof("Collection %s does not exist, creating", name)
		if err := db.CreateCollection(ctx, name); err != nil && !isNamespaceExists(err) {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	logger.GetAppLogger().Infof("Collections ensured in database: %s", db.Name())
	return nil
}

// NamespaceExists, raised when another process created the collection first
func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 48
}

// IndexSpec is one index derived from `index` struct tags.
type IndexSpec struct {
	Name    string
	Keys    bson.D
	Unique  bool
	Sparse  bool
	TTL     *int32
	Weights bson.D // text indexes only
}

func (s IndexSpec) options() *options.IndexOptions {
	opts := options.Index().SetName(s.Name)
	if s.Unique {
		opts.SetUnique(true)
	}
	if s.Sparse {
		opts.SetSparse(true)
	}
	if s.TTL != nil {
		opts.SetExpireAfterSeconds(*s.TTL)
	}
	if len(s.Weights) > 0 {
		opts.SetWeights(s.Weights)
	}
	return opts
}

// parseOrder reads order:-1 from one tag entry; ascending otherwise.
func parseOrder(entry map[string]string) int {
	if entry["order"] == "-1" {
		return -1
	}
	return 1
}

// parseIndexTag splits `single,order:-1;compound:owner_created` into entries.
func parseIndexTag(tag string) []map[string]string {
	result := []map[string]string{}
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			kv := strings.SplitN(strings.TrimSpace(subPart), ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

// BuildIndexSpecs reads the `index` tags of model.
//
// Supported entries:
//   - single[,order:-1]
//   - unique[,sparse]
//   - ttl:<seconds>
//   - text[,weight:<n>]     all text fields of a model share one index (<collection>_text)
//   - compound:<group>[,order:-1][,sparse]   unique when the group name contains "_unique"
func BuildIndexSpecs(collectionName string, model interface{}) ([]IndexSpec, error) {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var specs []IndexSpec
	var textKeys, textWeights bson.D
	compoundGroups := map[string]bson.D{}
	compoundSparse := map[string]bool{}
	var groupOrder []string

	for _, field := range flattenFields(modelType) {
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, entry := range parseIndexTag(tag) {
			if _, ok := entry["text"]; ok {
				textKeys = append(textKeys, bson.E{Key: bsonField, Value: "text"})
				if w, ok := entry["weight"]; ok {
					n, err := strconv.Atoi(w)
					if err != nil {
						return nil, fmt.Errorf("invalid text weight on %s: %w", bsonField, err)
					}
					textWeights = append(textWeights, bson.E{Key: bsonField, Value: n})
				}
			}

			if _, ok := entry["single"]; ok {
				specs = append(specs, IndexSpec{
					Name: bsonField + "_single",
					Keys: bson.D{{Key: bsonField, Value: parseOrder(entry)}},
				})
			}

			if _, ok := entry["unique"]; ok {
				_, sparse := entry["sparse"]
				specs = append(specs, IndexSpec{
					Name:   bsonField + "_unique",
					Keys:   bson.D{{Key: bsonField, Value: 1}},
					Unique: true,
					Sparse: sparse,
				})
			}

			if ttlValue, ok := entry["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("invalid TTL on %s: %w", bsonField, err)
				}
				seconds := int32(ttl)
				specs = append(specs, IndexSpec{
					Name: bsonField + "_ttl",
					Keys: bson.D{{Key: bsonField, Value: 1}},
					TTL:  &seconds,
				})
			}

			if groupName, ok := entry["compound"]; ok && groupName != "" {
				if _, seen := compoundGroups[groupName]; !seen {
					groupOrder = append(groupOrder, groupName)
				}
				compoundGroups[groupName] = append(compoundGroups[groupName], bson.E{Key: bsonField, Value: parseOrder(entry)})
				if _, sparse := entry["sparse"]; sparse {
					compoundSparse[groupName] = true
				}
			}
		}
	}

	if len(textKeys) > 0 {
		specs = append(specs, IndexSpec{
			Name:    collectionName + "_text",
			Keys:    textKeys,
			Weights: textWeights,
		})
	}

	for _, groupName := range groupOrder {
		specs = append(specs, IndexSpec{
			Name:   groupName,
			Keys:   compoundGroups[groupName],
			Unique: strings.Contains(groupName, "_unique"),
			Sparse: compoundSparse[groupName],
		})
	}

	sort.SliceStable(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs, nil
}

// flattenFields expands structs embedded with `bson:",inline"`.
func flattenFields(t reflect.Type) []reflect.StructField {
	var fields []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if strings.Contains(field.Tag.Get("bson"), ",inline") {
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				fields = append(fields, flattenFields(ft)...)
				continue
			}
		}
		fields = append(fields, field)
	}
	return fields
}

// compareIndex reports whether an existing index already matches spec.
func compareIndex(existingIndex bson.M, spec IndexSpec) bool {
	if len(spec.Weights) > 0 || (len(spec.Keys) > 0 && spec.Keys[0].Value == "text") {
		return compareTextIndex(existingIndex, spec)
	}

	existingKeys, ok := existingIndex["key"].(bson.M)
	if !ok || len(existingKeys) != len(spec.Keys) {
		return false
	}
	for _, key := range spec.Keys {
		existingValue, exists := existingKeys[key.Key]
		if !exists || !sameOrder(existingValue, key.Value) {
			return false
		}
	}

	unique, _ := existingIndex["unique"].(bool)
	if unique != spec.Unique {
		return false
	}
	sparse, _ := existingIndex["sparse"].(bool)
	if sparse != spec.Sparse {
		return false
	}

	if spec.TTL != nil {
		ttl, ok := existingIndex["expireAfterSeconds"].(int32)
		if !ok || ttl != *spec.TTL {
			return false
		}
	}
	return true
}

// text indexes are stored as {_fts: "text", _ftsx: 1}; the covered fields live in weights
func compareTextIndex(existingIndex bson.M, spec IndexSpec) bool {
	weights, ok := existingIndex["weights"].(bson.M)
	if !ok || len(weights) != len(spec.Keys) {
		return false
	}
	for _, key := range spec.Keys {
		if _, ok := weights[key.Key]; !ok {
			return false
		}
	}
	for _, w := range spec.Weights {
		if !sameOrder(weights[w.Key], w.Value) {
			return false
		}
	}
	return true
}

func sameOrder(existing interface{}, want interface{}) bool {
	n, ok := want.(int)
	if !ok {
		return existing == want
	}
	switch ev := existing.(type) {
	case int32:
		return int(ev) == n
	case int64:
		return int(ev) == n
	case float64:
		return int(ev) == n
	}
	return false
}

// checkAndReplaceIndex creates the index, dropping a same-named index whose definition drifted.
func checkAndReplaceIndex(ctx context.Context, collection *mongo.Collection, existingIndexes map[string]bson.M, spec IndexSpec) error {
	log := logger.WithCollection(collection.Name())

	if existingIndex, exists := existingIndexes[spec.Name]; exists {
		if compareIndex(existingIndex, spec) {
			log.Debugf("Index %s already up to date", spec.Name)
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
			return fmt.Errorf("cannot drop index %s: %w", spec.Name, err)
		}
		log.Infof("Dropped outdated index %s", spec.Name)
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    spec.Keys,
		Options: spec.options(),
	}); err != nil {
		return fmt.Errorf("cannot create index %s: %w", spec.Name, err)
	}
	log.Infof("Created index %s", spec.Name)
	return nil
}

// CreateIndexes applies the tag-declared indexes of model to collection.
// Unique indexes named *_unique that the model no longer declares are dropped.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	specs, err := BuildIndexSpecs(collection.Name(), model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("cannot list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var indexInfo bson.M
		if err := cursor.Decode(&indexInfo); err != nil {
			return fmt.Errorf("cannot decode index info: %w", err)
		}
		if name, ok := indexInfo["name"].(string); ok {
			existingIndexes[name] = indexInfo
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("cannot list indexes: %w", err)
	}

	declared := map[string]bool{}
	for _, spec := range specs {
		declared[spec.Name] = true
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, spec); err != nil {
			return err
		}
	}

	for indexName, indexInfo := range existingIndexes {
		if !strings.HasSuffix(indexName, "_unique") || declared[indexName] {
			continue
		}
		if unique, ok := indexInfo["unique"].(bool); ok && unique {
			if _, err := collection.Indexes().DropOne(ctx, indexName); err != nil {
				logger.WithCollection(collection.Name()).WithError(err).Warnf("Cannot drop stale unique index %s", indexName)
				continue
			}
			logger.WithCollection(collection.Name()).Infof("Dropped stale unique index %s", indexName)
		}
	}
	return nil
}
