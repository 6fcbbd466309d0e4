package basesvc

import (
	"context"
	"fmt"

	"github.com/Kapilrajreddy/youtube-api/internal/common"
	"github.com/Kapilrajreddy/youtube-api/internal/database"
	"github.com/Kapilrajreddy/youtube-api/internal/global"
	"github.com/Kapilrajreddy/youtube-api/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CascadeStep deletes every document of Collection matching Filter, or applies
// Update to them when it is set (e.g. $pull of a dangling reference).
// Steps are idempotent, so re-running a partially applied cascade is safe.
type CascadeStep struct {
	Collection string
	Filter     bson.M
	Update     bson.M
}

func (s CascadeStep) String() string {
	return fmt.Sprintf("%s %v", s.Collection, s.Filter)
}

// PlanFunc computes the dependent deletes after the primary document is gone.
type PlanFunc func(ctx context.Context) ([]CascadeStep, error)

// Cascader runs a primary delete followed by its dependents.
//
// With transactions enabled everything commits or nothing does. Without them
// the primary delete commits first; a failed dependent step is logged and the
// remaining steps still run, leaving orphans for the repair command.
type Cascader struct {
	client *mongo.Client
	useTx  bool
}

func NewCascader(client *mongo.Client, useTx bool) *Cascader {
	return &Cascader{client: client, useTx: useTx}
}

// DefaultCascader reads the process client and the transaction switch from global config.
func DefaultCascader() *Cascader {
	useTx := global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.MongoDB_UseTransactions
	return NewCascader(global.MongoDB_Session, useTx)
}

// Run calls primary, then deletes the steps returned by plan.
func (c *Cascader) Run(ctx context.Context, primary func(ctx context.Context) error, plan PlanFunc) error {
	return database.WithTransaction(ctx, c.client, c.useTx, func(ctx context.Context) error {
		if err := primary(ctx); err != nil {
			return err
		}

		steps, err := plan(ctx)
		if err != nil {
			if c.useTx {
				return err
			}
			logger.GetErrorLogger().WithError(err).Error("cascade plan failed")
			return nil
		}

		for _, step := range steps {
			if err := deleteStep(ctx, step); err != nil {
				if c.useTx {
					return err
				}
				logger.GetErrorLogger().WithFields(map[string]interface{}{
					"collection": step.Collection,
					"filter":     fmt.Sprintf("%v", step.Filter),
				}).WithError(err).Error("cascade step failed")
			}
		}
		return nil
	})
}

func deleteStep(ctx context.Context, step CascadeStep) error {
	coll, err := global.RegistryCollections.MustGet(step.Collection)
	if err != nil {
		return common.NewInternalError("cascade target not registered", err)
	}
	if step.Update != nil {
		res, err := coll.UpdateMany(ctx, step.Filter, step.Update)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if res.ModifiedCount > 0 {
			logger.WithCollection(step.Collection).Debugf("cascade updated %d documents", res.ModifiedCount)
		}
		return nil
	}
	res, err := coll.DeleteMany(ctx, step.Filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if res.DeletedCount > 0 {
		logger.WithCollection(step.Collection).Debugf("cascade removed %d documents", res.DeletedCount)
	}
	return nil
}
