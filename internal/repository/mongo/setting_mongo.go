package mongo

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

const settingsCollection = "setting"

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	_, err := d.Collection(settingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("uniq_name").SetUnique(true),
	})
	return err
}

// settingDoc keeps metadata as a JSON string so documents stay readable
// and round-trip byte for byte.
type settingDoc struct {
	Name      string    `bson:"name"`
	Metadata  string    `bson:"metadata"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type settingRepository struct {
	col *mongo.Collection
}

func NewSettingRepository(db *mongo.Database) repository.SettingRepository {
	return &settingRepository{col: db.Collection(settingsCollection)}
}

func (r *settingRepository) FindByPrefix(ctx context.Context, prefix string) ([]model.Setting, error) {
	filter := bson.M{"name": bson.M{"$regex": "^" + regexp.QuoteMeta(strings.ToLower(prefix))}}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.Setting
	for cur.Next(ctx) {
		var d settingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, model.Setting{Name: d.Name, Metadata: json.RawMessage(d.Metadata), UpdatedAt: d.UpdatedAt})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *settingRepository) Upsert(ctx context.Context, s model.Setting) (model.Setting, error) {
	d := settingDoc{
		Name:      strings.ToLower(s.Name),
		Metadata:  string(s.Metadata),
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if d.Metadata == "" {
		d.Metadata = "{}"
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"name": d.Name},
		bson.M{"$set": bson.M{"metadata": d.Metadata, "updated_at": d.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Setting{}, repository.ErrAlreadyExists
		}
		return model.Setting{}, err
	}
	return model.Setting{Name: d.Name, Metadata: json.RawMessage(d.Metadata), UpdatedAt: d.UpdatedAt}, nil
}

var _ repository.SettingRepository = (*settingRepository)(nil)
