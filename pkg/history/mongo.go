package history

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/pipeline"
)

// MongoStore keeps one document per result.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// record is the stored document. The repository URL and timestamp are
// lifted to the top level so they can be indexed and sorted on.
type record struct {
	ID         string           `bson:"_id"`
	RepoURL    string           `bson:"repo_url"`
	AnalyzedAt time.Time        `bson:"analyzed_at"`
	Result     *pipeline.Result `bson:"result"`
}

// NewMongoStore connects to uri and uses database.collection.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, r *pipeline.Result) error {
	_, err := s.coll.InsertOne(ctx, record{
		ID:         r.ID,
		RepoURL:    r.RepoInfo.URL(),
		AnalyzedAt: r.AnalyzedAt,
		Result:     r,
	})
	if err != nil {
		err = fmt.Errorf("insert result: %w", err)
	}
	return reportSave(ctx, config.BackendMongo, err)
}

func (s *MongoStore) Recent(ctx context.Context, limit int) ([]*pipeline.Result, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "analyzed_at", Value: -1}}).
		SetLimit(int64(limitOrDefault(limit)))

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find results: %w", err)
	}
	defer cur.Close(ctx)

	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	out := make([]*pipeline.Result, 0, len(recs))
	for _, rec := range recs {
		if rec.Result != nil {
			out = append(out, rec.Result)
		}
	}
	return out, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
