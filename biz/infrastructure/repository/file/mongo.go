package file

import (
	"context"
	"errors"
	"time"

	"classroom-chat/biz/infrastructure/config"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixFileCacheKey = "cache:file_asset"
	FileCollectionName = "file_asset"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewFileMongoMapper config: %v, collection: %s", config, FileCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, FileCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, f *FileAsset) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
		f.CreateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, f)
	return err
}

func (m *MongoMapper) FindByJoinCode(ctx context.Context, joinCode string) ([]*FileAsset, error) {
	var files []*FileAsset
	err := m.conn.Find(ctx, &files, bson.M{consts.JoinCode: joinCode}, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (m *MongoMapper) FindOneByPath(ctx context.Context, path string) (*FileAsset, error) {
	var f FileAsset
	err := m.conn.FindOneNoCache(ctx, &f, bson.M{"path": path})
	switch {
	case err == nil:
		return &f, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) DeleteByPath(ctx context.Context, path string) error {
	_, err := m.conn.DeleteOneNoCache(ctx, bson.M{"path": path})
	return err
}
