package user

import (
	"context"
	"errors"
	"time"

	"classroom-chat/biz/infrastructure/config"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	prefixUserCacheKey = "cache:user"
	UserCollectionName = "user"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewUserMongoMapper config: %v, collection: %s", config, UserCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, UserCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, u *User) error {
	if u.CreateTime.IsZero() {
		u.CreateTime = time.Now()
		u.UpdateTime = u.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, u)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, u *User) error {
	u.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, u.ID, bson.M{"$set": u})
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{
		consts.ID: id,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &u, nil
}

func (m *MongoMapper) FindOneByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{
		"email": email,
	})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}
