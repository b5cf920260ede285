package message

import (
	"context"
	"time"

	"classroom-chat/biz/application/dto/basic"
	"classroom-chat/biz/infrastructure/config"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/util/log"
	page "classroom-chat/biz/infrastructure/util/page"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixMessageCacheKey = "cache:chat_message"
	MessageCollectionName = "chat_message"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewMessageMongoMapper config: %v, collection: %s", config, MessageCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, MessageCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

// Insert 追加一条消息，时间戳由服务端写入时分配
func (m *MongoMapper) Insert(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
		msg.Timestamp = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, msg)
	return err
}

// FindByConversation 拉取(教室,学生)会话消息，按时间升序
// popts为空时返回全量记录
func (m *MongoMapper) FindByConversation(ctx context.Context, joinCode, studentID string, popts *basic.PaginationOptions) ([]*Message, error) {
	var messages []*Message
	filter := bson.M{
		consts.JoinCode:  joinCode,
		consts.StudentID: studentID,
	}
	opts := &options.FindOptions{
		Sort: bson.M{consts.Timestamp: 1},
	}
	if popts != nil {
		skip, limit := page.ParsePageOpt(popts)
		opts.SetSkip(skip)
		opts.SetLimit(limit)
	}
	err := m.conn.Find(ctx, &messages, filter, opts)
	if err != nil {
		return nil, err
	}
	return messages, nil
}
