package room

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
	prefixRoomCacheKey = "cache:room"
	RoomCollectionName = "room"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewRoomMongoMapper config: %v, collection: %s", config, RoomCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, RoomCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, room *Room) error {
	if room.ID.IsZero() {
		room.ID = primitive.NewObjectID()
		room.UpdateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, room)
	return err
}

func (m *MongoMapper) FindOneByJoinCode(ctx context.Context, joinCode string) (*Room, error) {
	var r Room
	err := m.conn.FindOneNoCache(ctx, &r, bson.M{
		consts.JoinCode: joinCode,
	})
	switch {
	case err == nil:
		return &r, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

// FindAll 全量拉取教室，学生侧列表在服务层按名册过滤
func (m *MongoMapper) FindAll(ctx context.Context) ([]*Room, error) {
	var rooms []*Room
	err := m.conn.Find(ctx, &rooms, bson.M{}, &options.FindOptions{
		Sort: bson.M{"created_at": -1},
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindByTeacher 按创建教师查询，走teacher_id索引
func (m *MongoMapper) FindByTeacher(ctx context.Context, teacherID string) ([]*Room, error) {
	var rooms []*Room
	err := m.conn.Find(ctx, &rooms, bson.M{consts.TeacherID: teacherID}, &options.FindOptions{
		Sort: bson.M{"created_at": -1},
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// AddStudent 向名册追加学生，$addToSet按记录整体去重
func (m *MongoMapper) AddStudent(ctx context.Context, joinCode string, student Student) error {
	_, err := m.conn.UpdateOneNoCache(ctx, bson.M{consts.JoinCode: joinCode}, bson.M{
		"$addToSet": bson.M{
			consts.Students: student,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}

// RemoveStudent 从名册移除学生，学生不在名册时为无操作
func (m *MongoMapper) RemoveStudent(ctx context.Context, joinCode string, studentID string) error {
	_, err := m.conn.UpdateOneNoCache(ctx, bson.M{consts.JoinCode: joinCode}, bson.M{
		"$pull": bson.M{
			consts.Students: bson.M{"id": studentID},
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}

// Delete 仅删除教室文档本身，消息与文件不做级联清理
func (m *MongoMapper) Delete(ctx context.Context, joinCode string) error {
	_, err := m.conn.DeleteOneNoCache(ctx, bson.M{consts.JoinCode: joinCode})
	return err
}
