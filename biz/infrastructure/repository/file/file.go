package file

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileAsset 教室内上传文件的元信息，二进制内容在对象存储
type FileAsset struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JoinCode   string             `bson:"join_code" json:"joinCode"`
	Name       string             `bson:"name" json:"name"`
	Path       string             `bson:"path" json:"path"`
	Url        string             `bson:"url" json:"url"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
}
