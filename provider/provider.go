package provider

import (
	"classroom-chat/biz/adaptor"
	"classroom-chat/biz/application/service"
	"classroom-chat/biz/infrastructure/cache"
	"classroom-chat/biz/infrastructure/config"
	"classroom-chat/biz/infrastructure/lock"
	"classroom-chat/biz/infrastructure/repository/file"
	"classroom-chat/biz/infrastructure/repository/message"
	"classroom-chat/biz/infrastructure/repository/room"
	"classroom-chat/biz/infrastructure/repository/user"
	"classroom-chat/biz/infrastructure/storage"
	"classroom-chat/biz/infrastructure/subscription"
	"classroom-chat/biz/infrastructure/util"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config      *config.Config
	UserService service.UserService
	RoomService service.RoomService
	ChatService service.ChatService
	FileService service.FileService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.UserServiceSet,
	service.RoomServiceSet,
	service.ChatServiceSet,
	service.FileServiceSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	user.NewMongoMapper,
	wire.Bind(new(service.UserStore), new(*user.MongoMapper)),
	room.NewMongoMapper,
	wire.Bind(new(service.RoomStore), new(*room.MongoMapper)),
	message.NewMongoMapper,
	wire.Bind(new(service.MessageStore), new(*message.MongoMapper)),
	file.NewMongoMapper,
	wire.Bind(new(service.FileStore), new(*file.MongoMapper)),
	storage.NewClient,
	wire.Bind(new(service.ObjectStorage), new(*storage.Client)),
	cache.NewUrlCacheMapper,
	wire.Bind(new(cache.IUrlCacheMapper), new(*cache.UrlCacheMapper)),
	subscription.NewHub,
	lock.NewRedisSendLocker,
	wire.Bind(new(service.SendLocker), new(*lock.RedisSendLocker)),
	util.GetHttpClient,
	wire.Bind(new(service.ReplyClient), new(*util.HttpClient)),
	wire.Bind(new(service.PlatformClient), new(*util.HttpClient)),
	adaptor.NewJwtIssuer,
	wire.Bind(new(service.TokenIssuer), new(*adaptor.JwtIssuer)),
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
