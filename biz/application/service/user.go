package service

import (
	"context"
	"errors"

	"classroom-chat/biz/adaptor"
	"classroom-chat/biz/application/dto/classroom/core"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/repository/user"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

type IUserService interface {
	SignUp(ctx context.Context, req *core.SignUpReq) (*core.SignUpResp, error)
	SignIn(ctx context.Context, req *core.SignInReq) (*core.SignInResp, error)
	GetUserInfo(ctx context.Context, req *core.GetUserInfoReq) (*core.GetUserInfoResp, error)
}

type UserService struct {
	UserMapper UserStore
	Platform   PlatformClient
	Tokens     TokenIssuer
}

var UserServiceSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),
)

// platformAuthData 身份平台登录/注册响应体
type platformAuthData struct {
	UserId string `mapstructure:"userId"`
}

// SignUp 注册用户，凭证托管在身份平台，角色注册时写入且此后不可变更
func (s *UserService) SignUp(ctx context.Context, req *core.SignUpReq) (*core.SignUpResp, error) {
	// 邮箱查重
	existing, err := s.UserMapper.FindOneByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, consts.ErrRepeatedSignUp
	}
	if err != nil && !errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrSignUp
	}

	// 通过中台创建凭证
	signUpResponse, err := s.Platform.SignUp(ctx, req.Email, req.Password)
	if err != nil || cast.ToFloat64(signUpResponse["code"]) != 0 {
		log.Error("中台注册失败: %v, ret: %v", err, signUpResponse)
		return nil, consts.ErrSignUp
	}

	data := new(platformAuthData)
	if dataMap, ok := signUpResponse["data"].(map[string]any); ok {
		if err := mapstructure.Decode(dataMap, data); err != nil {
			return nil, consts.ErrSignUp
		}
	} else {
		return nil, consts.ErrSignUp
	}

	// 持久化用户档案
	u := &user.User{
		ID:       data.UserId,
		Email:    req.Email,
		Role:     req.Role,
		Username: req.Username,
	}
	if err := s.UserMapper.Insert(ctx, u); err != nil {
		log.Error("用户档案写入失败: %v", err)
		return nil, consts.ErrSignUp
	}

	token, expire, err := s.Tokens.Issue(map[string]any{"userId": data.UserId})
	if err != nil {
		log.Error("生成token失败: %v", err)
		return nil, consts.ErrSignUp
	}

	return &core.SignUpResp{
		UserId: data.UserId,
		Role:   req.Role,
		Token:  token,
		Expire: expire,
	}, nil
}

// SignIn 登录用户，角色从用户档案查出
func (s *UserService) SignIn(ctx context.Context, req *core.SignInReq) (*core.SignInResp, error) {
	signInResponse, err := s.Platform.SignIn(ctx, req.Email, req.Password)
	if err != nil || cast.ToFloat64(signInResponse["code"]) != 0 {
		return nil, consts.ErrSignIn
	}

	data := new(platformAuthData)
	if dataMap, ok := signInResponse["data"].(map[string]any); ok {
		if err := mapstructure.Decode(dataMap, data); err != nil {
			return nil, consts.ErrSignIn
		}
	} else {
		return nil, consts.ErrSignIn
	}

	u, err := s.UserMapper.FindOne(ctx, data.UserId)
	if err != nil {
		log.Error("用户档案不存在: %v", err)
		return nil, consts.ErrNotFound
	}

	token, expire, err := s.Tokens.Issue(map[string]any{"userId": u.ID})
	if err != nil {
		log.Error("生成token失败: %v", err)
		return nil, consts.ErrSignIn
	}

	return &core.SignInResp{
		UserId: u.ID,
		Role:   u.Role,
		Token:  token,
		Expire: expire,
	}, nil
}

// GetUserInfo 获取当前用户信息
func (s *UserService) GetUserInfo(ctx context.Context, req *core.GetUserInfoReq) (*core.GetUserInfoResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	u, err := s.UserMapper.FindOne(ctx, meta.GetUserId())
	if err != nil {
		return nil, consts.ErrNotFound
	}

	return &core.GetUserInfoResp{
		User: &core.UserInfo{
			Id:       u.ID,
			Email:    u.Email,
			Role:     u.Role,
			Username: u.Username,
		},
	}, nil
}
