package service

import (
	"context"
	"testing"

	"classroom-chat/biz/application/dto/classroom/core"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/repository/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(platform *fakePlatform, seed ...*user.User) (*UserService, *fakeUserStore) {
	users := newFakeUserStore(seed...)
	return &UserService{UserMapper: users, Platform: platform, Tokens: fakeIssuer{}}, users
}

func TestSignUpPersistsRole(t *testing.T) {
	platform := &fakePlatform{signUpResp: platformOK("u1")}
	svc, users := newUserService(platform)

	resp, err := svc.SignUp(context.Background(), &core.SignUpReq{
		Email:    "t@school.edu",
		Password: "secret",
		Role:     consts.RoleTeacher,
		Username: "王老师",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.UserId)
	assert.Equal(t, consts.RoleTeacher, resp.Role)
	assert.Equal(t, "token-u1", resp.Token)

	// 角色落库，后续登录以档案为准
	u, err := users.FindOne(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, consts.RoleTeacher, u.Role)
	assert.Equal(t, "t@school.edu", u.Email)
	assert.Equal(t, "王老师", u.Username)
}

func TestSignUpRepeatedEmail(t *testing.T) {
	platform := &fakePlatform{signUpResp: platformOK("u2")}
	svc, _ := newUserService(platform, teacherUser("t1"))

	_, err := svc.SignUp(context.Background(), &core.SignUpReq{
		Email:    "t1@school.edu",
		Password: "secret",
		Role:     consts.RoleTeacher,
	})
	assert.ErrorIs(t, err, consts.ErrRepeatedSignUp)
}

func TestSignUpMalformedPlatformResponse(t *testing.T) {
	// 中台返回2xx但响应体缺少code和data字段，注册应报错而不能崩溃
	platform := &fakePlatform{signUpResp: map[string]interface{}{"msg": "ok"}}
	svc, users := newUserService(platform)

	_, err := svc.SignUp(context.Background(), &core.SignUpReq{
		Email:    "s@school.edu",
		Password: "secret",
		Role:     consts.RoleStudent,
	})
	assert.ErrorIs(t, err, consts.ErrSignUp)
	assert.Empty(t, users.users)
}

func TestSignUpPlatformRejects(t *testing.T) {
	platform := &fakePlatform{signUpResp: map[string]interface{}{"code": float64(1), "msg": "bad password"}}
	svc, _ := newUserService(platform)

	_, err := svc.SignUp(context.Background(), &core.SignUpReq{
		Email:    "s@school.edu",
		Password: "x",
		Role:     consts.RoleStudent,
	})
	assert.ErrorIs(t, err, consts.ErrSignUp)
}

func TestSignIn(t *testing.T) {
	platform := &fakePlatform{signInResp: platformOK("s1")}
	svc, _ := newUserService(platform, studentUser("s1"))

	resp, err := svc.SignIn(context.Background(), &core.SignInReq{Email: "s1@school.edu", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.UserId)
	assert.Equal(t, consts.RoleStudent, resp.Role)
	assert.Equal(t, "token-s1", resp.Token)
}

func TestSignInWithoutProfile(t *testing.T) {
	// 中台认得但本地档案不存在
	platform := &fakePlatform{signInResp: platformOK("ghost")}
	svc, _ := newUserService(platform)

	_, err := svc.SignIn(context.Background(), &core.SignInReq{Email: "g@school.edu", Password: "secret"})
	assert.ErrorIs(t, err, consts.ErrNotFound)
}

func TestSignInMalformedPlatformResponse(t *testing.T) {
	platform := &fakePlatform{signInResp: map[string]interface{}{"msg": "ok"}}
	svc, _ := newUserService(platform, studentUser("s1"))

	_, err := svc.SignIn(context.Background(), &core.SignInReq{Email: "s1@school.edu", Password: "secret"})
	assert.ErrorIs(t, err, consts.ErrSignIn)
}

func TestGetUserInfo(t *testing.T) {
	users := newFakeUserStore(teacherUser("t1"))
	svc := &UserService{UserMapper: users}

	resp, err := svc.GetUserInfo(ctxWithUser("t1"), &core.GetUserInfoReq{})
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.User.Id)
	assert.Equal(t, consts.RoleTeacher, resp.User.Role)

	_, err = svc.GetUserInfo(ctxWithUser("ghost"), &core.GetUserInfoReq{})
	assert.ErrorIs(t, err, consts.ErrNotFound)

	// 未认证请求
	_, err = svc.GetUserInfo(context.Background(), &core.GetUserInfoReq{})
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)
}
