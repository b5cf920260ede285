package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"classroom-chat/biz/application/dto/basic"
	"classroom-chat/biz/infrastructure/config"
	"classroom-chat/biz/infrastructure/consts"
	"classroom-chat/biz/infrastructure/util"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/golang-jwt/jwt/v4"
)

const (
	hertzContext = "hertz_context"
	userMetaKey  = "user_meta"
)

func InjectContext(ctx context.Context, c *app.RequestContext) context.Context {
	return context.WithValue(ctx, hertzContext, c)
}

// InjectUserMeta 直接注入主体信息，绕过请求头解析
func InjectUserMeta(ctx context.Context, user *basic.UserMeta) context.Context {
	return context.WithValue(ctx, userMetaKey, user)
}

func ExtractContext(ctx context.Context) (*app.RequestContext, error) {
	c, ok := ctx.Value(hertzContext).(*app.RequestContext)
	if !ok {
		return nil, errors.New("hertz context not found")
	}
	return c, nil
}

// ExtractUserMeta 从请求中解出当前主体，作为显式参数传入各操作
func ExtractUserMeta(ctx context.Context) (user *basic.UserMeta) {
	if injected, ok := ctx.Value(userMetaKey).(*basic.UserMeta); ok {
		return injected
	}
	user = new(basic.UserMeta)
	var err error
	defer func() {
		if err != nil {
			log.CtxInfo(ctx, "extract user meta fail, err=%v", err)
		}
	}()
	c, err := ExtractContext(ctx)
	if err != nil {
		return
	}
	tokenString := c.GetHeader("Authorization")
	token, err := jwt.Parse(string(tokenString), func(_ *jwt.Token) (interface{}, error) {
		return jwt.ParseECPublicKeyFromPEM([]byte(config.GetConfig().Auth.PublicKey))
	})
	if err != nil {
		return
	}
	if !token.Valid {
		err = errors.New("token is not valid")
		return
	}
	data, err := json.Marshal(token.Claims)
	if err != nil {
		return
	}
	err = json.Unmarshal(data, user)
	if err != nil {
		return
	}
	if user.SessionUserId == "" {
		user.SessionUserId = user.UserId
	}
	if user.SessionAppId == 0 {
		user.SessionAppId = user.AppId
	}
	if user.SessionDeviceId == "" {
		user.SessionDeviceId = user.DeviceId
	}
	log.CtxInfo(ctx, "userMeta=%s", util.JSONF(user))
	return
}

// JwtIssuer 基于配置密钥签发jwt
type JwtIssuer struct{}

func NewJwtIssuer() *JwtIssuer {
	return &JwtIssuer{}
}

func (i *JwtIssuer) Issue(claims map[string]any) (string, int64, error) {
	return GenerateJwtToken(claims)
}

// GenerateJwtToken 生成jwt
/*
生成 ECDSA 私钥: openssl ecparam -genkey -name prime256v1 -noout -out private_key.pem
从私钥中提取公钥: openssl ec -in private_key.pem -pubout -out public_key.pem
*/
func GenerateJwtToken(resp map[string]any) (string, int64, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(config.GetConfig().Auth.SecretKey))
	if err != nil {
		return "", 0, err
	}
	iat := time.Now().Unix()
	exp := iat + config.GetConfig().Auth.AccessExpire
	claims := make(jwt.MapClaims)
	claims["exp"] = exp
	claims["iat"] = iat
	claims["userId"] = resp["userId"].(string)
	claims["appId"] = consts.AppId
	claims["deviceId"] = "" // 暂时传空
	token := jwt.New(jwt.SigningMethodES256)
	token.Claims = claims
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", 0, err
	}
	return tokenString, exp, nil
}
