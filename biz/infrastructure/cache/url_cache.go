package cache

import (
	"context"
	"fmt"

	"classroom-chat/biz/infrastructure/config"
	"classroom-chat/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	downloadUrlCachePrefix = "download_url"
	downloadUrlCacheExpire = 3600 // 1小时，与加签链接有效期一致
)

type IUrlCacheMapper interface {
	Get(ctx context.Context, path string) (string, error)
	Set(ctx context.Context, path string, url string) error
	Delete(ctx context.Context, path string) error
}

// UrlCacheMapper 缓存文件加签下载链接，避免重复向对象存储请求加签
type UrlCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewUrlCacheMapper(config *config.Config) *UrlCacheMapper {
	return &UrlCacheMapper{
		rds: redis.GetRedis(config),
	}
}

func (m *UrlCacheMapper) Get(ctx context.Context, path string) (string, error) {
	cachedUrl, err := m.rds.GetCtx(ctx, m.buildCacheKey(path))
	if err != nil {
		return "", err
	}
	if cachedUrl == "" {
		return "", fmt.Errorf("cache miss")
	}
	return cachedUrl, nil
}

func (m *UrlCacheMapper) Set(ctx context.Context, path string, url string) error {
	return m.rds.SetexCtx(ctx, m.buildCacheKey(path), url, downloadUrlCacheExpire)
}

func (m *UrlCacheMapper) Delete(ctx context.Context, path string) error {
	_, err := m.rds.DelCtx(ctx, m.buildCacheKey(path))
	return err
}

// buildCacheKey 构造缓存key
func (m *UrlCacheMapper) buildCacheKey(path string) string {
	return fmt.Sprintf("%s:%s", downloadUrlCachePrefix, path)
}
