package adaptor

import (
	"context"

	"classroom-chat/biz/infrastructure/util"
	"classroom-chat/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"google.golang.org/grpc/status"
)

// PostProcess 统一出口: 记录日志并把业务错误转成客户端可见的code/msg
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	log.CtxInfo(ctx, "[%s] req=%s, resp=%s, err=%v", c.Path(), util.JSONF(req), util.JSONF(resp), err)
	if err == nil {
		c.JSON(consts.StatusOK, resp)
		return
	}

	s, ok := status.FromError(err)
	if !ok {
		c.String(consts.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(consts.StatusOK, map[string]any{
		"code": int64(s.Code()),
		"msg":  s.Message(),
	})
}
